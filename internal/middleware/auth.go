package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const privateText = "This bot is private."

// OwnerOnly restricts the bot to the given Telegram user IDs.
// An empty list lets everyone through.
func OwnerOnly(ownerIDs []int64, logger *zap.Logger) tele.MiddlewareFunc {
	owners := make(map[int64]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = struct{}{}
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if len(owners) == 0 {
				return next(c)
			}

			sender := c.Sender()
			if sender != nil {
				if _, ok := owners[sender.ID]; ok {
					return next(c)
				}
			}

			var userID int64
			if sender != nil {
				userID = sender.ID
			}
			logger.Warn("Rejected update from unknown user", zap.Int64("user_id", userID))

			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: privateText, ShowAlert: true})
			}
			return c.Send(privateText)
		}
	}
}
