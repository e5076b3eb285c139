package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command and the menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User opened menu",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	due, err := h.stats.DueCounts()
	if err != nil {
		// The menu still works without counts
		h.logger.Error("Failed to count due words", zap.Error(err))
	}

	h.ResetState(userID)
	return h.reply(c, mainMenuText, mainMenuMarkup(due))
}

// reply edits the message behind a callback, or sends a new one for commands
func (h *Handler) reply(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}
