package handler

import (
	"strings"

	"palabra/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// skipExample is the reply that leaves the example empty
const skipExample = "-"

// handleAddWord starts the new word flow
func (h *Handler) handleAddWord(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingWord})
	return h.reply(c, "✍️ Send the new word", cancelMarkup())
}

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingWord:
		if text == "" {
			return c.Send("The word cannot be empty. Send the new word", cancelMarkup())
		}
		h.SetState(userID, &domain.StateData{
			State: domain.StateWaitingMeaning,
			Draft: domain.Record{Word: text},
		})
		return c.Send("Now send its meaning", cancelMarkup())

	case domain.StateWaitingMeaning:
		if text == "" {
			return c.Send("The meaning cannot be empty. Send its meaning", cancelMarkup())
		}
		draft := state.Draft
		draft.Meaning = text
		h.SetState(userID, &domain.StateData{
			State: domain.StateWaitingExample,
			Draft: draft,
		})
		return c.Send("Send an example sentence, several separated by |, or "+skipExample+" to skip", cancelMarkup())

	case domain.StateWaitingExample:
		draft := state.Draft
		if text != skipExample {
			draft.Example = text
		}

		if err := h.scheduler.AddNewWord(draft); err != nil {
			h.logger.Error("Failed to add new word",
				zap.Error(err),
				zap.Int64("user_id", userID),
			)
			return c.Send("Could not save the word. Try again.", cancelMarkup())
		}

		// Ready for the next word
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})
		return c.Send("✅ Saved to New words!\n\nSend the next word or tap Cancel", cancelMarkup())

	default:
		return c.Send("Use /start to study or /add to add a word")
	}
}
