package handler

import (
	"errors"
	"strings"
	"unicode"

	"palabra/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseCallbackData splits raw "\f<unique>|<payload>" callback data that
// telebot could not route to a button
func parseCallbackData(data string) (unique, payload string) {
	unique, payload, _ = strings.Cut(cleanCallbackData(data), "|")
	return unique, payload
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// A double tap edits the same message twice
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callbacks that did not reach a button handler
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	key, payload := callback.Unique, data
	if key == "" {
		key, payload = parseCallbackData(callback.Data)
	}

	switch key {
	case btnMode.Unique:
		return h.startMode(c, payload)
	case btnKnow.Unique:
		return h.handleKnow(c)
	case btnHint.Unique:
		return h.handleHint(c)
	case btnVerify.Unique:
		return h.handleVerify(c)
	case btnDontKnow.Unique:
		return h.handleDontKnow(c)
	case btnOK.Unique:
		return h.handleOK(c)
	case btnAddWord.Unique:
		return h.handleAddWord(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	case btnMainMenu.Unique:
		return h.handleStart(c)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleMode starts a study session in the chosen mode
func (h *Handler) handleMode(c tele.Context) error {
	return h.startMode(c, cleanCallbackData(c.Data()))
}

func (h *Handler) startMode(c tele.Context, payload string) error {
	mode, err := domain.ParseMode(payload)
	if err != nil {
		h.logger.Warn("Unknown mode in callback", zap.String("data", payload))
		return c.Respond(&tele.CallbackResponse{Text: "Unknown mode"})
	}
	return h.showNext(c, mode)
}

// showNext picks the next due word of mode and shows it as a card
func (h *Handler) showNext(c tele.Context, mode domain.Mode) error {
	userID := c.Sender().ID

	rec, err := h.scheduler.PickDue(mode)
	if errors.Is(err, domain.ErrEmptyPool) {
		h.ResetState(userID)
		return h.reply(c, emptyText(mode), backMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to pick next word",
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		h.ResetState(userID)
		return h.reply(c, "⚠️ Could not load words. Try again later.", backMarkup())
	}

	h.SetState(userID, &domain.StateData{
		State:       domain.StateStudying,
		Mode:        mode,
		CurrentWord: rec.Word,
	})
	return h.reply(c, cardText(mode, rec.Word, nil), cardMarkup())
}

// studying returns the state of a user looking at a card, or nil
func (h *Handler) studying(c tele.Context) *domain.StateData {
	state := h.GetState(c.Sender().ID)
	if state.State != domain.StateStudying && state.State != domain.StateConfirmMiss {
		return nil
	}
	return state
}

func (h *Handler) handleHint(c tele.Context) error {
	state := h.studying(c)
	if state == nil {
		return h.handleStart(c)
	}
	if state.ShowHint || state.ShowVerify {
		// Examples are already on screen
		return c.Respond()
	}

	reveal, err := h.scheduler.ShowHint(state.Mode, state.CurrentWord)
	if err != nil {
		return h.staleCard(c, state, err)
	}
	next := *state
	next.ShowHint = true
	h.SetState(c.Sender().ID, &next)
	return h.reply(c, cardText(state.Mode, state.CurrentWord, &reveal), cardMarkup())
}

func (h *Handler) handleVerify(c tele.Context) error {
	state := h.studying(c)
	if state == nil {
		return h.handleStart(c)
	}

	reveal, err := h.scheduler.ShowVerify(state.Mode, state.CurrentWord)
	if err != nil {
		return h.staleCard(c, state, err)
	}
	next := *state
	next.ShowVerify = true
	h.SetState(c.Sender().ID, &next)
	return h.reply(c, cardText(state.Mode, state.CurrentWord, &reveal), cardMarkup())
}

func (h *Handler) handleKnow(c tele.Context) error {
	state := h.studying(c)
	if state == nil {
		return h.handleStart(c)
	}
	return h.respond(c, state, domain.Know)
}

// handleDontKnow reveals the answer and waits for OK before moving the word
func (h *Handler) handleDontKnow(c tele.Context) error {
	state := h.studying(c)
	if state == nil {
		return h.handleStart(c)
	}

	reveal, err := h.scheduler.ShowVerify(state.Mode, state.CurrentWord)
	if err != nil {
		return h.staleCard(c, state, err)
	}
	h.SetState(c.Sender().ID, &domain.StateData{
		State:       domain.StateConfirmMiss,
		Mode:        state.Mode,
		CurrentWord: state.CurrentWord,
		ShowVerify:  true,
	})
	return h.reply(c, cardText(state.Mode, state.CurrentWord, &reveal), confirmMarkup())
}

func (h *Handler) handleOK(c tele.Context) error {
	state := h.GetState(c.Sender().ID)
	if state.State != domain.StateConfirmMiss {
		return c.Respond()
	}
	return h.respond(c, state, domain.DontKnow)
}

// respond applies the outcome to the current card and shows the next one
func (h *Handler) respond(c tele.Context, state *domain.StateData, outcome domain.Outcome) error {
	if err := h.scheduler.Respond(state.Mode, state.CurrentWord, outcome); err != nil {
		return h.staleCard(c, state, err)
	}
	h.logger.Info("Card answered",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("mode", string(state.Mode)),
		zap.String("word", state.CurrentWord),
		zap.String("outcome", outcome.String()),
	)
	return h.showNext(c, state.Mode)
}

// staleCard handles a card whose word left its pool, e.g. answered from another adapter
func (h *Handler) staleCard(c tele.Context, state *domain.StateData, err error) error {
	if errors.Is(err, domain.ErrWordNotFound) {
		h.logger.Info("Card is stale, moving on",
			zap.String("word", state.CurrentWord),
			zap.String("mode", string(state.Mode)),
		)
		return h.showNext(c, state.Mode)
	}
	h.logger.Error("Failed to process card",
		zap.String("word", state.CurrentWord),
		zap.String("mode", string(state.Mode)),
		zap.Error(err),
	)
	return c.Respond(&tele.CallbackResponse{Text: "Something went wrong", ShowAlert: true})
}

// handleCancel cancels current operation and returns to the menu
func (h *Handler) handleCancel(c tele.Context) error {
	return h.handleStart(c)
}
