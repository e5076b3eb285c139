package handler

import (
	"sync"

	"palabra/internal/domain"
	"palabra/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot       *tele.Bot
	scheduler *service.Scheduler
	stats     *service.StatsService
	logger    *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	scheduler *service.Scheduler,
	stats *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		scheduler: scheduler,
		stats:     stats,
		logger:    logger,
		states:    make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/add", h.handleAddWord)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnMode, h.handleMode)
	h.bot.Handle(&btnKnow, h.handleKnow)
	h.bot.Handle(&btnHint, h.handleHint)
	h.bot.Handle(&btnVerify, h.handleVerify)
	h.bot.Handle(&btnDontKnow, h.handleDontKnow)
	h.bot.Handle(&btnOK, h.handleOK)
	h.bot.Handle(&btnAddWord, h.handleAddWord)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for anything that did not match a button
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnMode = tele.Btn{
		Unique: "mode",
	}
	btnKnow = tele.Btn{
		Unique: "know",
		Text:   "✅ Know",
	}
	btnHint = tele.Btn{
		Unique: "hint",
		Text:   "💡 Hint",
	}
	btnVerify = tele.Btn{
		Unique: "verify",
		Text:   "🔍 Verify",
	}
	btnDontKnow = tele.Btn{
		Unique: "dont_know",
		Text:   "❌ Don't know",
	}
	btnOK = tele.Btn{
		Unique: "ok",
		Text:   "👌 OK",
	}
	btnAddWord = tele.Btn{
		Unique: "add_word",
		Text:   "➕ Add word",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "✖️ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Menu",
	}
)

// mainMenuMarkup returns the mode keyboard with due counts on every button
func mainMenuMarkup(due map[domain.Mode]int) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(domain.Modes)+1)
	for _, mode := range domain.Modes {
		rows = append(rows, menu.Row(menu.Data(modeLabel(mode, due), btnMode.Unique, string(mode))))
	}
	rows = append(rows, menu.Row(btnAddWord))
	menu.Inline(rows...)
	return menu
}

// cardMarkup returns the keyboard shown under a word
func cardMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnKnow, btnDontKnow),
		menu.Row(btnHint, btnVerify),
		menu.Row(btnMainMenu),
	)
	return menu
}

// confirmMarkup returns the keyboard shown after Don't know
func confirmMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnOK))
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return menu
}

func backMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnMainMenu))
	return menu
}
