package web

import (
	"errors"
	"net/http"

	"palabra/internal/domain"
	"palabra/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// RespondReq is the body of POST /api/modes/:mode/respond
type RespondReq struct {
	Word    string `json:"word" binding:"required"`
	Outcome string `json:"outcome" binding:"required"`
}

// RevealReq is the query of GET /api/modes/:mode/hint and /verify
type RevealReq struct {
	Word string `form:"word" binding:"required"`
}

// NewWordReq is the body of POST /api/new-words
type NewWordReq struct {
	Word    string `json:"word" binding:"required"`
	Meaning string `json:"meaning" binding:"required"`
	Example string `json:"example"`
}

// CardResp is the next card of a study mode. Only the word is sent;
// meaning and examples are fetched through hint and verify.
type CardResp struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
	Title  string `json:"title"`
	Word   string `json:"word,omitempty"`
}

// ModeResp describes one study mode in the menu
type ModeResp struct {
	Mode  string `json:"mode"`
	Title string `json:"title"`
	Due   int    `json:"due"`
}

// PoolCounts returns the number of records in every pool
func PoolCounts(stats *service.StatsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := stats.Counts()
		if err != nil {
			abortWithError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"pools": lo.MapKeys(counts, func(_ int, pool domain.Pool) string { return pool.String() }),
		})
	}
}

// ModeList returns the study modes in menu order with their due counts
func ModeList(stats *service.StatsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		due, err := stats.DueCounts()
		if err != nil {
			abortWithError(c, logger, err)
			return
		}
		modes := lo.Map(domain.Modes, func(m domain.Mode, _ int) ModeResp {
			return ModeResp{Mode: string(m), Title: m.Title(), Due: due[m]}
		})
		c.JSON(http.StatusOK, gin.H{"modes": modes})
	}
}

// NextCard returns a random due word of the mode
func NextCard(scheduler *service.Scheduler, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode, err := domain.ParseMode(c.Param("mode"))
		if err != nil {
			abortWithError(c, logger, err)
			return
		}
		writeNext(c, scheduler, logger, mode)
	}
}

// RespondCard applies Know or Don't know to a word and returns the next card
func RespondCard(scheduler *service.Scheduler, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode, err := domain.ParseMode(c.Param("mode"))
		if err != nil {
			abortWithError(c, logger, err)
			return
		}

		var req RespondReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		outcome, err := domain.ParseOutcome(req.Outcome)
		if err != nil {
			abortWithError(c, logger, err)
			return
		}

		if err := scheduler.Respond(mode, req.Word, outcome); err != nil {
			abortWithError(c, logger, err)
			return
		}
		logger.Info("Card answered",
			zap.String("mode", string(mode)),
			zap.String("word", req.Word),
			zap.String("outcome", outcome.String()),
		)
		writeNext(c, scheduler, logger, mode)
	}
}

// Hint returns the example sentences of the word on a mode's card
func Hint(scheduler *service.Scheduler, logger *zap.Logger) gin.HandlerFunc {
	return reveal(scheduler.ShowHint, logger)
}

// Verify returns the meaning and example sentences of the word on a mode's card
func Verify(scheduler *service.Scheduler, logger *zap.Logger) gin.HandlerFunc {
	return reveal(scheduler.ShowVerify, logger)
}

// reveal reads the word from the query string so phrases containing a
// slash still reach the handler
func reveal(show func(domain.Mode, string) (domain.Reveal, error), logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode, err := domain.ParseMode(c.Param("mode"))
		if err != nil {
			abortWithError(c, logger, err)
			return
		}

		var req RevealReq
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		r, err := show(mode, req.Word)
		if err != nil {
			abortWithError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

// CreateNewWord stores a new word in NewWords
func CreateNewWord(scheduler *service.Scheduler, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NewWordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rec := domain.Record{Word: req.Word, Meaning: req.Meaning, Example: req.Example}
		if err := scheduler.AddNewWord(rec); err != nil {
			abortWithError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "created", "word": req.Word})
	}
}

func writeNext(c *gin.Context, scheduler *service.Scheduler, logger *zap.Logger, mode domain.Mode) {
	rec, err := scheduler.PickDue(mode)
	if errors.Is(err, domain.ErrEmptyPool) {
		c.JSON(http.StatusOK, CardResp{Status: "empty", Mode: string(mode), Title: mode.Title()})
		return
	}
	if err != nil {
		abortWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, CardResp{Status: "ok", Mode: string(mode), Title: mode.Title(), Word: rec.Word})
}

// abortWithError maps domain errors to HTTP status codes
func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownMode),
		errors.Is(err, domain.ErrUnknownPool),
		errors.Is(err, domain.ErrInvalidOutcome),
		errors.Is(err, domain.ErrMalformedRecord):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrWordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrFileUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
