package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"palabra/internal/domain"
	"palabra/internal/repository"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Scheduler moves words between pools according to the user's recall judgments.
// Every operation reads the pools it touches, mutates them in memory and writes
// them back whole. Operations are serialized.
type Scheduler struct {
	repo   repository.PoolRepository
	logger *zap.Logger
	now    func() time.Time
	rng    *rand.Rand

	mu sync.Mutex
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock used to date Difficult5/Difficult15 entries and check due dates.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithRand sets the random source used to pick the next word.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scheduler) { s.rng = rng }
}

// NewScheduler creates a new scheduler
func NewScheduler(repo repository.PoolRepository, logger *zap.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PickNext returns a uniformly random record of pool, joined with its
// dictionary detail when the pool only stores words.
func (s *Scheduler) PickNext(pool domain.Pool) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.Load(pool)
	if err != nil {
		return domain.Record{}, err
	}
	if len(records) == 0 {
		return domain.Record{}, fmt.Errorf("%s: %w", pool, domain.ErrEmptyPool)
	}
	rec := records[s.rng.Intn(len(records))]
	if pool.HasDetail() {
		return rec, nil
	}
	full, err := s.lookup(rec.Word)
	if err != nil {
		// Word-only entry without dictionary detail is still shown.
		return rec, nil
	}
	full.Added = rec.Added
	return full, nil
}

// Due returns the words a study mode currently offers. Review modes only offer
// words known to the dictionary; Difficult5/Difficult15 only offer due words.
func (s *Scheduler) Due(mode domain.Mode) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.due(mode)
}

func (s *Scheduler) due(mode domain.Mode) ([]string, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}
	pool := mode.Pool()
	records, err := s.repo.Load(pool)
	if err != nil {
		return nil, err
	}
	if mode == domain.ModeNewWords {
		return domain.Words(records), nil
	}

	dict, err := s.repo.Load(domain.Dictionary)
	if err != nil {
		return nil, err
	}
	known := lo.KeyBy(dict, func(r domain.Record) string { return r.Word })
	today := s.now()

	due := lo.Filter(records, func(r domain.Record, _ int) bool {
		_, ok := known[r.Word]
		return ok && domain.IsDue(r.Added, pool.Interval(), today)
	})
	return domain.Words(due), nil
}

// PickDue returns a random word offered by mode with its full detail.
func (s *Scheduler) PickDue(mode domain.Mode) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.due(mode)
	if err != nil {
		return domain.Record{}, err
	}
	if len(words) == 0 {
		return domain.Record{}, fmt.Errorf("%s: %w", mode.Pool(), domain.ErrEmptyPool)
	}
	word := words[s.rng.Intn(len(words))]
	if mode == domain.ModeNewWords {
		return s.find(domain.NewWords, word)
	}
	return s.lookup(word)
}

// Lookup returns the full record of word from Dictionary, falling back to NewWords.
func (s *Scheduler) Lookup(word string) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(word)
}

func (s *Scheduler) lookup(word string) (domain.Record, error) {
	rec, err := s.find(domain.Dictionary, word)
	if err == nil {
		return rec, nil
	}
	return s.find(domain.NewWords, word)
}

func (s *Scheduler) find(pool domain.Pool, word string) (domain.Record, error) {
	records, err := s.repo.Load(pool)
	if err != nil {
		return domain.Record{}, err
	}
	idx := domain.IndexOf(records, word)
	if idx < 0 {
		return domain.Record{}, fmt.Errorf("%s in %s: %w", word, pool, domain.ErrWordNotFound)
	}
	return records[idx], nil
}

// ShowHint reveals the example sentences of the word on a mode's card.
func (s *Scheduler) ShowHint(mode domain.Mode, word string) (domain.Reveal, error) {
	rec, err := s.cardRecord(mode, word)
	if err != nil {
		return domain.Reveal{}, err
	}
	return rec.Hint(), nil
}

// ShowVerify reveals the meaning and example sentences of the word on a mode's card.
func (s *Scheduler) ShowVerify(mode domain.Mode, word string) (domain.Reveal, error) {
	rec, err := s.cardRecord(mode, word)
	if err != nil {
		return domain.Reveal{}, err
	}
	return rec.Verify(), nil
}

// cardRecord resolves word the same way PickDue did for mode. A New-words
// card is the NewWords record even when Dictionary holds an older one.
func (s *Scheduler) cardRecord(mode domain.Mode, word string) (domain.Record, error) {
	if !mode.IsValid() {
		return domain.Record{}, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == domain.ModeNewWords {
		rec, err := s.find(domain.NewWords, word)
		if err == nil || !errors.Is(err, domain.ErrWordNotFound) {
			return rec, err
		}
	}
	return s.lookup(word)
}

// RespondKnow moves word from NewWords into Dictionary.
// A word already in Dictionary is overwritten, never duplicated.
func (s *Scheduler) RespondKnow(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.confirmNewWord(word)
	return err
}

// RespondDontKnow moves word from NewWords into Dictionary and schedules it
// for Today and Difficult5.
func (s *Scheduler) RespondDontKnow(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved, err := s.confirmNewWord(word)
	if err != nil || !moved {
		return err
	}
	if err := s.scheduleDifficult(domain.Difficult5, word); err != nil {
		return err
	}
	return s.add(domain.Today, domain.Record{Word: word})
}

// confirmNewWord reports false when word was already moved by an earlier call.
func (s *Scheduler) confirmNewWord(word string) (bool, error) {
	newWords, err := s.repo.Load(domain.NewWords)
	if err != nil {
		return false, err
	}
	idx := domain.IndexOf(newWords, word)
	if idx < 0 {
		if _, err := s.find(domain.Dictionary, word); err == nil {
			return false, nil
		}
		return false, fmt.Errorf("%s in %s: %w", word, domain.NewWords, domain.ErrWordNotFound)
	}

	rec := newWords[idx]
	rec.Added = time.Time{}
	if err := s.add(domain.Dictionary, rec); err != nil {
		return false, err
	}
	if _, err := s.remove(domain.NewWords, word); err != nil {
		return false, err
	}

	s.logger.Info("Word moved",
		zap.String("word", word),
		zap.String("from", domain.NewWords.String()),
		zap.String("to", domain.Dictionary.String()),
	)
	return true, nil
}

// RespondRemembered handles a successful Difficult5/Difficult15 review.
// Difficult5 promotes to Difficult15; Difficult15 ends the review cycle.
func (s *Scheduler) RespondRemembered(pool domain.Pool, word string) error {
	if pool != domain.Difficult5 && pool != domain.Difficult15 {
		return fmt.Errorf("%w: %s is not a review pool", domain.ErrUnknownPool, pool)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMember(pool, word); err != nil {
		return err
	}
	if pool == domain.Difficult5 {
		return s.scheduleDifficult(domain.Difficult15, word)
	}

	if _, err := s.remove(domain.Difficult15, word); err != nil {
		return err
	}
	if _, err := s.remove(domain.ToPractice, word); err != nil {
		return err
	}
	s.logger.Info("Word review completed", zap.String("word", word))
	return nil
}

// RespondStillDontKnow handles a failed Difficult5/Difficult15 review.
// The word restarts the 5 day cycle and is added to Today.
func (s *Scheduler) RespondStillDontKnow(pool domain.Pool, word string) error {
	if pool != domain.Difficult5 && pool != domain.Difficult15 {
		return fmt.Errorf("%w: %s is not a review pool", domain.ErrUnknownPool, pool)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMember(pool, word); err != nil {
		return err
	}
	if err := s.scheduleDifficult(domain.Difficult5, word); err != nil {
		return err
	}
	return s.add(domain.Today, domain.Record{Word: word})
}

// ClearToday removes word from Today after it was recalled.
func (s *Scheduler) ClearToday(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.remove(domain.Today, word)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%s in %s: %w", word, domain.Today, domain.ErrWordNotFound)
	}
	return nil
}

// PracticeKnown removes word from ToPractice after a successful review.
func (s *Scheduler) PracticeKnown(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.remove(domain.ToPractice, word)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%s in %s: %w", word, domain.ToPractice, domain.ErrWordNotFound)
	}
	return nil
}

// PracticeMissed schedules a ToPractice word for Difficult5 and Today.
// The word stays in ToPractice.
func (s *Scheduler) PracticeMissed(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMember(domain.ToPractice, word); err != nil {
		return err
	}
	if err := s.scheduleDifficult(domain.Difficult5, word); err != nil {
		return err
	}
	return s.add(domain.Today, domain.Record{Word: word})
}

// Respond applies the outcome of a study mode to word.
func (s *Scheduler) Respond(mode domain.Mode, word string, outcome domain.Outcome) error {
	if outcome != domain.Know && outcome != domain.DontKnow {
		return fmt.Errorf("%w: %d", domain.ErrInvalidOutcome, int(outcome))
	}
	know := outcome == domain.Know

	switch mode {
	case domain.ModeNewWords:
		if know {
			return s.RespondKnow(word)
		}
		return s.RespondDontKnow(word)
	case domain.ModeReview:
		if know {
			return s.PracticeKnown(word)
		}
		return s.PracticeMissed(word)
	case domain.ModeFiveDay, domain.ModeFifteenDay:
		if know {
			return s.RespondRemembered(mode.Pool(), word)
		}
		return s.RespondStillDontKnow(mode.Pool(), word)
	case domain.ModeToday:
		if know {
			return s.ClearToday(word)
		}
		// A missed Today word simply stays in Today.
		return nil
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
}

// AddNewWord stores a new word in NewWords, replacing an entry with the same word.
func (s *Scheduler) AddNewWord(rec domain.Record) error {
	rec = domain.Record{
		Word:    strings.TrimSpace(rec.Word),
		Meaning: strings.TrimSpace(rec.Meaning),
		Example: strings.TrimSpace(rec.Example),
	}
	if rec.Word == "" || rec.Meaning == "" {
		return fmt.Errorf("%w: word and meaning cannot be empty", domain.ErrMalformedRecord)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.add(domain.NewWords, rec); err != nil {
		return err
	}
	s.logger.Info("New word added", zap.String("word", rec.Word))
	return nil
}

// scheduleDifficult puts word into target dated today and removes it from the
// other Difficult pool so it lives in one review cycle at a time.
func (s *Scheduler) scheduleDifficult(target domain.Pool, word string) error {
	if err := s.add(target, domain.Record{Word: word, Added: domain.Day(s.now())}); err != nil {
		return err
	}
	other := domain.Difficult5
	if target == domain.Difficult5 {
		other = domain.Difficult15
	}
	removed, err := s.remove(other, word)
	if err != nil {
		return err
	}
	if removed {
		s.logger.Info("Word moved",
			zap.String("word", word),
			zap.String("from", other.String()),
			zap.String("to", target.String()),
		)
	}
	return nil
}

func (s *Scheduler) requireMember(pool domain.Pool, word string) error {
	records, err := s.repo.Load(pool)
	if err != nil {
		return err
	}
	if !domain.Contains(records, word) {
		return fmt.Errorf("%s in %s: %w", word, pool, domain.ErrWordNotFound)
	}
	return nil
}

func (s *Scheduler) add(pool domain.Pool, rec domain.Record) error {
	records, err := s.repo.Load(pool)
	if err != nil {
		return err
	}
	if err := s.repo.Save(pool, domain.Upsert(records, rec)); err != nil {
		return fmt.Errorf("save %s: %w", pool, err)
	}
	return nil
}

func (s *Scheduler) remove(pool domain.Pool, word string) (bool, error) {
	records, err := s.repo.Load(pool)
	if err != nil {
		return false, err
	}
	out, removed := domain.Remove(records, word)
	if !removed {
		return false, nil
	}
	if err := s.repo.Save(pool, out); err != nil {
		return false, fmt.Errorf("save %s: %w", pool, err)
	}
	return true, nil
}
