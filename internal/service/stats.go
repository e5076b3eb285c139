package service

import (
	"palabra/internal/domain"
	"palabra/internal/repository"

	"go.uber.org/zap"
)

// StatsService reports pool sizes and due counts
type StatsService struct {
	repo      repository.PoolRepository
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(repo repository.PoolRepository, scheduler *Scheduler, logger *zap.Logger) *StatsService {
	return &StatsService{
		repo:      repo,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Counts returns the number of records in every pool
func (s *StatsService) Counts() (map[domain.Pool]int, error) {
	counts := make(map[domain.Pool]int, len(domain.Pools))
	for _, pool := range domain.Pools {
		records, err := s.repo.Load(pool)
		if err != nil {
			return nil, err
		}
		counts[pool] = len(records)
	}
	return counts, nil
}

// DueCounts returns how many words every study mode currently offers
func (s *StatsService) DueCounts() (map[domain.Mode]int, error) {
	counts := make(map[domain.Mode]int, len(domain.Modes))
	for _, mode := range domain.Modes {
		words, err := s.scheduler.Due(mode)
		if err != nil {
			return nil, err
		}
		counts[mode] = len(words)
	}
	return counts, nil
}

// ReportDue logs the due counts of every study mode
func (s *StatsService) ReportDue() error {
	counts, err := s.DueCounts()
	if err != nil {
		s.logger.Error("Failed to count due words", zap.Error(err))
		return err
	}

	fields := make([]zap.Field, 0, len(domain.Modes))
	for _, mode := range domain.Modes {
		fields = append(fields, zap.Int(string(mode), counts[mode]))
	}
	s.logger.Info("Words due for review", fields...)
	return nil
}
