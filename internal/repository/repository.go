package repository

import (
	"palabra/internal/domain"
)

// PoolRepository loads and stores whole pools.
// Load returns records in storage order; Save replaces the pool.
type PoolRepository interface {
	Load(pool domain.Pool) ([]domain.Record, error)
	Save(pool domain.Pool, records []domain.Record) error
}
