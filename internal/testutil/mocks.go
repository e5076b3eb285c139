package testutil

import (
	"palabra/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockPoolRepository is a mock for PoolRepository
type MockPoolRepository struct {
	mock.Mock
}

func (m *MockPoolRepository) Load(pool domain.Pool) ([]domain.Record, error) {
	args := m.Called(pool)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockPoolRepository) Save(pool domain.Pool, records []domain.Record) error {
	args := m.Called(pool, records)
	return args.Error(0)
}
