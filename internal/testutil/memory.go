package testutil

import (
	"sync"

	"palabra/internal/domain"
)

// MemoryRepository is an in-memory PoolRepository for tests.
type MemoryRepository struct {
	mu    sync.Mutex
	pools map[domain.Pool][]domain.Record
	saves map[domain.Pool]int
	// Fail makes Load and Save of the pool return the error.
	Fail map[domain.Pool]error
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		pools: make(map[domain.Pool][]domain.Record),
		saves: make(map[domain.Pool]int),
		Fail:  make(map[domain.Pool]error),
	}
}

func (r *MemoryRepository) Load(pool domain.Pool) ([]domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Fail[pool]; err != nil {
		return nil, err
	}
	return append([]domain.Record{}, r.pools[pool]...), nil
}

func (r *MemoryRepository) Save(pool domain.Pool, records []domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Fail[pool]; err != nil {
		return err
	}
	r.pools[pool] = append([]domain.Record{}, records...)
	r.saves[pool]++
	return nil
}

// Seed replaces a pool without counting a save.
func (r *MemoryRepository) Seed(pool domain.Pool, records ...domain.Record) *MemoryRepository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[pool] = append([]domain.Record{}, records...)
	return r
}

// SeedWords replaces a word-only pool.
func (r *MemoryRepository) SeedWords(pool domain.Pool, words ...string) *MemoryRepository {
	records := make([]domain.Record, 0, len(words))
	for _, w := range words {
		records = append(records, domain.Record{Word: w})
	}
	return r.Seed(pool, records...)
}

// Records returns a copy of a pool.
func (r *MemoryRepository) Records(pool domain.Pool) []domain.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Record{}, r.pools[pool]...)
}

// Words returns the words of a pool in order.
func (r *MemoryRepository) Words(pool domain.Pool) []string {
	return domain.Words(r.Records(pool))
}

// Saves returns how many times a pool was saved.
func (r *MemoryRepository) Saves(pool domain.Pool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves[pool]
}
