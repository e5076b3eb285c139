package textfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"palabra/internal/domain"

	"go.uber.org/zap"
)

// Store keeps each pool in its own text file under one directory.
// Every Save rewrites one whole file; there is no locking across processes.
type Store struct {
	dir      string
	logger   *zap.Logger
	required map[domain.Pool]bool
}

// NewStore creates a text file store rooted at dir.
// Dictionary and ToPractice must exist; other pool files read as empty when missing.
func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
		required: map[domain.Pool]bool{
			domain.Dictionary: true,
			domain.ToPractice: true,
		},
	}
}

// Path returns the file backing pool.
func (s *Store) Path(pool domain.Pool) string {
	return filepath.Join(s.dir, pool.FileName())
}

// Init creates the data directory and empty files for missing pools.
// Existing files are left untouched.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, s.dir, err)
	}
	for _, pool := range domain.Pools {
		path := s.Path(pool)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, path, err)
		}
		s.logger.Info("Created pool file", zap.String("path", path))
	}
	return nil
}

// Load reads and parses a pool file.
func (s *Store) Load(pool domain.Pool) ([]domain.Record, error) {
	if !pool.IsValid() {
		return nil, fmt.Errorf("load: %w: %d", domain.ErrUnknownPool, int(pool))
	}
	path := s.Path(pool)

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !s.required[pool] {
			return []domain.Record{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, path, err)
	}

	records, skipped, err := Decode(pool, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, path, err)
	}
	for _, lineErr := range skipped {
		s.logger.Warn("Skipping malformed record",
			zap.String("pool", pool.String()),
			zap.String("path", path),
			zap.Error(lineErr),
		)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// Save writes the pool to a temporary file and renames it over the old one.
func (s *Store) Save(pool domain.Pool, records []domain.Record) error {
	if !pool.IsValid() {
		return fmt.Errorf("save: %w: %d", domain.ErrUnknownPool, int(pool))
	}
	path := s.Path(pool)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, s.dir, err)
	}

	var buf bytes.Buffer
	if err := Encode(pool, &buf, records); err != nil {
		return fmt.Errorf("encode %s: %w", pool, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+pool.String()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, path, err)
	}

	s.logger.Debug("Pool saved",
		zap.String("pool", pool.String()),
		zap.Int("records", len(records)),
	)
	return nil
}
