package postgres

import (
	"database/sql"
	"fmt"

	"palabra/internal/domain"
)

// PoolRepo implements repository.PoolRepository on the pool_entries table
type PoolRepo struct {
	db *sql.DB
}

// NewPoolRepo creates a new pool repository
func NewPoolRepo(db *sql.DB) *PoolRepo {
	return &PoolRepo{db: db}
}

// Load returns the records of a pool in stored order
func (r *PoolRepo) Load(pool domain.Pool) ([]domain.Record, error) {
	if !pool.IsValid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownPool, int(pool))
	}

	query := `
		SELECT word, meaning, example, added_on
		FROM pool_entries
		WHERE pool = $1
		ORDER BY position
	`
	rows, err := r.db.Query(query, pool.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, pool, err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		var rec domain.Record
		var added sql.NullTime
		if err := rows.Scan(&rec.Word, &rec.Meaning, &rec.Example, &added); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrMalformedRecord, pool, err)
		}
		if added.Valid {
			rec.Added = domain.LocalDay(added.Time)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFileUnavailable, pool, err)
	}
	return records, nil
}

// Save replaces the whole pool inside one transaction
func (r *PoolRepo) Save(pool domain.Pool, records []domain.Record) error {
	if !pool.IsValid() {
		return fmt.Errorf("%w: %d", domain.ErrUnknownPool, int(pool))
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM pool_entries WHERE pool = $1`, pool.String()); err != nil {
		return err
	}

	query := `
		INSERT INTO pool_entries (pool, word, meaning, example, added_on, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, rec := range domain.Sorted(pool, domain.Dedupe(pool, records)) {
		var added sql.NullTime
		if !rec.Added.IsZero() {
			added = sql.NullTime{Time: rec.Added, Valid: true}
		}
		if _, err := tx.Exec(query, pool.String(), rec.Word, rec.Meaning, rec.Example, added, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}
