package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"palabra/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

const selectPool = "SELECT word, meaning, example, added_on FROM pool_entries WHERE pool = \\$1 ORDER BY position"

func TestPoolRepo_Load(t *testing.T) {
	added := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name          string
		pool          domain.Pool
		mockRows      *sqlmock.Rows
		mockError     error
		expected      []domain.Record
		expectedError error
	}{
		{
			name: "dictionary entries",
			pool: domain.Dictionary,
			mockRows: sqlmock.NewRows([]string{"word", "meaning", "example", "added_on"}).
				AddRow("inu", "dog", "The inu barks", nil).
				AddRow("neko", "cat", "", nil),
			expected: []domain.Record{
				{Word: "inu", Meaning: "dog", Example: "The inu barks"},
				{Word: "neko", Meaning: "cat"},
			},
		},
		{
			name: "dated entries",
			pool: domain.Difficult5,
			mockRows: sqlmock.NewRows([]string{"word", "meaning", "example", "added_on"}).
				AddRow("neko", "", "", added),
			expected: []domain.Record{
				{Word: "neko", Added: added},
			},
		},
		{
			name:     "empty pool",
			pool:     domain.Today,
			mockRows: sqlmock.NewRows([]string{"word", "meaning", "example", "added_on"}),
			expected: []domain.Record{},
		},
		{
			name:          "query error",
			pool:          domain.ToPractice,
			mockError:     fmt.Errorf("connection refused"),
			expectedError: domain.ErrFileUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewPoolRepo(db)

			q := mock.ExpectQuery(selectPool).WithArgs(tt.pool.String())
			if tt.mockError != nil {
				q.WillReturnError(tt.mockError)
			} else {
				q.WillReturnRows(tt.mockRows)
			}

			records, err := repo.Load(tt.pool)

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError))
				assert.Nil(t, records)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, records)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPoolRepo_Load_DateInLocalZone(t *testing.T) {
	local := time.Local
	time.Local = time.FixedZone("UTC+9", 9*60*60)
	defer func() { time.Local = local }()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPoolRepo(db)

	// lib/pq scans DATE columns as UTC midnight
	rows := sqlmock.NewRows([]string{"word", "meaning", "example", "added_on"}).
		AddRow("neko", "", "", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(selectPool).WithArgs("difficult_5").WillReturnRows(rows)

	records, err := repo.Load(domain.Difficult5)

	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.Local), records[0].Added)
		now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local)
		assert.True(t, domain.IsDue(records[0].Added, domain.Difficult5.Interval(), now))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPoolRepo_Load_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPoolRepo(db)

	// Wrong column count causes a scan error
	rows := sqlmock.NewRows([]string{"word"}).AddRow("neko")
	mock.ExpectQuery(selectPool).WithArgs("dictionary").WillReturnRows(rows)

	records, err := repo.Load(domain.Dictionary)

	assert.True(t, errors.Is(err, domain.ErrMalformedRecord))
	assert.Nil(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPoolRepo_Load_UnknownPool(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	_, err = NewPoolRepo(db).Load(domain.Pool(42))
	assert.True(t, errors.Is(err, domain.ErrUnknownPool))
}

func TestPoolRepo_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPoolRepo(db)

	records := []domain.Record{
		{Word: "neko", Meaning: "cat", Example: "The neko sleeps"},
		{Word: "inu", Meaning: "dog"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM pool_entries WHERE pool = \\$1").
		WithArgs("dictionary").
		WillReturnResult(sqlmock.NewResult(0, 3))
	// Dictionary is stored sorted by word
	mock.ExpectExec("INSERT INTO pool_entries").
		WithArgs("dictionary", "inu", "dog", "", nil, 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO pool_entries").
		WithArgs("dictionary", "neko", "cat", "The neko sleeps", nil, 1).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err = repo.Save(domain.Dictionary, records)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPoolRepo_Save_Dated(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPoolRepo(db)
	added := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM pool_entries").
		WithArgs("difficult_15").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO pool_entries").
		WithArgs("difficult_15", "neko", "", "", added, 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = repo.Save(domain.Difficult15, []domain.Record{{Word: "neko", Added: added}})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPoolRepo_Save_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPoolRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM pool_entries").
		WithArgs("today").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO pool_entries").
		WithArgs("today", "neko", "", "", nil, 0).
		WillReturnError(fmt.Errorf("insert failed"))
	mock.ExpectRollback()

	err = repo.Save(domain.Today, []domain.Record{{Word: "neko"}})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
