package storage

import (
	"testing"

	"palabra/internal/config"
	"palabra/internal/domain"
	"palabra/internal/repository/textfile"
	"palabra/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_File(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageFile, DataDir: t.TempDir()}

	repo, closeFn, err := Open(cfg, testutil.NewTestLogger())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &textfile.Store{}, repo)

	require.NoError(t, repo.Save(domain.Today, []domain.Record{{Word: "neko"}}))
	records, err := repo.Load(domain.Today)
	require.NoError(t, err)
	assert.Equal(t, []string{"neko"}, domain.Words(records))
}

func TestOpen_UnknownStorage(t *testing.T) {
	cfg := &config.Config{Storage: "redis"}

	repo, closeFn, err := Open(cfg, testutil.NewTestLogger())

	assert.Error(t, err)
	assert.Nil(t, repo)
	assert.Nil(t, closeFn)
}
