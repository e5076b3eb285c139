package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		expectedError bool
	}{
		{name: "info", level: "info"},
		{name: "debug", level: "debug"},
		{name: "upper case", level: "WARN"},
		{name: "unknown level", level: "verbose", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, logger)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, logger)
			}
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palabra.log")

	logger, err := New("info", path)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("Word moved", zap.String("word", "neko"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"word":"neko"`)
	assert.NotContains(t, string(data), "hidden")
}
