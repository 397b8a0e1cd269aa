package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.log")

	log, err := New(Options{Level: "debug", File: path, MaxSizeMB: 1, MaxAgeDays: 1})
	require.NoError(t, err)

	log.Debug("Wallet persisted", zap.String("wallet_id", "w-1"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"wallet_id":"w-1"`)
	assert.Contains(t, string(data), "Wallet persisted")
}

func TestNewLevel(t *testing.T) {
	log, err := New(Options{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.ErrorLevel))

	_, err = New(Options{Level: "loud"})
	assert.Error(t, err)
}
