package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "./client", cfg.ClientDir)
	assert.Equal(t, 4, cfg.RoomCapacity)
	assert.Equal(t, 90, cfg.RoundSeconds)
	assert.Equal(t, 5, cfg.ResetDelaySeconds)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("ROOM_CAPACITY", "8")
	t.Setenv("ROUND_SECONDS", "120")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 8, cfg.RoomCapacity)
	assert.Equal(t, 120, cfg.RoundSeconds)
}
