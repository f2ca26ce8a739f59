package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_DIR", "LOG_LEVEL", "SCAN_SCHEDULE", "READ_TIMEOUT", "WRITE_TIMEOUT"} {
		t.Setenv(key, "")
	}
	// t.Setenv with "" still marks the variable as set; DATA_DIR must be set explicitly
	t.Setenv("DATA_DIR", "test_data_dir")
	t.Setenv("PORT", "8080")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "test_data_dir", cfg.DataDir)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_DIR", "/srv/exports")
	t.Setenv("SCAN_SCHEDULE", "@hourly")
	t.Setenv("READ_TIMEOUT", "3s")
	t.Setenv("WRITE_TIMEOUT", "1m")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/srv/exports", cfg.DataDir)
	assert.Equal(t, "@hourly", cfg.ScanSchedule)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, time.Minute, cfg.WriteTimeout)
}

func TestNewConfig_Errors(t *testing.T) {
	t.Run("blank data dir", func(t *testing.T) {
		t.Setenv("DATA_DIR", "")
		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("DATA_DIR", "data")
		t.Setenv("READ_TIMEOUT", "soon")
		_, err := NewConfig()
		assert.ErrorContains(t, err, "READ_TIMEOUT")
	})
}
