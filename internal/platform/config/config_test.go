package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/movie_booking/internal/platform/config"
)

var keys = []string{
	"DATA_FILE", "ADMIN_PASSWORD", "BCRYPT_COST", "LOG_LEVEL", "POINTS_PER_SEAT",
	"LUCKY_DRAW_ODDS", "LUCKY_DRAW_BONUS", "REVOKE_POINTS_ON_CANCEL",
	"REDIS_HOST", "REDIS_PORT", "REDIS_DB",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)

	assert.Equal(t, "movie_system_data.json", cfg.DataFile)
	assert.Equal(t, "12345", cfg.AdminPassword)
	assert.Equal(t, 1, cfg.PointsPerSeat)
	assert.Equal(t, 5, cfg.LuckyDrawOdds)
	assert.Equal(t, 5, cfg.LuckyDrawBonus)
	assert.False(t, cfg.RevokePointsOnCancel)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	for _, k := range keys {
		// godotenv does not override variables that are already set.
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"DATA_FILE=/tmp/cinema.json\nPOINTS_PER_SEAT=10\nREVOKE_POINTS_ON_CANCEL=true\nREDIS_HOST=cache\n",
	), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/cinema.json", cfg.DataFile)
	assert.Equal(t, 10, cfg.PointsPerSeat)
	assert.True(t, cfg.RevokePointsOnCancel)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, "6379", cfg.RedisPort)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"POINTS_PER_SEAT":         "many",
		"REVOKE_POINTS_ON_CANCEL": "maybe",
		"BCRYPT_COST":             "99",
		"LUCKY_DRAW_ODDS":         "-1",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := config.Load(filepath.Join(t.TempDir(), "none.env"))
			assert.Error(t, err)
		})
	}
}
