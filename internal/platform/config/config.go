package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DataFile      string
	AdminPassword string
	BcryptCost    int
	LogLevel      string

	PointsPerSeat        int
	LuckyDrawOdds        int
	LuckyDrawBonus       int
	RevokePointsOnCancel bool

	RedisHost string
	RedisPort string
	RedisDB   int
}

// CacheEnabled reports whether a Redis seat cache is configured.
func (c Config) CacheEnabled() bool {
	return c.RedisHost != ""
}

// Load reads an optional .env file and then the environment. Missing
// variables fall back to defaults; malformed numbers are an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		DataFile:      getenv("DATA_FILE", "movie_system_data.json"),
		AdminPassword: getenv("ADMIN_PASSWORD", "12345"),
		LogLevel:      getenv("LOG_LEVEL", "warn"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
	}

	var err error
	if cfg.BcryptCost, err = atoi("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return Config{}, err
	}
	if cfg.PointsPerSeat, err = atoi("POINTS_PER_SEAT", 1); err != nil {
		return Config{}, err
	}
	if cfg.LuckyDrawOdds, err = atoi("LUCKY_DRAW_ODDS", 5); err != nil {
		return Config{}, err
	}
	if cfg.LuckyDrawBonus, err = atoi("LUCKY_DRAW_BONUS", 5); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = atoi("REDIS_DB", 0); err != nil {
		return Config{}, err
	}

	revoke := strings.ToLower(getenv("REVOKE_POINTS_ON_CANCEL", "false"))
	if cfg.RevokePointsOnCancel, err = strconv.ParseBool(revoke); err != nil {
		return Config{}, fmt.Errorf("invalid bool for REVOKE_POINTS_ON_CANCEL: %q", revoke)
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST %d out of range", cfg.BcryptCost)
	}

	if cfg.PointsPerSeat < 0 || cfg.LuckyDrawBonus < 0 || cfg.LuckyDrawOdds < 0 {
		return Config{}, fmt.Errorf("loyalty settings must not be negative")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return def
}

func atoi(key string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q", key, s)
	}

	return n, nil
}
