// internal/config/config.go
//
// Environment-driven configuration for the Hangman server.
// main loads a .env file (if any) with godotenv before calling Load.
//
// Environment variables:
//   PORT=5175                  listen port
//   LOG_LEVEL=info             zerolog level name
//   STORE_DRIVER=memory        memory | sqlite
//   DB_PATH=./data/hangman.db  sqlite file (STORE_DRIVER=sqlite only)
//   HANGMAN_WORD=example       secret word for new games
//   CLIENT_ORIGIN=*            CORS allowed origin
//   REQUEST_TIMEOUT=10s        per-request handler deadline

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

// Store drivers understood by STORE_DRIVER.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config is the resolved server configuration.
type Config struct {
	Port           string
	LogLevel       zerolog.Level
	StoreDriver    string
	DBPath         string
	Word           string
	ClientOrigin   string
	RequestTimeout time.Duration
}

// Addr returns the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }

// Load reads configuration from the environment, applying defaults.
func Load() (Config, error) {
	c := Config{
		Port:         getEnv("PORT", "5175"),
		StoreDriver:  getEnv("STORE_DRIVER", DriverMemory),
		DBPath:       getEnv("DB_PATH", "./data/hangman.db"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "*"),
	}

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return c, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	c.LogLevel = lvl

	if _, err := strconv.Atoi(c.Port); err != nil {
		return c, fmt.Errorf("PORT %q: %w", c.Port, err)
	}

	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	default:
		return c, fmt.Errorf("STORE_DRIVER %q: want %s or %s", c.StoreDriver, DriverMemory, DriverSQLite)
	}

	if c.Word, err = words.Normalize(getEnv("HANGMAN_WORD", words.Default)); err != nil {
		return c, fmt.Errorf("HANGMAN_WORD: %w", err)
	}

	if c.RequestTimeout, err = time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s")); err != nil {
		return c, fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
