// Package config reads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/ansel1/merry"
	"github.com/joho/godotenv"
)

type Config struct {
	TokenKey       string
	DatabaseURL    string
	ListenAddr     string
	// TLSCert and TLSKey default to server.crt and server.key. TLS_CERT=-
	// clears both and the server listens with plain HTTP.
	TLSCert        string
	TLSKey         string
	RateLimit      float64
	RateBurst      int
	TokenTTL       time.Duration
	SessionIdleTTL time.Duration
	LogLevel       string
}

// Load reads envFile (if present) into the process environment and parses
// the settings. Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, merry.Prependf(err, "load %s", envFile)
	}
	return FromEnv(os.Getenv)
}

// FromEnv parses the settings using getenv for lookups.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Config{
		TokenKey:    getenv("TOKEN_KEY"),
		DatabaseURL: getenv("DATABASE_URL"),
		ListenAddr:  orDefault(getenv("LISTEN_ADDR"), ":443"),
		TLSCert:     orDefault(getenv("TLS_CERT"), "server.crt"),
		TLSKey:      orDefault(getenv("TLS_KEY"), "server.key"),
		LogLevel:    orDefault(getenv("LOG_LEVEL"), "info"),
	}
	if c.TokenKey == "" {
		return Config{}, merry.New("TOKEN_KEY environment variable is not set")
	}
	if getenv("TLS_CERT") == "-" {
		c.TLSCert, c.TLSKey = "", ""
	}

	var err error
	if c.RateLimit, err = parseFloat(getenv, "RATE_LIMIT", 1); err != nil {
		return Config{}, err
	}
	if c.RateBurst, err = parseInt(getenv, "RATE_BURST", 3); err != nil {
		return Config{}, err
	}
	if c.TokenTTL, err = parseDuration(getenv, "TOKEN_TTL", 30*24*time.Hour); err != nil {
		return Config{}, err
	}
	if c.SessionIdleTTL, err = parseDuration(getenv, "SESSION_IDLE_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	return c, nil
}

// TLS reports whether the server should listen with TLS.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseFloat(getenv func(string) string, key string, def float64) (float64, error) {
	s := getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, merry.Errorf("invalid %s=%q: must be a positive number", key, s)
	}
	return v, nil
}

func parseInt(getenv func(string) string, key string, def int) (int, error) {
	s := getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, merry.Errorf("invalid %s=%q: must be a positive integer", key, s)
	}
	return v, nil
}

func parseDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	s := getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil || v <= 0 {
		return 0, merry.Errorf("invalid %s=%q: must be a positive duration", key, s)
	}
	return v, nil
}
