// Package config loads the server's runtime knobs from a .env file
// (if present) and the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-controlled server knob.
type Config struct {
	Host string
	Port string

	MaxConnections int

	SessionTimeout time.Duration

	MinBet          int64
	MaxBet          int64
	MaxBetsPerRound int
	DefaultBalance  int64

	StaleRoundTimeout time.Duration
	DefaultRoomCount  int
	MaxRoomCapacity   int

	CleanupInterval time.Duration

	RateLimitPerMinute int
}

// Defaults returns the configuration used when no overrides are set.
func Defaults() *Config {
	return &Config{
		Host:               "localhost",
		Port:               "8765",
		MaxConnections:     100,
		SessionTimeout:     1800 * time.Second,
		MinBet:             1,
		MaxBet:             1000,
		MaxBetsPerRound:    10,
		DefaultBalance:     1000,
		StaleRoundTimeout:  600 * time.Second,
		DefaultRoomCount:   10,
		MaxRoomCapacity:    50,
		CleanupInterval:    300 * time.Second,
		RateLimitPerMinute: 100,
	}
}

// Load reads .env (warning, not failing, if absent) and overlays any
// matching environment variables on top of Defaults().
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	} else {
		log.Println("✅ Loaded environment variables from .env")
	}

	cfg := Defaults()

	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v, ok := getInt("MAX_CONNECTIONS"); ok {
		cfg.MaxConnections = v
	}
	if v, ok := getInt("SESSION_TIMEOUT"); ok {
		cfg.SessionTimeout = time.Duration(v) * time.Second
	}
	if v, ok := getInt64("MIN_BET"); ok {
		cfg.MinBet = v
	}
	if v, ok := getInt64("MAX_BET"); ok {
		cfg.MaxBet = v
	}
	if v, ok := getInt("MAX_BETS_PER_ROUND"); ok {
		cfg.MaxBetsPerRound = v
	}
	if v, ok := getInt64("DEFAULT_BALANCE"); ok {
		cfg.DefaultBalance = v
	}
	if v, ok := getInt("STALE_ROUND_TIMEOUT"); ok {
		cfg.StaleRoundTimeout = time.Duration(v) * time.Second
	}
	if v, ok := getInt("DEFAULT_ROOM_COUNT"); ok {
		cfg.DefaultRoomCount = v
	}
	if v, ok := getInt("MAX_ROOM_CAPACITY"); ok {
		cfg.MaxRoomCapacity = v
	}
	if v, ok := getInt("CLEANUP_INTERVAL"); ok {
		cfg.CleanupInterval = time.Duration(v) * time.Second
	}
	if v, ok := getInt("RATE_LIMIT_PER_MINUTE"); ok {
		cfg.RateLimitPerMinute = v
	}

	return cfg
}

// Addr is the host:port pair to listen on.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, ignoring", key, v)
		return 0, false
	}
	return n, true
}

func getInt64(key string) (int64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, ignoring", key, v)
		return 0, false
	}
	return n, true
}
