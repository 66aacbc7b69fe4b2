package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	PlacesFile     string        // path to the places catalog yaml
	PublicURL      string        // base URL for voting share links (ex: https://polls.domain.ext)
	ReloadInterval time.Duration // interval to reload places.yaml (default: 24h)

	RetentionInterval  time.Duration // interval between retention sweeps (default: 24h)
	RetentionThreshold time.Duration // how long ended polls are kept (default: 720h)

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDialTimeout    time.Duration // ex: 5s
	RedisReadTimeout    time.Duration // ex: 3s
	RedisWriteTimeout   time.Duration // ex: 3s
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
}

func Load() *Config {
	return &Config{
		// Server settings
		ListenPort:      getenv("POLLSVC_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("POLLSVC_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("POLLSVC_LOG_LEVEL", "info"),
		PrettyLog: mustBool("POLLSVC_PRETTY_LOG", true),

		// Places catalog
		PlacesFile:     getenv("POLLSVC_PLACES_FILE", "/app/places.yaml"),
		PublicURL:      requireEnv("POLLSVC_PUBLIC_URL"),
		ReloadInterval: mustDuration("POLLSVC_RELOAD_INTERVAL", 24*time.Hour),

		// Retention
		RetentionInterval:  mustDuration("POLLSVC_RETENTION_INTERVAL", 24*time.Hour),
		RetentionThreshold: mustDuration("POLLSVC_RETENTION_THRESHOLD", 720*time.Hour),

		// Redis settings
		RedisAddr:           requireEnv("POLLSVC_REDIS_ADDR"),
		RedisPassword:       getenv("POLLSVC_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("POLLSVC_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("POLLSVC_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("POLLSVC_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("POLLSVC_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("POLLSVC_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("POLLSVC_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("POLLSVC_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("POLLSVC_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("POLLSVC_REDIS_PING_TIMEOUT", 5*time.Second),
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
