// Package config はアプリケーション設定を.envと環境変数から読み込みます。
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Server Server
	Cache  Cache
	Ingest Ingest
}

// Server holds the HTTP listener settings.
type Server struct {
	Port string
	Mode string
}

// Cache holds the Redis query cache settings.
type Cache struct {
	// TTL はキャッシュエントリの有効期間です。0の場合は次のUTC日付変更まで保持します。
	TTL       time.Duration
	Namespace string
}

// Ingest holds the dump ingestion settings.
type Ingest struct {
	// DumpFile はダンプファイルのパスです。空の場合は合成シードを使用します。
	DumpFile string
	// SyntheticCount はDumpFile未指定時に生成する銘柄数です。
	SyntheticCount int
	// SeriesLengthDays は銘柄ごとに合成する日次観測値の数です。
	SeriesLengthDays int
	// Workers は取り込みの並列度です。0は利用可能な並列度を意味します。
	Workers int
	// Timeout は取り込み全体の打ち切り時間です。
	Timeout time.Duration
}

// Load loads configuration from the .env file, falling back to process
// environment variables when the file is absent.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &Config{
		Server: Server{
			Port: getEnv("PORT", "8080"),
			Mode: getEnv("GIN_MODE", "debug"),
		},
		Cache: Cache{
			TTL:       getEnvDuration("CACHE_TTL", 0),
			Namespace: getEnv("CACHE_NAMESPACE", "series"),
		},
		Ingest: Ingest{
			DumpFile:         getEnv("DUMP_FILE", ""),
			SyntheticCount:   getEnvInt("SYNTHETIC_COUNT", 10),
			SeriesLengthDays: getEnvInt("SERIES_LENGTH_DAYS", 365),
			Workers:          getEnvInt("INGEST_WORKERS", 0),
			Timeout:          getEnvDuration("INGEST_TIMEOUT", 10*time.Minute),
		},
	}
}

// getEnv gets an environment variable with a fallback.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt gets an integer environment variable with a fallback.
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", value)
		return fallback
	}
	return n
}

// getEnvDuration gets a duration environment variable with a fallback.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using fallback", "key", key, "value", value)
		return fallback
	}
	return d
}
