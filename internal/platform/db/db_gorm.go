// Package db はGORMによるデータベース接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	stocksadapters "financeviews/internal/feature/stocks/adapters"
	tsadapters "financeviews/internal/feature/timeseries/adapters"
)

// Config はデータベース接続設定です。
type Config struct {
	Driver   string // "mysql"（デフォルト）または "postgres"
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

// LoadConfigFromEnv は環境変数から接続設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		Driver:   os.Getenv("DB_DRIVER"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
	}
}

// BuildDSN は設定からドライバに応じたDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	if cfg.Driver == "postgres" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// OpenerFunc はDSNからgorm.DBを開く関数です。テストで差し替えられるようにします。
type OpenerFunc func(dsn string) (*gorm.DB, error)

func openerFor(cfg Config) OpenerFunc {
	if cfg.Driver == "postgres" {
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		}
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gmysql.Open(dsn), &gorm.Config{})
	}
}

// ConnectWithRetry は接続に成功するかタイムアウトするまで3秒間隔でリトライします。
// コンテナ起動直後にDBがまだ受け付けていないケースに備えたものです。
func ConnectWithRetry(dsn string, timeout time.Duration, opener OpenerFunc) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB は環境変数の設定でデータベースに接続し、必要ならマイグレーションを実行します。
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, openerFor(cfg))
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（銘柄、観測値、シーケンス）
		if err := db.AutoMigrate(
			&stocksadapters.StockModel{},
			&tsadapters.StockTsModel{},
			&SequenceModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
