// Package db はGORMによるデータベース接続を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	// DriverPostgres は本番で使用するPostgreSQLドライバー名です。
	DriverPostgres = "postgres"
	// DriverSQLite はローカル実行用のSQLiteドライバー名です。
	DriverSQLite = "sqlite"
)

// retryInterval は接続リトライの待機間隔です。
var retryInterval = 3 * time.Second

// Config はデータベース接続設定を保持します。
type Config struct {
	Driver        string
	URL           string // DATABASE_URL。設定されていれば個別項目より優先
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	SSLMode       string
	SQLitePath    string
	RunMigrations bool
	ConnectWait   time.Duration
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:        os.Getenv("DB_DRIVER"),
		URL:           os.Getenv("DATABASE_URL"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		Host:          os.Getenv("DB_HOST"),
		Port:          os.Getenv("DB_PORT"),
		SSLMode:       os.Getenv("DB_SSLMODE"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
		ConnectWait:   60 * time.Second,
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverPostgres
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "./featureboard.db"
	}
	return cfg
}

// BuildDSN は設定から接続文字列を生成します。
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		return cfg.SQLitePath
	}
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// NewOpener はドライバー名に対応するOpenerを返します。
func NewOpener(driver string) (Opener, error) {
	gcfg := &gorm.Config{TranslateError: true}
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gcfg)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ConnectWithRetry は timeout に達するまで retryInterval 間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB は設定に従って接続し、RunMigrations が true の場合は models をマイグレーションします。
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	open, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectWait, open)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		// SQLiteは書き込みを直列化する
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return db, nil
}
