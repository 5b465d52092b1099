package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Opts bounds the relational connection pool: a fixed maximum of open
// connections, a connect timeout after which a queued operation fails, and
// idle-connection eviction.
type Opts struct {
	DSN            string
	MaxOpenConns   int
	MaxIdleConns   int
	ConnTimeoutSec int
	IdleTimeoutMin int
	LifetimeMin    int
	RequireTLS     bool
	LogLevel       string
}

func NewGorm(o Opts) (*gorm.DB, error) {
	dsn := normalizeDSN(o)

	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(o.IdleTimeoutMin) * time.Minute)
	if o.LifetimeMin > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(o.LifetimeMin) * time.Minute)
	}

	// 单语句执行，不开应用级事务
	db = db.Session(&gorm.Session{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	})
	return db, nil
}

// normalizeDSN injects the connect timeout and TLS requirement into either a
// postgres:// URL or a key=value DSN.
func normalizeDSN(o Opts) string {
	dsn := strings.TrimSpace(o.DSN)
	if dsn == "" {
		return dsn
	}
	sslmode := "disable"
	if o.RequireTLS {
		sslmode = "require"
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		if !strings.Contains(dsn, "sslmode=") {
			dsn += sep + "sslmode=" + sslmode
			sep = "&"
		}
		if !strings.Contains(dsn, "connect_timeout=") {
			dsn += sep + fmt.Sprintf("connect_timeout=%d", o.ConnTimeoutSec)
		}
		return dsn
	}
	if !strings.Contains(dsn, "sslmode=") {
		dsn += " sslmode=" + sslmode
	}
	if !strings.Contains(dsn, "connect_timeout=") {
		dsn += fmt.Sprintf(" connect_timeout=%d", o.ConnTimeoutSec)
	}
	return dsn
}
