package database

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// DefaultSQLitePath is used when no DSN is configured.
const DefaultSQLitePath = "chatbot.db"

func getLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB, maxOpen int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(min(10, maxOpen))
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// IsSQLite reports whether dsn selects the embedded SQLite store.
func IsSQLite(dsn string) bool {
	return dsn == "" || strings.HasPrefix(dsn, sqlitePrefix)
}

// SQLitePath extracts the file path from "sqlite:<path>" or the SQLAlchemy style
// "sqlite:///<path>".
func SQLitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, sqlitePrefix)
	path = strings.TrimPrefix(path, "///")
	if path == "" {
		return DefaultSQLitePath
	}
	return filepath.Clean(path)
}

func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	return Open(dsn, logger.Warn)
}

// Open picks postgres or SQLite from dsn. SQLite allows a single writer, so its
// pool is capped at one connection.
func Open(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	dialector := postgres.Open(dsn)
	maxOpen := 100
	if IsSQLite(dsn) {
		dialector = sqlite.Open(SQLitePath(dsn) + "?_busy_timeout=5000")
		maxOpen = 1
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: getLogger(level),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, maxOpen); err != nil {
		return nil, err
	}

	return db, nil
}
