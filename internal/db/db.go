package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// Open parses a database URL (mysql://, postgres://, sqlite:) and returns a
// connected GORM DB instance for the matching dialect. GORM warnings and
// errors are written to log; a nil log discards them.
func Open(url string, log *zap.Logger) (*gorm.DB, error) {
	u, err := dburl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	var dialector gorm.Dialector
	switch u.Driver {
	case "mysql":
		dialector = mysql.Open(u.DSN)
	case "postgres", "pgx":
		dialector = postgres.Open(u.DSN)
	case "sqlite3", "sqlite", "moderncsqlite":
		return NewSQLite(u.DSN, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", u.Driver)
	}

	db, err := gorm.Open(dialector, newConfig(log))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", u.Driver, err)
	}
	return db, nil
}

// NewSQLite opens a SQLite database with foreign keys enforced. SQLite allows
// a single writer, so the pool is capped at one connection; this also keeps
// ":memory:" databases shared across queries.
func NewSQLite(dsn string, log *zap.Logger) (*gorm.DB, error) {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := gorm.Open(sqlite.Open(dsn+sep+"_pragma=foreign_keys(1)"), newConfig(log))
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func newConfig(log *zap.Logger) *gorm.Config {
	return &gorm.Config{
		// ErrDuplicatedKey lets the services turn unique index violations
		// into domain conflicts.
		TranslateError: true,
		Logger:         newLogger(log),
	}
}

// zapWriter adapts zap to GORM's logger.Writer.
type zapWriter struct {
	log *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.log.Warnf(format, args...)
}

// newLogger reports slow queries and failures. Record-not-found is normal
// control flow for lookups and is not logged, and statements are logged
// with placeholders instead of bound values.
func newLogger(log *zap.Logger) logger.Interface {
	if log == nil {
		log = zap.NewNop()
	}
	return logger.New(zapWriter{log: log.Named("gorm").Sugar()}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
		Colorful:                  false,
	})
}
