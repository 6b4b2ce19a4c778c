package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
	"github.com/ngrok/sqlmw"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	pgxInstrumented    = "pgx-instrumented"
	sqliteInstrumented = "sqlite3-instrumented"
)

var registerDrivers sync.Once

// gormLogWriter sends gorm's log lines to zap.
type gormLogWriter struct {
	log *zap.SugaredLogger
}

func (w gormLogWriter) Printf(format string, args ...any) {
	w.log.Warnf(format, args...)
}

func instrumentedDrivers() {
	registerDrivers.Do(func() {
		sql.Register(pgxInstrumented, sqlmw.Driver(stdlib.GetDefaultDriver(), &metricInterceptor{}))
		sql.Register(sqliteInstrumented, sqlmw.Driver(&sqlite3.SQLiteDriver{}, &metricInterceptor{}))
	})
}

// SqliteDSN returns a DSN that lets the orchestrator and worker processes
// share one database file.
func SqliteDSN(path string) string {
	if strings.Contains(path, "?") || path == ":memory:" {
		return path
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate", path)
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dia gorm.Dialector

	instrumentedDrivers()

	if cfg.Database.Type == "pgsql" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s port=%s",
			cfg.Database.Hostname,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Port,
		)
		if cfg.Database.Name != "" {
			dsn = fmt.Sprintf("%s dbname=%s", dsn, cfg.Database.Name)
		}
		dia = postgres.New(postgres.Config{DriverName: pgxInstrumented, DSN: dsn})
	} else {
		dia = sqlite.New(sqlite.Config{DriverName: sqliteInstrumented, DSN: SqliteDSN(cfg.Database.Name)})
	}

	newLogger := logger.New(
		gormLogWriter{log: zap.S().Named("gorm")},
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true,        // Don't include params in the SQL log
			Colorful:                  false,       // Disable color
		},
	)

	newDB, err := gorm.Open(dia, &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to connect database: %v", err)
		return nil, err
	}

	sqlDB, err := newDB.DB()
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to configure connections: %v", err)
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if cfg.Database.Type == "pgsql" {
		var minorVersion string
		if result := newDB.Raw("SELECT version()").Scan(&minorVersion); result.Error != nil {
			zap.S().Named("gorm").Infoln(result.Error.Error())
			return nil, result.Error
		}

		zap.S().Named("gorm").Infof("PostgreSQL information: '%s'", minorVersion)
	}

	return newDB, nil
}
