package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var embedded embed.FS

// MigrateStore applies the goose migrations to db. The migrations are read
// from cfg.Service.MigrationFolder when set, otherwise from the copy built
// into the binary. The tables themselves are created by the store's
// InitialMigration; goose carries the data changes between releases.
func MigrateStore(db *gorm.DB, cfg *config.Config) error {
	migrationFS, err := migrationSource(cfg.Service.MigrationFolder)
	if err != nil {
		return err
	}

	dialect, err := gooseDialect(db)
	if err != nil {
		return err
	}

	goose.SetLogger(&logger{})
	goose.SetBaseFS(migrationFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrapf(err, "failed to set goose dialect %q", dialect)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := goose.Up(sqlDB, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}

func migrationSource(folder string) (fs.FS, error) {
	if folder == "" {
		return fs.Sub(embedded, "sql")
	}
	if _, err := os.Stat(folder); err != nil {
		return nil, fmt.Errorf("migration folder %q not found: %w", folder, err)
	}
	return os.DirFS(folder), nil
}

func gooseDialect(db *gorm.DB) (string, error) {
	switch name := db.Dialector.Name(); name {
	case "postgres":
		return "postgres", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no migration dialect for database %q", name)
	}
}

type logger struct{}

func (l *logger) Printf(format string, v ...any) {
	zap.S().Named("migrations").Infof(format, v...)
}

func (l *logger) Fatalf(format string, v ...any) {
	zap.S().Named("migrations").Fatalf(format, v...)
}
