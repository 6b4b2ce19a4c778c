// Package storetest opens throwaway sqlite databases for package tests.
package storetest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"gorm.io/gorm"
)

// Config returns the default configuration pointed at a sqlite file in dir.
func Config(dir string) *config.Config {
	cfg := config.NewDefault()
	cfg.Database.Type = "sqlite"
	cfg.Database.Name = filepath.Join(dir, "ecfr.db")
	return cfg
}

// Open creates a migrated sqlite store under a fresh temp dir. The returned
// cleanup closes the store and removes the directory.
func Open() (store.Store, *gorm.DB, *config.Config, func(), error) {
	dir, err := os.MkdirTemp("", "ecfr-store-")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cfg := Config(dir)
	db, err := store.InitDB(cfg)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, nil, nil, nil, err
	}
	s := store.NewStore(db)
	if err := s.InitialMigration(context.TODO()); err != nil {
		_ = s.Close()
		_ = os.RemoveAll(dir)
		return nil, nil, nil, nil, err
	}
	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(dir)
	}
	return s, db, cfg, cleanup, nil
}

// SeedCorpus writes titles 1..titles, each with sectionsPerTitle sections.
// Section identifiers are zero padded so lexical order matches numeric order.
func SeedCorpus(ctx context.Context, s store.Store, titles, sectionsPerTitle int) error {
	for t := 1; t <= titles; t++ {
		if err := s.Corpus().UpsertTitle(ctx, model.Title{Number: t, Name: TitleName(t)}); err != nil {
			return err
		}
		for i := 1; i <= sectionsPerTitle; i++ {
			doc := model.Document{
				ID:                DocumentID(t, i),
				TitleNumber:       t,
				SectionIdentifier: SectionIdentifier(t, i),
				Heading:           "Definitions",
				Content:           "The applicant shall file the form. The agency must review each application within thirty days.",
			}
			if err := s.Corpus().UpsertDocument(ctx, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

func TitleName(t int) string {
	return fmt.Sprintf("Title %d", t)
}

func SectionIdentifier(t, i int) string {
	return fmt.Sprintf("%d.%04d", t, i)
}

func DocumentID(t, i int) string {
	return fmt.Sprintf("doc-%d-%04d", t, i)
}
