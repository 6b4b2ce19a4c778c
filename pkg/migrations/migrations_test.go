package migrations_test

import (
	"context"
	"os"
	"path"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/storetest"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("migrations", Ordered, func() {
	var (
		s       store.Store
		gormdb  *gorm.DB
		cfg     *config.Config
		cleanup func()
	)

	BeforeAll(func() {
		var err error
		s, gormdb, cfg, cleanup, err = storetest.Open()
		Expect(err).To(BeNil())
	})

	AfterAll(func() {
		cleanup()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM section_analyses;")
		gormdb.Exec("DROP TABLE IF EXISTS goose_db_version;")
		cfg.Service.MigrationFolder = ""
	})

	analysis := func(doc string, antiquated, unfriendly int) model.SectionAnalysis {
		return model.SectionAnalysis{
			DocumentID:              doc,
			AnalysisVersion:         "1",
			TitleNumber:             1,
			SectionIdentifier:       doc,
			AntiquatedScore:         antiquated,
			BusinessUnfriendlyScore: unfriendly,
			AnalysisDate:            time.Now(),
		}
	}

	It("fails to migrate the db -- migration folder does not exist", func() {
		cfg.Service.MigrationFolder = "some folder"
		err := migrations.MigrateStore(gormdb, cfg)
		Expect(err).NotTo(BeNil())
	})

	It("successfully migrates the db from the folder", func() {
		currentFolder, err := os.Getwd()
		Expect(err).To(BeNil())
		cfg.Service.MigrationFolder = path.Join(currentFolder, "sql")

		Expect(migrations.MigrateStore(gormdb, cfg)).To(BeNil())

		var count int64
		tx := gormdb.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'goose_db_version';").Scan(&count)
		Expect(tx.Error).To(BeNil())
		Expect(count).To(Equal(int64(1)))
	})

	It("promotes legacy scores exactly once", func() {
		_, err := s.SectionAnalysis().Upsert(context.TODO(), analysis("legacy", 7, 3))
		Expect(err).To(BeNil())
		_, err = s.SectionAnalysis().Upsert(context.TODO(), analysis("current", 45, 60))
		Expect(err).To(BeNil())

		Expect(migrations.MigrateStore(gormdb, cfg)).To(BeNil())

		legacy, err := s.SectionAnalysis().Get(context.TODO(), "legacy", "1")
		Expect(err).To(BeNil())
		Expect(legacy.AntiquatedScore).To(Equal(70))
		Expect(legacy.BusinessUnfriendlyScore).To(Equal(30))

		current, err := s.SectionAnalysis().Get(context.TODO(), "current", "1")
		Expect(err).To(BeNil())
		Expect(current.AntiquatedScore).To(Equal(45))
		Expect(current.BusinessUnfriendlyScore).To(Equal(60))

		// a new-scale score written after the migration stays as is
		_, err = s.SectionAnalysis().Upsert(context.TODO(), analysis("fresh", 5, 8))
		Expect(err).To(BeNil())
		Expect(migrations.MigrateStore(gormdb, cfg)).To(BeNil())

		fresh, err := s.SectionAnalysis().Get(context.TODO(), "fresh", "1")
		Expect(err).To(BeNil())
		Expect(fresh.AntiquatedScore).To(Equal(5))
		Expect(fresh.BusinessUnfriendlyScore).To(Equal(8))
	})
})
