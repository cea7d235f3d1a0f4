// Package store owns all writes to the relational schema. Ingestion is
// idempotent per surah: one transaction deletes every existing row for the
// surah number and inserts the freshly extracted tree, so a re-run (or a
// retry after a rollback) always converges to the same end state.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/owaisj/quranpipe/internal/progress"
	"github.com/owaisj/quranpipe/internal/quran"
)

// Store wraps the gorm handle and the default translator attribution.
type Store struct {
	db         *gorm.DB
	log        *slog.Logger
	translator string
}

// Open connects to Postgres using the given DSN.
func Open(dsn string, translator string, logg *slog.Logger) (*Store, error) {
	if logg == nil {
		logg = slog.Default()
	}
	if translator == "" {
		translator = DefaultTranslator
	}

	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &Store{db: db, log: logg, translator: translator}, nil
}

// NewWithDB wraps an existing gorm handle. Used by tests.
func NewWithDB(db *gorm.DB, logg *slog.Logger) *Store {
	if logg == nil {
		logg = slog.Default()
	}
	return &Store{db: db, log: logg, translator: DefaultTranslator}
}

// constraintDDL declares the foreign keys explicitly so the delete-then-insert
// idempotency mechanism gets its cascades from the database, not from
// application code.
var constraintDDL = []string{
	`ALTER TABLE paragraphs DROP CONSTRAINT IF EXISTS fk_paragraphs_surah`,
	`ALTER TABLE paragraphs ADD CONSTRAINT fk_paragraphs_surah
	   FOREIGN KEY (surah_id) REFERENCES surahs(id) ON DELETE CASCADE`,
	`ALTER TABLE ayahs DROP CONSTRAINT IF EXISTS fk_ayahs_surah`,
	`ALTER TABLE ayahs ADD CONSTRAINT fk_ayahs_surah
	   FOREIGN KEY (surah_id) REFERENCES surahs(id) ON DELETE CASCADE`,
	`ALTER TABLE ayahs DROP CONSTRAINT IF EXISTS fk_ayahs_paragraph`,
	`ALTER TABLE ayahs ADD CONSTRAINT fk_ayahs_paragraph
	   FOREIGN KEY (paragraph_id) REFERENCES paragraphs(id) ON DELETE SET NULL`,
	`ALTER TABLE footnotes DROP CONSTRAINT IF EXISTS fk_footnotes_ayah`,
	`ALTER TABLE footnotes ADD CONSTRAINT fk_footnotes_ayah
	   FOREIGN KEY (ayah_id) REFERENCES ayahs(id) ON DELETE CASCADE`,
}

// EnsureSchema migrates the four tables and installs the cascading foreign
// keys. Safe to run on every start.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}
	if err := db.AutoMigrate(&Surah{}, &Paragraph{}, &Ayah{}, &Footnote{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	for _, ddl := range constraintDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("install constraints: %w", err)
		}
	}
	return nil
}

// SaveSurah persists one structured surah inside a single transaction:
// delete all rows for the surah number, then insert the chapter row, its
// paragraphs, their ayahs, and each ayah's footnotes. Any failure rolls the
// whole surah back, leaving previously committed state intact.
//
// Ayahs whose boundary marker could not be read (Number 0) get a fallback
// number of max(highest number seen so far, ayahs inserted so far) + 1, which
// keeps (surah, number) unique without colliding with marker-derived numbers.
//
// Returns the number of ayah rows written.
func (s *Store) SaveSurah(ctx context.Context, su *quran.Surah) (int, error) {
	saved := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("number = ?", su.Number).Delete(&Surah{}).Error; err != nil {
			return fmt.Errorf("delete surah %d: %w", su.Number, err)
		}

		row := Surah{
			ID:           uuid.New(),
			Number:       su.Number,
			NameArabic:   su.NameArabic,
			NameEnglish:  su.NameEnglish,
			Introduction: su.Introduction,
			SourceURL:    su.SourceURL,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert surah %d: %w", su.Number, err)
		}

		ins := ayahInserter{tx: tx, surahID: row.ID, translator: s.translator}

		for _, p := range su.Paragraphs {
			pr := Paragraph{
				ID:             uuid.New(),
				SurahID:        row.ID,
				ParagraphIndex: p.Index,
			}
			if p.SectionTitle != "" {
				title := p.SectionTitle
				pr.SectionTitle = &title
			}
			if err := tx.Create(&pr).Error; err != nil {
				return fmt.Errorf("insert paragraph %d of surah %d: %w", p.Index, su.Number, err)
			}
			for _, a := range p.Ayahs {
				if err := ins.insert(a, &pr.ID); err != nil {
					return err
				}
			}
		}

		for _, a := range su.Ayahs {
			if err := ins.insert(a, nil); err != nil {
				return err
			}
		}

		saved = ins.inserted
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saved, nil
}

// ayahInserter tracks the fallback numbering state for one surah transaction.
type ayahInserter struct {
	tx         *gorm.DB
	surahID    uuid.UUID
	translator string

	inserted int
	maxSeen  int
}

// resolveNumber picks the number to persist: the marker-derived number when
// known, otherwise max(highest number seen, rows inserted) + 1.
func resolveNumber(markerNum, maxSeen, inserted int) int {
	if markerNum > 0 {
		return markerNum
	}
	n := maxSeen
	if inserted > n {
		n = inserted
	}
	return n + 1
}

func (ai *ayahInserter) insert(a quran.Ayah, paragraphID *uuid.UUID) error {
	num := resolveNumber(a.Number, ai.maxSeen, ai.inserted)
	if num > ai.maxSeen {
		ai.maxSeen = num
	}

	row := Ayah{
		ID:              uuid.New(),
		SurahID:         ai.surahID,
		ParagraphID:     paragraphID,
		AyahNumber:      num,
		ArabicText:      a.Arabic,
		TranslationText: a.Translation,
		Translator:      ai.translator,
	}
	if err := ai.tx.Create(&row).Error; err != nil {
		return fmt.Errorf("insert ayah %d: %w", num, err)
	}
	ai.inserted++

	for _, fn := range a.Footnotes {
		fr := Footnote{
			ID:            uuid.New(),
			AyahID:        row.ID,
			FootnoteIndex: fn.Index,
			Content:       fn.Content,
		}
		if err := ai.tx.Create(&fr).Error; err != nil {
			return fmt.Errorf("insert footnote %d of ayah %d: %w", fn.Index, num, err)
		}
	}
	return nil
}

// Counts implements the monitor's read path: aggregate row counts plus the
// most recently written translation excerpt.
func (s *Store) Counts(ctx context.Context) (progress.Stats, error) {
	var stats progress.Stats
	db := s.db.WithContext(ctx)

	if err := db.Model(&Surah{}).Count(&stats.Surahs).Error; err != nil {
		return stats, fmt.Errorf("count surahs: %w", err)
	}
	if err := db.Model(&Ayah{}).Count(&stats.Ayahs).Error; err != nil {
		return stats, fmt.Errorf("count ayahs: %w", err)
	}

	var latest Ayah
	err := db.Model(&Ayah{}).Order("created_at DESC").Limit(1).Take(&latest).Error
	if err == nil {
		stats.LatestExcerpt = latest.TranslationText
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return stats, fmt.Errorf("latest ayah: %w", err)
	}
	return stats, nil
}
