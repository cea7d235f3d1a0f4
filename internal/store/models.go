package store

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTranslator is attributed to every ayah unless overridden.
const DefaultTranslator = "Javed Ahmad Ghamidi"

// Surah is one chapter row. Re-ingesting a chapter replaces this row and, via
// the cascading foreign keys, every descendant row.
type Surah struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number       int       `gorm:"uniqueIndex;not null"`
	NameArabic   string
	NameEnglish  string
	Introduction string
	SourceURL    string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Surah) TableName() string { return "surahs" }

// Paragraph rows are created and destroyed with their surah. The ordinal is
// 1-based and unique within the surah.
type Paragraph struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SurahID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_paragraphs_surah_ordinal"`
	ParagraphIndex int       `gorm:"not null;uniqueIndex:idx_paragraphs_surah_ordinal"`
	SectionTitle   *string
}

func (Paragraph) TableName() string { return "paragraphs" }

// Ayah belongs to exactly one surah and optionally one paragraph. The
// paragraph link is weak: deleting a paragraph nulls it without deleting the
// ayah.
type Ayah struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SurahID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_ayahs_surah_number"`
	ParagraphID     *uuid.UUID `gorm:"type:uuid"`
	AyahNumber      int        `gorm:"not null;uniqueIndex:idx_ayahs_surah_number"`
	ArabicText      string     `gorm:"not null"`
	TranslationText string     `gorm:"not null"`
	Translator      string     `gorm:"not null;default:'Javed Ahmad Ghamidi'"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
}

func (Ayah) TableName() string { return "ayahs" }

// Footnote rows cascade with their ayah. FootnoteIndex preserves dialog order.
type Footnote struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AyahID        uuid.UUID `gorm:"type:uuid;not null"`
	FootnoteIndex int       `gorm:"not null"`
	Content       string    `gorm:"not null"`
}

func (Footnote) TableName() string { return "footnotes" }
