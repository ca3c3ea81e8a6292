package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentFormat is the result of byte-format detection.
type DocumentFormat string

const (
	FormatPDF       DocumentFormat = "pdf"
	FormatDocx      DocumentFormat = "docx"
	FormatPlainText DocumentFormat = "plain_text"
)

// RawDocument is an uploaded file before text extraction.
type RawDocument struct {
	Bytes     []byte
	MediaType string
	FileName  string
}

type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FileType         string    `gorm:"type:text" json:"file_type"`
	Format           string    `gorm:"type:text" json:"format"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
