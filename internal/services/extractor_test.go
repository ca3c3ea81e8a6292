package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tailorcv/resume-tailor/internal/models"
)

func TestExtractor_PlainTextPassthrough(t *testing.T) {
	extractor := NewExtractorService(NewPDFExtractorService(), NewDocxExtractorService(), 0)

	format, text := extractor.Extract(models.RawDocument{
		Bytes:     []byte("Jane Smith\nEngineer"),
		MediaType: "text/plain",
		FileName:  "resume.txt",
	})

	assert.Equal(t, models.FormatPlainText, format)
	assert.Equal(t, "Jane Smith\nEngineer", text)
}

func TestExtractor_InvalidUTF8DecodedAsLatin1(t *testing.T) {
	extractor := NewExtractorService(NewPDFExtractorService(), NewDocxExtractorService(), 0)

	// 0xE9 alone is invalid UTF-8; as Latin-1 it is é.
	_, text := extractor.Extract(models.RawDocument{
		Bytes:    []byte{'r', 0xE9, 's', 'u', 'm', 0xE9},
		FileName: "resume.txt",
	})

	assert.Equal(t, "résumé", text)
}

func TestExtractor_TruncatesToMaxChars(t *testing.T) {
	extractor := NewExtractorService(NewPDFExtractorService(), NewDocxExtractorService(), 10)

	_, text := extractor.Extract(models.RawDocument{
		Bytes:    []byte(strings.Repeat("a", 100)),
		FileName: "notes.txt",
	})

	assert.Equal(t, strings.Repeat("a", 10), text)
}

func TestExtractor_RoutesByFormat(t *testing.T) {
	extractor := NewExtractorService(NewPDFExtractorService(), NewDocxExtractorService(), 0)

	format, text := extractor.Extract(models.RawDocument{
		Bytes:    []byte(`<w:t>From the archive path</w:t>`),
		FileName: "resume.docx",
	})

	assert.Equal(t, models.FormatDocx, format)
	assert.Equal(t, "From the archive path", text)
}
