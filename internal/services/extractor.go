package services

import (
	"unicode/utf8"

	"tailorcv/resume-tailor/internal/models"
)

// ExtractorService turns an uploaded file into plain text. Extraction
// degradation is not an error: unreadable content comes back as an empty or
// near-empty string and the analyzers handle that.
type ExtractorService interface {
	Extract(raw models.RawDocument) (models.DocumentFormat, string)
}

type extractorService struct {
	pdf      PDFExtractorService
	docx     DocxExtractorService
	maxChars int
}

func NewExtractorService(pdf PDFExtractorService, docx DocxExtractorService, maxChars int) ExtractorService {
	if maxChars <= 0 {
		maxChars = 50000
	}
	return &extractorService{
		pdf:      pdf,
		docx:     docx,
		maxChars: maxChars,
	}
}

// Extract implements ExtractorService.
func (e *extractorService) Extract(raw models.RawDocument) (models.DocumentFormat, string) {
	format := DetectFormat(raw.MediaType, raw.FileName)

	var text string
	switch format {
	case models.FormatPDF:
		text = e.pdf.Extract(raw.Bytes)
	case models.FormatDocx:
		text = e.docx.Extract(raw.Bytes)
	default:
		text = decodeAsText(raw.Bytes)
	}

	return format, truncateRunes(text, e.maxChars)
}

// decodeAsText interprets the buffer as UTF-8 when valid, falling back to a
// Latin-1 reading so arbitrary bytes still render as some text.
func decodeAsText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return latin1String(data)
}

// truncateRunes bounds retained text to keep downstream memory and prompt
// sizes in check.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	return string(runes[:max])
}
