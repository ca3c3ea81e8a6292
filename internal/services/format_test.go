package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tailorcv/resume-tailor/internal/models"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		fileName  string
		want      models.DocumentFormat
	}{
		{
			name:      "pdf media type",
			mediaType: "application/pdf",
			fileName:  "resume.bin",
			want:      models.FormatPDF,
		},
		{
			name:      "docx media type",
			mediaType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			fileName:  "resume",
			want:      models.FormatDocx,
		},
		{
			name:      "legacy word media type",
			mediaType: "application/msword",
			fileName:  "resume",
			want:      models.FormatDocx,
		},
		{
			name:      "plain text media type with charset parameter",
			mediaType: "text/plain; charset=utf-8",
			fileName:  "resume.pdf",
			want:      models.FormatPlainText,
		},
		{
			name:      "media type wins over extension",
			mediaType: "application/pdf",
			fileName:  "resume.docx",
			want:      models.FormatPDF,
		},
		{
			name:      "pdf extension fallback",
			mediaType: "application/octet-stream",
			fileName:  "resume.PDF",
			want:      models.FormatPDF,
		},
		{
			name:      "docx extension fallback",
			mediaType: "",
			fileName:  "resume.docx",
			want:      models.FormatDocx,
		},
		{
			name:      "doc extension fallback",
			mediaType: "",
			fileName:  "resume.doc",
			want:      models.FormatDocx,
		},
		{
			name:      "txt extension fallback",
			mediaType: "",
			fileName:  "notes.txt",
			want:      models.FormatPlainText,
		},
		{
			name:      "unknown everything degrades to plain text",
			mediaType: "application/octet-stream",
			fileName:  "mystery",
			want:      models.FormatPlainText,
		},
		{
			name:      "empty inputs degrade to plain text",
			mediaType: "",
			fileName:  "",
			want:      models.FormatPlainText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.mediaType, tt.fileName))
		})
	}
}
