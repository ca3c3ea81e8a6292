package services

import (
	"path/filepath"
	"strings"

	"tailorcv/resume-tailor/internal/models"
)

// DetectFormat classifies an uploaded buffer from its declared media type and
// file name. The declared media type wins, then the file-name suffix; anything
// unrecognized degrades to plain text. It never fails: callers always get a
// usable classification.
func DetectFormat(mediaType, fileName string) models.DocumentFormat {
	switch strings.ToLower(strings.TrimSpace(mediaTypeOnly(mediaType))) {
	case "application/pdf":
		return models.FormatPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword":
		return models.FormatDocx
	case "text/plain":
		return models.FormatPlainText
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return models.FormatPDF
	case ".docx", ".doc":
		return models.FormatDocx
	case ".txt":
		return models.FormatPlainText
	}

	return models.FormatPlainText
}

// mediaTypeOnly drops any media-type parameters ("text/plain; charset=utf-8").
func mediaTypeOnly(mediaType string) string {
	if i := strings.Index(mediaType, ";"); i >= 0 {
		return mediaType[:i]
	}
	return mediaType
}
