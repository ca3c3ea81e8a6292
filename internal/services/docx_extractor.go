package services

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DocxExtractorService recovers text from a DOCX buffer. The real archive is
// opened when possible; otherwise the raw bytes are scanned for <w:t> runs so
// that partial or malformed containers still yield whatever text they carry.
// It never fails.
type DocxExtractorService interface {
	Extract(data []byte) string
}

type docxExtractorService struct{}

func NewDocxExtractorService() DocxExtractorService {
	return &docxExtractorService{}
}

var (
	wtRunRe     = regexp.MustCompile(`(?s)<w:t[^>]*>(.*?)</w:t>`)
	nestedTagRe = regexp.MustCompile(`<[^>]*>`)
)

func (d *docxExtractorService) Extract(data []byte) string {
	if text := extractFromArchive(data); text != "" {
		return text
	}

	// Known limitation: without a readable archive this scans whatever bytes
	// survived, which is empty for fully compressed content. The contract is
	// "extract what's extractable", not "parse the container".
	return scrapeTextRuns(filterPrintable(data))
}

func extractFromArchive(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	defer doc.Close()

	return scrapeTextRuns(doc.Editable().GetContent())
}

// scrapeTextRuns pulls every <w:t> span out of document XML, strips nested
// tags and joins the runs with single spaces.
func scrapeTextRuns(content string) string {
	matches := wtRunRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return ""
	}

	runs := make([]string, 0, len(matches))
	for _, m := range matches {
		run := strings.TrimSpace(nestedTagRe.ReplaceAllString(m[1], ""))
		if run != "" {
			runs = append(runs, run)
		}
	}

	return collapseWhitespace(strings.Join(runs, " "))
}

// filterPrintable keeps printable ASCII, mapping CR/LF to newlines and
// dropping everything else, so tag fragments inside a broken container stay
// matchable.
func filterPrintable(data []byte) string {
	var out strings.Builder
	out.Grow(len(data))
	for _, b := range data {
		switch {
		case b >= 32 && b <= 126:
			out.WriteByte(b)
		case b == '\r' || b == '\n':
			out.WriteByte('\n')
		}
	}
	return out.String()
}
