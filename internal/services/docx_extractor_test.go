package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildTestDocx creates a minimal DOCX archive in memory. Entries are stored
// uncompressed so the raw-byte fallback can also see the XML.
func buildTestDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	entries := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`,
		"word/document.xml": documentXML,
	}

	for name, content := range entries {
		f, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
		assert.NoError(t, err)
		_, err = f.Write([]byte(content))
		assert.NoError(t, err)
	}

	assert.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDocxExtractor_Archive(t *testing.T) {
	service := NewDocxExtractorService()

	documentXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Smith</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Senior Engineer</w:t></w:r></w:p>
</w:body>
</w:document>`

	text := service.Extract(buildTestDocx(t, documentXML))
	assert.Contains(t, text, "Jane Smith")
	assert.Contains(t, text, "Senior Engineer")
}

func TestDocxExtractor_RawByteFallback(t *testing.T) {
	service := NewDocxExtractorService()

	// Not a zip archive at all; the <w:t> runs are scraped straight from the
	// bytes.
	data := []byte(`garbage prefix <w:t>Hello</w:t> middle <w:t>World</w:t> suffix`)

	assert.Equal(t, "Hello World", service.Extract(data))
}

func TestDocxExtractor_FallbackFiltersUnprintableBytes(t *testing.T) {
	service := NewDocxExtractorService()

	var data []byte
	data = append(data, 0x00, 0x01, 0xFF)
	data = append(data, []byte("<w:t>Resume")...)
	data = append(data, 0x02)
	data = append(data, []byte(" text</w:t>")...)

	assert.Equal(t, "Resume text", service.Extract(data))
}

func TestDocxExtractor_AttributedAndNestedRuns(t *testing.T) {
	service := NewDocxExtractorService()

	data := []byte(`<w:t xml:space="preserve">Led <w:b>five</w:b> projects</w:t>`)

	assert.Equal(t, "Led five projects", service.Extract(data))
}

func TestDocxExtractor_NoTextRuns(t *testing.T) {
	service := NewDocxExtractorService()

	assert.Equal(t, "", service.Extract(nil))
	assert.Equal(t, "", service.Extract([]byte("plain words, no markup")))
}
