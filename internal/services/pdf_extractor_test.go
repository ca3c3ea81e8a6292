package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The synthetic buffers below are not valid PDFs; they exist to drive the
// heuristic cascade, which is exactly what real malformed producer output
// does.

func TestPDFExtractor_LiteralShowText(t *testing.T) {
	service := NewPDFExtractorService()

	data := []byte(`%PDF-1.4
BT
(Jane Smith) Tj
(Senior Backend Engineer) Tj
(Go) Tj
(PostgreSQL) Tj
(Led migration to microservices) Tj
ET`)

	text := service.Extract(data)
	assert.Contains(t, text, "Jane Smith")
	assert.Contains(t, text, "Senior Backend Engineer")
	assert.Contains(t, text, "Led migration to microservices")
}

func TestPDFExtractor_TJArray(t *testing.T) {
	service := NewPDFExtractorService()

	data := []byte(`BT
[(Sen)(ior )(Engineer)] TJ
[(Python) -250 (Django)] TJ
(Go) Tj
(SQL) Tj
(AWS) Tj
ET`)

	text := service.Extract(data)
	assert.Contains(t, text, "Senior Engineer")
	assert.Contains(t, text, "Python")
	assert.Contains(t, text, "Django")
}

func TestPDFExtractor_EscapedLiterals(t *testing.T) {
	service := NewPDFExtractorService()

	data := []byte(`BT
(Managed \(large\) team) Tj
(Line one\nLine two) Tj
(Octal \101\102\103) Tj
(Back\\slash) Tj
(padding text here) Tj
ET`)

	text := service.Extract(data)
	assert.Contains(t, text, "Managed (large) team")
	assert.Contains(t, text, "Line one Line two")
	assert.Contains(t, text, "ABC")
	assert.Contains(t, text, `Back\slash`)
}

func TestPDFExtractor_HexStringsWithCMap(t *testing.T) {
	service := NewPDFExtractorService()

	// CMap remaps 0003 -> 'G' (0x47) and 0004 -> 'o' (0x6F).
	data := []byte(`begincmap
beginbfchar
<0003> <0047>
<0004> <006F>
endbfchar
endcmap
BT
<00030004> Tj
(first fragment) Tj
(second fragment) Tj
(third fragment) Tj
(fourth fragment) Tj
ET`)

	text := service.Extract(data)
	assert.Contains(t, text, "Go")
}

func TestPDFExtractor_HexStringPrintableFallback(t *testing.T) {
	service := NewPDFExtractorService()

	// No CMap; 2-digit hex codes that are printable ASCII decode to
	// themselves. 48 65 6C 6C 6F = Hello.
	data := []byte(`BT
<48656C6C6F> Tj
(alpha run one) Tj
(alpha run two) Tj
(alpha run three) Tj
(alpha run four) Tj
ET`)

	text := service.Extract(data)
	assert.Contains(t, text, "Hello")
}

func TestPDFExtractor_CMapSkipsControlCodes(t *testing.T) {
	cmap := parseCMapTable(`beginbfchar
<0001> <0009>
<0002> <0041>
<0003> <1F600>
endbfchar`)

	require.Len(t, cmap, 1)
	assert.Equal(t, 'A', cmap[2])
}

func TestPDFExtractor_BareParenFallback(t *testing.T) {
	service := NewPDFExtractorService()

	// No BT/ET blocks at all; fewer than five fragments recovered, so the
	// bare parenthesized runs are picked up.
	data := []byte(`0 obj (Jane Smith) endobj 1 obj (Software Engineer) endobj`)

	text := service.Extract(data)
	assert.Contains(t, text, "Jane Smith")
	assert.Contains(t, text, "Software Engineer")
}

func TestPDFExtractor_StreamBlockScan(t *testing.T) {
	service := NewPDFExtractorService()

	data := []byte(`stream
q 1 0 0 1 50 700 cm
Experienced professionaldeveloper Kubernetes
re f Tf BT ET
endstream`)

	text := service.Extract(data)
	// Capitalized and >10 char alphabetic runs are kept, operators are not.
	assert.Contains(t, text, "Experienced")
	assert.Contains(t, text, "Kubernetes")
	assert.NotContains(t, text, "Tf")
}

func TestPDFExtractor_CamelCaseJoinsSplit(t *testing.T) {
	service := NewPDFExtractorService()

	data := []byte(`BT
(JaneSmith) Tj
(fragment one) Tj
(fragment two) Tj
(fragment three) Tj
(fragment four) Tj
ET`)

	text := service.Extract(data)
	assert.Contains(t, text, "Jane Smith")
}

func TestPDFExtractor_EmptyAndGarbageInput(t *testing.T) {
	service := NewPDFExtractorService()

	assert.Equal(t, "", service.Extract(nil))
	assert.Equal(t, "", service.Extract([]byte{}))
	assert.Equal(t, "", service.Extract([]byte{0x00, 0x01, 0x02, 0xFF, 0xFE}))
}

func TestPDFExtractor_WhitespaceCollapsed(t *testing.T) {
	service := NewPDFExtractorService()

	data := []byte(`BT
(spaced    out	 text) Tj
(one) Tj
(two) Tj
(three) Tj
(four) Tj
ET`)

	text := service.Extract(data)
	assert.Contains(t, text, "spaced out text")
}

func TestUnescapeLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"escaped parens", `\(x\)`, "(x)"},
		{"newline", `a\nb`, "a\nb"},
		{"tab", `a\tb`, "a\tb"},
		{"backslash", `a\\b`, `a\b`},
		{"three digit octal", `\101`, "A"},
		{"short octal", `\12x`, "\nx"},
		{"unknown escape dropped to literal", `\q`, "q"},
		{"trailing backslash", `abc\`, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeLiteral(tt.input))
		})
	}
}
