package services

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractorService recovers best-effort plain text from a PDF buffer. It
// never fails: a document with no extractable text yields an empty string and
// downstream analyzers tolerate that.
type PDFExtractorService interface {
	Extract(data []byte) string
}

type pdfExtractorService struct{}

func NewPDFExtractorService() PDFExtractorService {
	return &pdfExtractorService{}
}

// Resumes arrive in wildly inconsistent producer encodings, so a full parse is
// tried first and a regex cascade over the raw bytes is kept as the safety
// net: CMap table, BT/ET text objects, bare parenthesized runs, stream scan.
const minLibraryTextLen = 40

func (p *pdfExtractorService) Extract(data []byte) string {
	if text := extractWithLibrary(data); len(strings.TrimSpace(text)) >= minLibraryTextLen {
		return collapseWhitespace(text)
	}

	return heuristicExtract(data)
}

// extractWithLibrary runs ledongthuc/pdf over the buffer. The library panics
// on some malformed producers, which simply routes those files to the
// heuristic cascade.
func extractWithLibrary(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	stream, err := reader.GetPlainText()
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, stream); err != nil {
		return ""
	}

	return buf.String()
}

var (
	bfcharBlockRe = regexp.MustCompile(`(?s)beginbfchar(.*?)endbfchar`)
	bfcharPairRe  = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*<([0-9A-Fa-f]+)>`)

	textObjectRe = regexp.MustCompile(`(?s)BT(.*?)ET`)
	showTextRe   = regexp.MustCompile(`(?s)\(((?:\\.|[^\\()])*)\)\s*Tj|\[(.*?)\]\s*TJ|<([0-9A-Fa-f]+)>\s*Tj`)
	literalRe    = regexp.MustCompile(`(?s)\(((?:\\.|[^\\()])*)\)`)

	bareParenRe   = regexp.MustCompile(`\(([A-Za-z][A-Za-z' -]+)\)`)
	streamBlockRe = regexp.MustCompile(`(?s)stream(.*?)endstream`)
	alphaRunRe    = regexp.MustCompile(`[A-Za-z]{3,}`)

	whitespaceRe = regexp.MustCompile(`\s+`)
	camelJoinRe  = regexp.MustCompile(`([a-z])([A-Z])`)
)

// pdfOperators are tokens that show up inside content streams but are never
// document text.
var pdfOperators = map[string]bool{
	"BT": true, "ET": true, "Tj": true, "TJ": true, "Tf": true,
}

func heuristicExtract(data []byte) string {
	// Byte value -> code point, so every byte stays regex-scannable.
	text := latin1String(data)

	cmap := parseCMapTable(text)

	fragments := scanTextObjects(text, cmap)

	// Fewer than 5 recovered fragments signals an encoding the BT/ET scan
	// cannot read; fall back to any bare parenthesized word runs.
	if len(fragments) < 5 {
		for _, m := range bareParenRe.FindAllStringSubmatch(text, -1) {
			fragments = append(fragments, m[1])
		}
	}

	fragments = append(fragments, scanStreamBlocks(text)...)

	// Missing word breaks in content streams leave accidental camel-case
	// joins; split those before collapsing whitespace.
	joined := camelJoinRe.ReplaceAllString(strings.Join(fragments, " "), "$1 $2")
	return collapseWhitespace(joined)
}

// parseCMapTable collects hex code -> Unicode mappings from every
// beginbfchar/endbfchar block. Control characters and out-of-plane values are
// skipped.
func parseCMapTable(text string) map[uint64]rune {
	table := make(map[uint64]rune)

	for _, block := range bfcharBlockRe.FindAllStringSubmatch(text, -1) {
		for _, pair := range bfcharPairRe.FindAllStringSubmatch(block[1], -1) {
			src, err := strconv.ParseUint(pair[1], 16, 64)
			if err != nil {
				continue
			}
			dst, err := strconv.ParseUint(pair[2], 16, 64)
			if err != nil {
				continue
			}
			if dst <= 31 || dst >= 65536 {
				continue
			}
			table[src] = rune(dst)
		}
	}

	return table
}

// scanTextObjects walks every BT...ET block in document order and pulls text
// from (...)Tj literals, [...]TJ arrays and <hex>Tj strings.
func scanTextObjects(text string, cmap map[uint64]rune) []string {
	var fragments []string

	for _, object := range textObjectRe.FindAllStringSubmatch(text, -1) {
		for _, op := range showTextRe.FindAllStringSubmatch(object[1], -1) {
			switch {
			case op[1] != "":
				fragments = append(fragments, unescapeLiteral(op[1]))
			case op[2] != "":
				for _, lit := range literalRe.FindAllStringSubmatch(op[2], -1) {
					if lit[1] != "" {
						fragments = append(fragments, unescapeLiteral(lit[1]))
					}
				}
			case op[3] != "":
				if decoded := decodeHexString(op[3], cmap); decoded != "" {
					fragments = append(fragments, decoded)
				}
			}
		}
	}

	return fragments
}

// unescapeLiteral resolves PDF string escapes: \n \r \t \b \f \( \) \\ and
// 1-3 digit octal codes. A backslash before anything else is dropped.
func unescapeLiteral(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			out.WriteByte(ch)
			continue
		}

		i++
		if i >= len(s) {
			break
		}

		switch s[i] {
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case '(', ')', '\\':
			out.WriteByte(s[i])
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			if v, err := strconv.ParseUint(s[i:j], 8, 16); err == nil {
				out.WriteByte(byte(v))
			}
			i = j - 1
		default:
			out.WriteByte(s[i])
		}
	}

	return out.String()
}

// decodeHexString decodes a <hex> string through the CMap table, trying
// 4-hex-digit codes first and 2-hex-digit codes as a fallback. Unmapped codes
// that happen to be printable ASCII are kept as themselves.
func decodeHexString(hexStr string, cmap map[uint64]rune) string {
	if len(hexStr)%4 == 0 {
		if decoded := decodeHexGroups(hexStr, 4, cmap); decoded != "" {
			return decoded
		}
	}
	if len(hexStr)%2 == 0 {
		return decodeHexGroups(hexStr, 2, cmap)
	}
	return ""
}

func decodeHexGroups(hexStr string, width int, cmap map[uint64]rune) string {
	var out strings.Builder
	for i := 0; i+width <= len(hexStr); i += width {
		code, err := strconv.ParseUint(hexStr[i:i+width], 16, 64)
		if err != nil {
			continue
		}
		if r, ok := cmap[code]; ok {
			out.WriteRune(r)
			continue
		}
		if code >= 32 && code <= 126 {
			out.WriteByte(byte(code))
		}
	}
	return out.String()
}

// scanStreamBlocks is the second-chance pass: alphabetic runs inside
// stream/endstream blocks that are capitalized or long enough to look like
// words rather than operators.
func scanStreamBlocks(text string) []string {
	var fragments []string

	for _, block := range streamBlockRe.FindAllStringSubmatch(text, -1) {
		for _, run := range alphaRunRe.FindAllString(block[1], -1) {
			if pdfOperators[run] {
				continue
			}
			if (run[0] >= 'A' && run[0] <= 'Z') || len(run) > 10 {
				fragments = append(fragments, run)
			}
		}
	}

	return fragments
}

func latin1String(data []byte) string {
	var out strings.Builder
	out.Grow(len(data))
	for _, b := range data {
		out.WriteRune(rune(b))
	}
	return out.String()
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
