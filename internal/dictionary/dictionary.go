package dictionary

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed data/*.json
var dataFS embed.FS

var (
	loadOnce sync.Once

	skills         []string
	actionVerbs    []string
	titleKeywords  []string
	sectionHeaders []string

	skillPattern      *regexp.Regexp
	actionVerbPattern *regexp.Regexp
)

func load() {
	skills = mustLoad("data/skills.json")
	actionVerbs = mustLoad("data/action_verbs.json")
	titleKeywords = mustLoad("data/title_keywords.json")
	sectionHeaders = mustLoad("data/section_headers.json")

	skillPattern = compileAlternation(skills)
	actionVerbPattern = compileAlternation(actionVerbs)
}

func mustLoad(name string) []string {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("dictionary: missing embedded table %s: %v", name, err))
	}

	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		panic(fmt.Sprintf("dictionary: malformed table %s: %v", name, err))
	}

	return entries
}

// compileAlternation builds a case-insensitive alternation over the table.
// Word boundaries are applied only where the term begins/ends with a word
// character, so entries like "c++" and ".net" still match.
func compileAlternation(terms []string) *regexp.Regexp {
	sorted := make([]string, len(terms))
	copy(sorted, terms)
	// Longest first so "full stack" wins over "stack" at the same position.
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	parts := make([]string, 0, len(sorted))
	for _, term := range sorted {
		if term == "" {
			continue
		}
		quoted := regexp.QuoteMeta(term)
		if isWordChar(term[0]) {
			quoted = `\b` + quoted
		}
		if isWordChar(term[len(term)-1]) {
			quoted += `\b`
		}
		parts = append(parts, quoted)
	}

	return regexp.MustCompile(`(?i)(` + strings.Join(parts, "|") + `)`)
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// Skills returns the technology/skill keyword table.
func Skills() []string {
	loadOnce.Do(load)
	return skills
}

// ActionVerbs returns the experience-bullet action verb table.
func ActionVerbs() []string {
	loadOnce.Do(load)
	return actionVerbs
}

// TitleKeywords returns the job-title keyword table.
func TitleKeywords() []string {
	loadOnce.Do(load)
	return titleKeywords
}

// SectionHeaders returns resume section headers that disqualify a name line.
func SectionHeaders() []string {
	loadOnce.Do(load)
	return sectionHeaders
}

// SkillPattern returns the compiled skill alternation.
func SkillPattern() *regexp.Regexp {
	loadOnce.Do(load)
	return skillPattern
}

// ActionVerbPattern returns the compiled action-verb alternation.
func ActionVerbPattern() *regexp.Regexp {
	loadOnce.Do(load)
	return actionVerbPattern
}
