package services

import (
	"regexp"
	"strings"

	"tailorcv/resume-tailor/internal/dictionary"
	"tailorcv/resume-tailor/internal/models"
)

// ResumeParserService heuristically extracts a structured profile from
// resume plain text. Running it twice on the same text yields the same
// profile.
type ResumeParserService interface {
	Parse(text string) *models.ResumeProfile
}

type resumeParserService struct{}

func NewResumeParserService() ResumeParserService {
	return &resumeParserService{}
}

const (
	nameCandidateLines = 15
	looseNameLines     = 5
	maxBullets         = 15
	maxBulletLen       = 500
)

var (
	titleCaseNameRe = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3}$`)
	singleNameRe    = regexp.MustCompile(`^[A-Z][a-z]{2,19}$`)
	allCapsNameRe   = regexp.MustCompile(`^[A-Z][A-Z\s.'-]+$`)
	looseNameRe     = regexp.MustCompile(`^[A-Za-z][A-Za-z\s'-]*$`)
)

var bulletGlyphs = []string{"-", "•", "*", "●", "○"}

// Parse implements ResumeParserService.
func (r *resumeParserService) Parse(text string) *models.ResumeProfile {
	lines := nonEmptyLines(text)

	title := extractTitle(lines)
	bullets := extractBullets(lines)
	skills := extractSkills(text, 0)

	profile := &models.ResumeProfile{
		Name:    extractName(lines),
		Title:   title,
		Skills:  skills,
		RawText: text,
	}

	if len(bullets) > 0 || len(skills) > 0 {
		entryTitle := title
		if entryTitle == "" {
			entryTitle = "Professional Experience"
		}
		profile.Experience = []models.ExperienceEntry{{
			Title:   entryTitle,
			Company: "Various",
			Bullets: bullets,
		}}
	}

	return profile
}

// extractName scans the first 15 non-empty lines with four heuristics in
// priority order; the first pattern with a hit wins and later candidates are
// ignored.
func extractName(lines []string) string {
	candidates := make([]string, 0, nameCandidateLines)
	for _, line := range lines {
		if len(candidates) == nameCandidateLines {
			break
		}
		if disqualifiedNameLine(line) {
			candidates = append(candidates, "")
			continue
		}
		candidates = append(candidates, line)
	}

	for _, line := range candidates {
		if line != "" && titleCaseNameRe.MatchString(line) {
			return line
		}
	}

	for _, line := range candidates {
		if line != "" && singleNameRe.MatchString(line) {
			return line
		}
	}

	for _, line := range candidates {
		if line != "" && len(line) <= 40 && allCapsNameRe.MatchString(line) {
			return toTitleCase(line)
		}
	}

	// Loosest pattern only trusts the document head.
	limit := looseNameLines
	if limit > len(candidates) {
		limit = len(candidates)
	}
	for _, line := range candidates[:limit] {
		if line != "" && len(line) >= 3 && len(line) <= 40 && looseNameRe.MatchString(line) {
			return line
		}
	}

	return ""
}

func disqualifiedNameLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "@") || strings.Contains(lower, "http") || strings.Contains(lower, "www.") {
		return true
	}

	for _, header := range dictionary.SectionHeaders() {
		if strings.Contains(lower, header) {
			return true
		}
	}

	return false
}

// extractTitle returns the first plausible job-title line.
func extractTitle(lines []string) string {
	for _, line := range lines {
		if len(line) < 5 || len(line) > 60 {
			continue
		}
		lower := strings.ToLower(line)
		for _, keyword := range dictionary.TitleKeywords() {
			if strings.Contains(lower, keyword) {
				return line
			}
		}
	}

	return ""
}

// extractSkills runs the dictionary alternation over the text. Matches are
// lower-cased and deduplicated, keeping first-appearance order. A limit of 0
// means unbounded.
func extractSkills(text string, limit int) []string {
	seen := make(map[string]bool)
	skills := []string{}

	for _, match := range dictionary.SkillPattern().FindAllString(text, -1) {
		skill := strings.ToLower(match)
		if seen[skill] {
			continue
		}
		seen[skill] = true
		skills = append(skills, skill)
		if limit > 0 && len(skills) == limit {
			break
		}
	}

	return skills
}

// extractBullets keeps lines that look like experience bullets: explicit
// bullet glyphs, or sentence-length lines anchored by an action verb.
func extractBullets(lines []string) []string {
	var bullets []string

	for _, line := range lines {
		if len(bullets) == maxBullets {
			break
		}

		if stripped, ok := stripBulletGlyph(line); ok {
			if len(stripped) > 20 {
				bullets = append(bullets, truncate(stripped, maxBulletLen))
			}
			continue
		}

		if len(line) >= 40 && len(line) < maxBulletLen && containsActionVerb(line) {
			bullets = append(bullets, truncate(line, maxBulletLen))
		}
	}

	return bullets
}

func stripBulletGlyph(line string) (string, bool) {
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(line, glyph) {
			return strings.TrimSpace(strings.TrimPrefix(line, glyph)), true
		}
	}
	return line, false
}

func containsActionVerb(line string) bool {
	return dictionary.ActionVerbPattern().MatchString(line)
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func toTitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
