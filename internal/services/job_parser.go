package services

import (
	"regexp"
	"strings"

	"tailorcv/resume-tailor/internal/models"
)

// JobParserService heuristically extracts a structured job description from
// plain text: title, company, dictionary skills, and requirement vs
// responsibility line classification.
type JobParserService interface {
	Parse(text string) *models.JobDescription
}

type jobParserService struct{}

func NewJobParserService() JobParserService {
	return &jobParserService{}
}

const (
	maxJDListEntries = 10
	maxJDSkills      = 15
)

var (
	titleLabelRe = regexp.MustCompile(`(?i)^(job title|position|role)\s*:\s*`)
	companyRe    = regexp.MustCompile(`(?i)(company|organization|employer):\s*(.+)`)
)

var requirementMarkers = []string{"experience", "required", "must have", "years"}

var responsibilityMarkers = []string{"will", "responsible", "manage", "develop"}

// Parse implements JobParserService.
func (j *jobParserService) Parse(text string) *models.JobDescription {
	lines := nonEmptyLines(text)

	jd := &models.JobDescription{
		Title:   "Job Position",
		Company: "Company",
		Skills:  extractSkills(text, maxJDSkills),
		RawText: text,
	}

	if len(lines) > 0 {
		jd.Title = strings.TrimSpace(titleLabelRe.ReplaceAllString(lines[0], ""))
		if jd.Title == "" {
			jd.Title = "Job Position"
		}
	}

	for _, line := range lines {
		if m := companyRe.FindStringSubmatch(line); m != nil {
			jd.Company = strings.TrimSpace(m[2])
			break
		}
	}

	jd.Requirements, jd.Responsibilities = classifyLines(lines)

	return jd
}

// classifyLines sorts description lines into requirements and
// responsibilities by marker keywords. Lines matching neither are dropped;
// both lists are capped in encounter order.
func classifyLines(lines []string) ([]string, []string) {
	requirements := []string{}
	responsibilities := []string{}

	for _, line := range lines {
		stripped, _ := stripBulletGlyph(line)
		if len(stripped) <= 10 {
			continue
		}

		lower := strings.ToLower(stripped)
		switch {
		case containsAny(lower, requirementMarkers):
			if len(requirements) < maxJDListEntries {
				requirements = append(requirements, stripped)
			}
		case containsAny(lower, responsibilityMarkers):
			if len(responsibilities) < maxJDListEntries {
				responsibilities = append(responsibilities, stripped)
			}
		}
	}

	return requirements, responsibilities
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
