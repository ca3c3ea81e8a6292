package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleJobDescription = `Job Title: Backend Engineer
Company: Acme Corp

About the role

You will build and operate our payment services.
- 5+ years experience with Go and PostgreSQL
- Must have production Kubernetes experience
- Responsible for the reliability of the payments platform
- Develop new APIs for partner integrations
- Snacks provided`

func TestJobParser_FullDescription(t *testing.T) {
	parser := NewJobParserService()

	jd := parser.Parse(sampleJobDescription)

	assert.Equal(t, "Backend Engineer", jd.Title)
	assert.Equal(t, "Acme Corp", jd.Company)

	assert.Contains(t, jd.Skills, "go")
	assert.Contains(t, jd.Skills, "postgresql")
	assert.Contains(t, jd.Skills, "kubernetes")

	assert.Contains(t, jd.Requirements, "5+ years experience with Go and PostgreSQL")
	assert.Contains(t, jd.Requirements, "Must have production Kubernetes experience")
	assert.Contains(t, jd.Responsibilities, "Responsible for the reliability of the payments platform")
	assert.Contains(t, jd.Responsibilities, "Develop new APIs for partner integrations")

	// Marker-free lines are dropped.
	assert.NotContains(t, jd.Requirements, "Snacks provided")
	assert.NotContains(t, jd.Responsibilities, "Snacks provided")

	assert.Equal(t, sampleJobDescription, jd.RawText)
}

func TestJobParser_TitleLabelVariants(t *testing.T) {
	parser := NewJobParserService()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"job title label", "Job Title: Staff Engineer", "Staff Engineer"},
		{"position label", "Position: Data Analyst", "Data Analyst"},
		{"role label", "role: Platform Lead", "Platform Lead"},
		{"no label takes first line", "Backend Engineer at Acme", "Backend Engineer at Acme"},
		{"empty text defaults", "", "Job Position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.Parse(tt.text).Title)
		})
	}
}

func TestJobParser_DefaultsWhenAbsent(t *testing.T) {
	parser := NewJobParserService()

	jd := parser.Parse("Some opening line without structure")
	assert.Equal(t, "Some opening line without structure", jd.Title)
	assert.Equal(t, "Company", jd.Company)
	assert.Empty(t, jd.Requirements)
}

func TestJobParser_RequirementMarkerWinsOverResponsibility(t *testing.T) {
	parser := NewJobParserService()

	// "will" and "experience" both appear; requirement classification is
	// checked first.
	jd := parser.Parse("Intro line\n- You will need 3 years experience with Redis")

	assert.Len(t, jd.Requirements, 1)
	assert.Empty(t, jd.Responsibilities)
}

func TestJobParser_ListsCapped(t *testing.T) {
	parser := NewJobParserService()

	var sb strings.Builder
	sb.WriteString("Title line\n")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&sb, "- requirement number %02d years experience\n", i)
	}

	jd := parser.Parse(sb.String())
	assert.Len(t, jd.Requirements, maxJDListEntries)
	assert.Contains(t, jd.Requirements[0], "number 00")
}

func TestJobParser_ShortLinesIgnored(t *testing.T) {
	parser := NewJobParserService()

	jd := parser.Parse("Title\n- required\n- will do")
	assert.Empty(t, jd.Requirements)
	assert.Empty(t, jd.Responsibilities)
}
