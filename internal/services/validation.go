package services

import (
	"fmt"
	"strings"

	"tailorcv/resume-tailor/internal/models"
)

// Size caps applied to every oracle-bound request. A violation short-circuits
// before any network call is made.
const (
	maxTitleLen       = 200
	maxSkillEntries   = 50
	maxSkillLen       = 100
	maxListEntries    = 20
	maxListEntryLen   = 500
	maxHistoryTurns   = 20
	maxTurnContentLen = 5000
	maxAnswerLen      = 2000
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ValidateGapAnalysisRequest checks one dialogue-turn request against the
// caps, reporting every violating field.
func ValidateGapAnalysisRequest(req GapAnalysisRequest) error {
	var fields []FieldError

	fields = append(fields, validateJobDescription(req.JobDescription)...)
	fields = append(fields, validateResume(req.Resume)...)

	if len(req.ConversationHistory) > maxHistoryTurns {
		fields = append(fields, FieldError{
			Field:   "conversation_history",
			Message: fmt.Sprintf("at most %d turns allowed, got %d", maxHistoryTurns, len(req.ConversationHistory)),
		})
	}
	for i, turn := range req.ConversationHistory {
		if len(turn.Content) > maxTurnContentLen {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("conversation_history[%d].content", i),
				Message: fmt.Sprintf("at most %d characters allowed", maxTurnContentLen),
			})
		}
	}

	if len(req.UserAnswer) > maxAnswerLen {
		fields = append(fields, FieldError{
			Field:   "user_answer",
			Message: fmt.Sprintf("at most %d characters allowed", maxAnswerLen),
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateScoreRequest checks a scoring request against the caps.
func ValidateScoreRequest(req models.ScoreRequest) error {
	var fields []FieldError

	fields = append(fields, validateJobDescription(req.JobDescription)...)
	fields = append(fields, validateResume(req.Resume)...)
	fields = append(fields, validateSkillList("confirmed_skills", req.ConfirmedSkills)...)

	for i, bullet := range req.TailoredExperience {
		if len(bullet.Text) > maxListEntryLen {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("tailored_experience[%d].text", i),
				Message: fmt.Sprintf("at most %d characters allowed", maxListEntryLen),
			})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateJobDescription(jd models.JobDescription) []FieldError {
	var fields []FieldError

	if len(jd.Title) > maxTitleLen {
		fields = append(fields, FieldError{
			Field:   "job_description.title",
			Message: fmt.Sprintf("at most %d characters allowed", maxTitleLen),
		})
	}

	fields = append(fields, validateSkillList("job_description.skills", jd.Skills)...)
	fields = append(fields, validateStringList("job_description.requirements", jd.Requirements)...)
	fields = append(fields, validateStringList("job_description.responsibilities", jd.Responsibilities)...)

	return fields
}

func validateResume(resume models.ResumeProfile) []FieldError {
	var fields []FieldError

	if len(resume.Title) > maxTitleLen {
		fields = append(fields, FieldError{
			Field:   "resume.title",
			Message: fmt.Sprintf("at most %d characters allowed", maxTitleLen),
		})
	}

	fields = append(fields, validateSkillList("resume.skills", resume.Skills)...)

	return fields
}

func validateSkillList(field string, skills []string) []FieldError {
	var fields []FieldError

	if len(skills) > maxSkillEntries {
		fields = append(fields, FieldError{
			Field:   field,
			Message: fmt.Sprintf("at most %d entries allowed, got %d", maxSkillEntries, len(skills)),
		})
	}
	for i, skill := range skills {
		if len(skill) > maxSkillLen {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("at most %d characters allowed", maxSkillLen),
			})
		}
	}

	return fields
}

func validateStringList(field string, entries []string) []FieldError {
	var fields []FieldError

	if len(entries) > maxListEntries {
		fields = append(fields, FieldError{
			Field:   field,
			Message: fmt.Sprintf("at most %d entries allowed, got %d", maxListEntries, len(entries)),
		})
	}
	for i, entry := range entries {
		if len(entry) > maxListEntryLen {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("at most %d characters allowed", maxListEntryLen),
			})
		}
	}

	return fields
}
