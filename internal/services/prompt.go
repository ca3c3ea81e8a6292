package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildGapAnalysisPrompt creates the dialogue prompt for one interrogation
// turn. The first turn carries the full JD/resume context and the directive
// to ask an opening question; later turns replay the accumulated history plus
// the newest answer.
func (pb *PromptBuilder) BuildGapAnalysisPrompt(req GapAnalysisRequest) (string, error) {
	jdJSON, err := json.Marshal(req.JobDescription)
	if err != nil {
		return "", fmt.Errorf("failed to marshal job description: %w", err)
	}

	resumeJSON, err := json.Marshal(req.Resume)
	if err != nil {
		return "", fmt.Errorf("failed to marshal resume: %w", err)
	}

	var b strings.Builder

	b.WriteString(`You are a career coach performing a gap analysis between a job description and a candidate's resume.
Identify skills the job needs that the resume does not clearly demonstrate, then ask the candidate short clarifying questions, one at a time, to find out whether they actually have each skill.

Stop once every identified gap has been addressed, or after 3-5 total questions, whichever comes first. When you stop, set "is_complete" to true and write a short summary of confirmed skills and remaining gaps.

JOB DESCRIPTION:
`)
	b.Write(jdJSON)
	b.WriteString("\n\nRESUME:\n")
	b.Write(resumeJSON)

	if len(req.RelatedSkillHints) > 0 {
		b.WriteString("\n\nRELATED SKILLS WORTH PROBING:\n")
		b.WriteString(strings.Join(req.RelatedSkillHints, ", "))
	}

	if len(req.ConversationHistory) == 0 {
		b.WriteString("\n\nThis is the start of the conversation. Ask your first clarifying question.")
	} else {
		b.WriteString("\n\nCONVERSATION SO FAR:\n")
		for _, turn := range req.ConversationHistory {
			b.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
		}
		b.WriteString("\nCANDIDATE'S LATEST ANSWER:\n")
		b.WriteString(req.UserAnswer)
		b.WriteString("\n\nAcknowledge the answer and ask your next clarifying question, or finish if everything is addressed.")
	}

	b.WriteString(`

Return your response as a JSON object with this structure:
{
  "question": "<your next question, empty when finished>",
  "skill_being_probed": "<the skill this question is about>",
  "context": "<one sentence of why this matters for the role>",
  "is_complete": <true when the gap analysis is finished>,
  "gaps_identified": ["<skill gaps found so far>"],
  "confirmed_skills": ["<skills the candidate has confirmed>"],
  "summary": "<present only when is_complete is true>"
}
Return only the JSON object.`)

	return b.String(), nil
}

// BuildScoringPrompt creates the ATS compatibility scoring prompt.
func (pb *PromptBuilder) BuildScoringPrompt(req ScoreOracleRequest) (string, error) {
	jdJSON, err := json.Marshal(req.JobDescription)
	if err != nil {
		return "", fmt.Errorf("failed to marshal job description: %w", err)
	}

	resumeJSON, err := json.Marshal(req.Resume)
	if err != nil {
		return "", fmt.Errorf("failed to marshal resume: %w", err)
	}

	return fmt.Sprintf(`You are an applicant tracking system evaluating how well a resume matches a job description.

Score the match from 0 to 100 overall, with a breakdown across skill match, keyword match, experience relevance, and title match, each also 0 to 100.

JOB DESCRIPTION:
%s

RESUME:
%s

Return the result as a JSON object with the following structure:
{
  "total": <0-100>,
  "breakdown": {
    "skill_match": <0-100>,
    "keyword_match": <0-100>,
    "experience_relevance": <0-100>,
    "title_match": <0-100>
  },
  "matched_skills": ["<job skills present in the resume>"],
  "missing_skills": ["<job skills absent from the resume>"],
  "matched_keywords": ["<job description keywords found in the resume>"],
  "suggestions": ["<concrete improvements, 2-4 entries>"]
}
Be objective and consistent. Return only the JSON object.`,
		string(jdJSON), string(resumeJSON)), nil
}
