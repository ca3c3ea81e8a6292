package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tailorcv/resume-tailor/internal/models"
)

// Oracle is the narrow interface to the external generative scorer/questioner.
// The dialogue engine and ATS scorer only ever talk to this, so both are
// testable against deterministic stubs.
type Oracle interface {
	NextQuestion(ctx context.Context, req GapAnalysisRequest) (*GapAnalysisResponse, error)
	ScoreResume(ctx context.Context, req ScoreOracleRequest) (*ScoreOracleResponse, error)
}

type GapAnalysisRequest struct {
	JobDescription      models.JobDescription     `json:"job_description"`
	Resume              models.ResumeProfile      `json:"resume"`
	ConversationHistory []models.ConversationTurn `json:"conversation_history"`
	UserAnswer          string                    `json:"user_answer,omitempty"`
	RelatedSkillHints   []string                  `json:"related_skill_hints,omitempty"`
}

// GapAnalysisResponse mirrors the dialogue oracle payload. GapsIdentified and
// ConfirmedSkills are pointers so the engine can tell "absent" apart from
// "explicitly empty": only explicitly present values replace running state.
type GapAnalysisResponse struct {
	Question         string    `json:"question"`
	SkillBeingProbed string    `json:"skill_being_probed"`
	Context          string    `json:"context"`
	IsComplete       bool      `json:"is_complete"`
	GapsIdentified   *[]string `json:"gaps_identified"`
	ConfirmedSkills  *[]string `json:"confirmed_skills"`
	Summary          string    `json:"summary"`
}

type ScoreOracleRequest struct {
	JobDescription     models.JobDescription   `json:"job_description"`
	Resume             models.ResumeProfile    `json:"resume"`
	ConfirmedSkills    []string                `json:"confirmed_skills"`
	TailoredExperience []models.TailoredBullet `json:"tailored_experience,omitempty"`
}

// ScoreOracleResponse carries the raw, untrusted oracle numbers. The scoring
// client clamps and normalizes them before anything else sees them.
type ScoreOracleResponse struct {
	Total           float64             `json:"total"`
	Breakdown       RawScoreBreakdown   `json:"breakdown"`
	MatchedSkills   []string            `json:"matched_skills"`
	MissingSkills   []string            `json:"missing_skills"`
	MatchedKeywords []string            `json:"matched_keywords"`
	Suggestions     []string            `json:"suggestions"`
}

type RawScoreBreakdown struct {
	SkillMatch          float64 `json:"skill_match"`
	KeywordMatch        float64 `json:"keyword_match"`
	ExperienceRelevance float64 `json:"experience_relevance"`
	TitleMatch          float64 `json:"title_match"`
}

type geminiOracle struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewGeminiOracle(gemini GeminiService, maxRetries int) Oracle {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	return &geminiOracle{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// NextQuestion implements Oracle.
func (o *geminiOracle) NextQuestion(ctx context.Context, req GapAnalysisRequest) (*GapAnalysisResponse, error) {
	prompt, err := o.promptBuilder.BuildGapAnalysisPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build gap analysis prompt: %w", err)
	}

	content, err := o.gemini.GenerateTextWithRetry(ctx, prompt, 0.4, o.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("gap analysis call failed: %w", err)
	}

	return parseGapAnalysisResponse(content)
}

// ScoreResume implements Oracle.
func (o *geminiOracle) ScoreResume(ctx context.Context, req ScoreOracleRequest) (*ScoreOracleResponse, error) {
	prompt, err := o.promptBuilder.BuildScoringPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring prompt: %w", err)
	}

	content, err := o.gemini.GenerateTextWithRetry(ctx, prompt, 0.2, o.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("scoring call failed: %w", err)
	}

	var resp ScoreOracleResponse
	if err := json.Unmarshal([]byte(extractJSON(content)), &resp); err != nil {
		return nil, &OracleError{Kind: OracleMalformed, Err: fmt.Errorf("failed to parse score response: %w", err)}
	}

	return &resp, nil
}

// parseGapAnalysisResponse decodes the dialogue payload. Models habitually
// wrap JSON in markdown fencing, so the first {...} object is extracted; when
// no JSON parses at all, the raw text is treated as the question with no
// gap/skill updates. A payload with neither question nor summary is rejected.
func parseGapAnalysisResponse(content string) (*GapAnalysisResponse, error) {
	var resp GapAnalysisResponse
	if err := json.Unmarshal([]byte(extractJSON(content)), &resp); err != nil {
		text := strings.TrimSpace(content)
		if text == "" {
			return nil, &OracleError{Kind: OracleEmptyResponse, Err: fmt.Errorf("blank gap analysis response")}
		}
		return &GapAnalysisResponse{Question: text}, nil
	}

	if resp.Question == "" && resp.Summary == "" {
		return nil, &OracleError{Kind: OracleMalformed, Err: fmt.Errorf("gap analysis response has neither question nor summary")}
	}

	return &resp, nil
}

// extractJSON tries to extract JSON from text that might contain markdown or
// other formatting around it.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
