package models

// ScoreBreakdown fields are normalized to 0-100 integers by the scoring
// client, regardless of what the oracle returned.
type ScoreBreakdown struct {
	SkillMatch          int `json:"skill_match"`
	KeywordMatch        int `json:"keyword_match"`
	ExperienceRelevance int `json:"experience_relevance"`
	TitleMatch          int `json:"title_match"`
}

type ATSScoreResult struct {
	Total           int            `json:"total"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	MatchedSkills   []string       `json:"matched_skills"`
	MissingSkills   []string       `json:"missing_skills"`
	MatchedKeywords []string       `json:"matched_keywords"`
	Suggestions     []string       `json:"suggestions"`
}

// TailoredBullet is an experience bullet proposed during gap analysis.
type TailoredBullet struct {
	Text       string `json:"text"`
	IsModified bool   `json:"is_modified"`
}

// ATSComparison holds the before/after scores. Invariant: NewScore.Total is
// never below OriginalScore.Total, so Improvement is never negative.
type ATSComparison struct {
	OriginalScore ATSScoreResult `json:"original_score"`
	NewScore      ATSScoreResult `json:"new_score"`
	Improvement   int            `json:"improvement"`
}
