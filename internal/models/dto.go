package models

type UploadedDocument struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
	Format       string `json:"format"`
}

type UploadResponse struct {
	Document  UploadedDocument `json:"document"`
	TextChars int              `json:"text_chars"`
	Resume    *ResumeProfile   `json:"resume,omitempty"`
	Job       *JobDescription  `json:"job,omitempty"`
}

type ParseTextRequest struct {
	Text string `json:"text"`
}

type StartInterrogationRequest struct {
	JobDescription JobDescription `json:"job_description"`
	Resume         ResumeProfile  `json:"resume"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type ScoreRequest struct {
	JobDescription     JobDescription   `json:"job_description"`
	Resume             ResumeProfile    `json:"resume"`
	ConfirmedSkills    []string         `json:"confirmed_skills"`
	TailoredExperience []TailoredBullet `json:"tailored_experience,omitempty"`
}

type ScoreQueuedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ScoreResultResponse struct {
	ID           string         `json:"id"`
	Status       string         `json:"status"`
	Result       *ATSComparison `json:"result,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

type SkillSuggestion struct {
	Skill string  `json:"skill"`
	Score float32 `json:"score"`
}
