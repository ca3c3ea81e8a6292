package models

// JobDescription is the structured output of the job description analyzer.
// Skills are deduplicated case-insensitively; requirement and responsibility
// lists are capped at 10 entries each.
type JobDescription struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Skills           []string `json:"skills"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	RawText          string   `json:"raw_text,omitempty"`
}

// ExperienceEntry holds up to 15 bullets of at most 500 characters each.
type ExperienceEntry struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Bullets []string `json:"bullets"`
}

// ResumeProfile is the structured output of the resume analyzer.
type ResumeProfile struct {
	Name       string            `json:"name"`
	Title      string            `json:"title"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	RawText    string            `json:"raw_text,omitempty"`
}
