package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// ScoreAnalysis is a queued before/after ATS scoring job. The request payload
// and the comparison result are stored as JSON snapshots so the worker can
// process the job without holding any in-memory session state.
type ScoreAnalysis struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RequestJSON  string         `gorm:"type:jsonb" json:"-"`
	Status       AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	ResultJSON   *string        `gorm:"type:jsonb" json:"-"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ScoreAnalysis) TableName() string {
	return "score_analyses"
}
