package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tailorcv/resume-tailor/internal/models"
	"tailorcv/resume-tailor/internal/repositories"
)

// ScoreJobService owns the lifecycle of asynchronous scoring jobs: a request
// is validated and persisted as a queued row, the worker later runs it
// through the ATS scorer, and clients poll the row for the outcome.
type ScoreJobService interface {
	Submit(req models.ScoreRequest) (*models.ScoreAnalysis, error)
	Process(ctx context.Context, analysisID uuid.UUID) error
	Result(id uuid.UUID) (*models.ScoreResultResponse, error)
}

type scoreJobService struct {
	analysisRepo repositories.AnalysisRepository
	scorer       AtsScorerService
}

func NewScoreJobService(analysisRepo repositories.AnalysisRepository, scorer AtsScorerService) ScoreJobService {
	return &scoreJobService{
		analysisRepo: analysisRepo,
		scorer:       scorer,
	}
}

// Submit implements ScoreJobService. Validation happens here so a bad request
// is rejected synchronously instead of surfacing later as a failed job.
func (s *scoreJobService) Submit(req models.ScoreRequest) (*models.ScoreAnalysis, error) {
	if err := ValidateScoreRequest(req); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score request: %w", err)
	}

	analysis := &models.ScoreAnalysis{
		ID:          uuid.New(),
		RequestJSON: string(payload),
		Status:      models.StatusQueued,
	}

	if err := s.analysisRepo.Create(analysis); err != nil {
		return nil, err
	}

	return analysis, nil
}

// Process implements ScoreJobService. Safe to call twice for the same job:
// a row that already left the queued state is skipped so the poller and an
// explicit enqueue cannot double-score it.
func (s *scoreJobService) Process(ctx context.Context, analysisID uuid.UUID) error {
	analysis, err := s.analysisRepo.FindByID(analysisID)
	if err != nil {
		return err
	}

	if analysis.Status != models.StatusQueued {
		log.Printf("⏭️  Analysis %s already %s, skipping\n", analysisID, analysis.Status)
		return nil
	}

	if err := s.analysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return err
	}

	var req models.ScoreRequest
	if err := json.Unmarshal([]byte(analysis.RequestJSON), &req); err != nil {
		s.failAnalysis(analysisID, fmt.Errorf("corrupt request payload: %w", err))
		return fmt.Errorf("failed to unmarshal score request: %w", err)
	}

	comparison, err := s.scorer.Score(ctx, req)
	if err != nil {
		s.failAnalysis(analysisID, err)
		return err
	}

	resultJSON, err := json.Marshal(comparison)
	if err != nil {
		s.failAnalysis(analysisID, err)
		return fmt.Errorf("failed to marshal comparison: %w", err)
	}

	if err := s.analysisRepo.UpdateResult(analysisID, string(resultJSON)); err != nil {
		return err
	}

	return nil
}

// Result implements ScoreJobService.
func (s *scoreJobService) Result(id uuid.UUID) (*models.ScoreResultResponse, error) {
	analysis, err := s.analysisRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	resp := &models.ScoreResultResponse{
		ID:           analysis.ID.String(),
		Status:       string(analysis.Status),
		ErrorMessage: analysis.ErrorMessage,
	}

	if analysis.ResultJSON != nil {
		var comparison models.ATSComparison
		if err := json.Unmarshal([]byte(*analysis.ResultJSON), &comparison); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored comparison: %w", err)
		}
		resp.Result = &comparison
	}

	return resp, nil
}

func (s *scoreJobService) failAnalysis(id uuid.UUID, cause error) {
	if err := s.analysisRepo.UpdateError(id, cause.Error()); err != nil {
		log.Printf("❌ Failed to mark analysis %s as failed: %v\n", id, err)
	}
}
