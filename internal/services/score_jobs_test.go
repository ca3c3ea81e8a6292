package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailorcv/resume-tailor/internal/models"
	"tailorcv/resume-tailor/internal/repositories"
)

// memoryAnalysisRepo is an in-memory stand-in for the gorm repository.
type memoryAnalysisRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.ScoreAnalysis
}

func newMemoryAnalysisRepo() *memoryAnalysisRepo {
	return &memoryAnalysisRepo{rows: make(map[uuid.UUID]*models.ScoreAnalysis)}
}

func (r *memoryAnalysisRepo) Create(analysis *models.ScoreAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *analysis
	r.rows[analysis.ID] = &copied
	return nil
}

func (r *memoryAnalysisRepo) FindByID(id uuid.UUID) (*models.ScoreAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrAnalysisNotFound
	}
	copied := *row
	return &copied, nil
}

func (r *memoryAnalysisRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return repositories.ErrAnalysisNotFound
	}
	row.Status = status
	return nil
}

func (r *memoryAnalysisRepo) UpdateResult(id uuid.UUID, resultJSON string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return repositories.ErrAnalysisNotFound
	}
	row.Status = models.StatusCompleted
	row.ResultJSON = &resultJSON
	return nil
}

func (r *memoryAnalysisRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return repositories.ErrAnalysisNotFound
	}
	row.Status = models.StatusFailed
	row.ErrorMessage = errorMsg
	return nil
}

func (r *memoryAnalysisRepo) FindPendingJobs(limit int) ([]models.ScoreAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []models.ScoreAnalysis
	for _, row := range r.rows {
		if row.Status == models.StatusQueued && len(jobs) < limit {
			jobs = append(jobs, *row)
		}
	}
	return jobs, nil
}

func TestScoreJobs_SubmitAndProcess(t *testing.T) {
	repo := newMemoryAnalysisRepo()
	oracle := &stubOracle{
		scoreResponses: []*ScoreOracleResponse{rawScore(50), rawScore(70)},
	}
	jobs := NewScoreJobService(repo, NewAtsScorerService(oracle))

	analysis, err := jobs.Submit(scoreRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusQueued, analysis.Status)

	require.NoError(t, jobs.Process(context.Background(), analysis.ID))

	result, err := jobs.Result(analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusCompleted), result.Status)
	require.NotNil(t, result.Result)
	assert.Equal(t, 50, result.Result.OriginalScore.Total)
	assert.Equal(t, 70, result.Result.NewScore.Total)
	assert.Equal(t, 20, result.Result.Improvement)
}

func TestScoreJobs_SubmitRejectsInvalidRequest(t *testing.T) {
	jobs := NewScoreJobService(newMemoryAnalysisRepo(), NewAtsScorerService(&stubOracle{}))

	req := scoreRequest()
	req.ConfirmedSkills = make([]string, 51)

	_, err := jobs.Submit(req)
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestScoreJobs_ProcessSkipsNonQueuedJobs(t *testing.T) {
	repo := newMemoryAnalysisRepo()
	oracle := &stubOracle{}
	jobs := NewScoreJobService(repo, NewAtsScorerService(oracle))

	analysis, err := jobs.Submit(scoreRequest())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(analysis.ID, models.StatusCompleted))

	require.NoError(t, jobs.Process(context.Background(), analysis.ID))
	assert.Empty(t, oracle.scoreCalls)
}

func TestScoreJobs_OracleFailureMarksJobFailed(t *testing.T) {
	repo := newMemoryAnalysisRepo()
	oracle := &stubOracle{
		scoreErrs: []error{&OracleError{Kind: OracleTransport, Err: errors.New("down")}},
	}
	jobs := NewScoreJobService(repo, NewAtsScorerService(oracle))

	analysis, err := jobs.Submit(scoreRequest())
	require.NoError(t, err)

	require.Error(t, jobs.Process(context.Background(), analysis.ID))

	result, err := jobs.Result(analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusFailed), result.Status)
	assert.NotEmpty(t, result.ErrorMessage)
	assert.Nil(t, result.Result)
}

func TestScoreJobs_ResultUnknownID(t *testing.T) {
	jobs := NewScoreJobService(newMemoryAnalysisRepo(), NewAtsScorerService(&stubOracle{}))

	_, err := jobs.Result(uuid.New())
	assert.ErrorIs(t, err, repositories.ErrAnalysisNotFound)
}

func TestScoreJobs_ResultCorruptStoredComparison(t *testing.T) {
	repo := newMemoryAnalysisRepo()
	jobs := NewScoreJobService(repo, NewAtsScorerService(&stubOracle{}))

	analysis, err := jobs.Submit(scoreRequest())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateResult(analysis.ID, "{not json"))

	_, err = jobs.Result(analysis.ID)
	require.Error(t, err)
	// A corrupt stored row is a server-side fault, not a missing one.
	assert.NotErrorIs(t, err, repositories.ErrAnalysisNotFound)
}
