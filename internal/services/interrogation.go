package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"tailorcv/resume-tailor/internal/models"
)

var (
	ErrSessionNotFound       = errors.New("interrogation session not found")
	ErrInterrogationComplete = errors.New("interrogation is already complete")
	ErrTurnInFlight          = errors.New("a previous answer is still awaiting the oracle")
)

// InterrogationSnapshot is a caller-safe copy of one session's state.
type InterrogationSnapshot struct {
	ID    uuid.UUID                 `json:"id"`
	State models.InterrogationState `json:"state"`
}

// InterrogationService drives the gap-analysis conversation: it sends turn
// context to the oracle, appends turns in strict submission order, and honors
// the oracle's completion signal. Turn ordering is protected per session: a
// second answer is rejected while one is awaiting its oracle response.
//
// The oracle decides when the conversation ends; the engine imposes no turn
// cap of its own. A misbehaving oracle that never completes therefore yields
// an unbounded conversation, bounded in practice only by the history cap on
// oracle-bound requests.
type InterrogationService interface {
	Start(ctx context.Context, jd models.JobDescription, resume models.ResumeProfile) (*InterrogationSnapshot, error)
	Answer(ctx context.Context, id uuid.UUID, answer string) (*InterrogationSnapshot, error)
	Get(id uuid.UUID) (*InterrogationSnapshot, error)
}

type interrogationSession struct {
	mu       sync.Mutex
	inFlight bool
	jd       models.JobDescription
	resume   models.ResumeProfile
	state    models.InterrogationState
}

type interrogationService struct {
	oracle    Oracle
	suggester SkillSuggester

	mu       sync.RWMutex
	sessions map[uuid.UUID]*interrogationSession
}

// NewInterrogationService builds the engine. suggester may be nil; related
// skill hints are then simply omitted from the first-turn context.
func NewInterrogationService(oracle Oracle, suggester SkillSuggester) InterrogationService {
	return &interrogationService{
		oracle:    oracle,
		suggester: suggester,
		sessions:  make(map[uuid.UUID]*interrogationSession),
	}
}

// Start implements InterrogationService.
func (s *interrogationService) Start(ctx context.Context, jd models.JobDescription, resume models.ResumeProfile) (*InterrogationSnapshot, error) {
	req := GapAnalysisRequest{
		JobDescription: jd,
		Resume:         resume,
	}

	if err := ValidateGapAnalysisRequest(req); err != nil {
		return nil, err
	}

	req.RelatedSkillHints = s.relatedSkillHints(ctx, jd, resume)

	resp, err := s.oracle.NextQuestion(ctx, req)
	if err != nil {
		return nil, err
	}

	session := &interrogationSession{jd: jd, resume: resume}
	applyOracleResponse(&session.state, resp)

	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return snapshot(id, session), nil
}

// Answer implements InterrogationService. The user turn is appended
// optimistically and rolled back if the oracle call fails, so a retry never
// loses or duplicates prior turns.
func (s *interrogationService) Answer(ctx context.Context, id uuid.UUID, answer string) (*InterrogationSnapshot, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	session.mu.Lock()
	if session.state.IsComplete {
		session.mu.Unlock()
		return nil, ErrInterrogationComplete
	}
	if session.inFlight {
		session.mu.Unlock()
		return nil, ErrTurnInFlight
	}

	history := make([]models.ConversationTurn, len(session.state.Turns), len(session.state.Turns)+1)
	copy(history, session.state.Turns)
	history = append(history, models.ConversationTurn{Role: models.RoleUser, Content: answer})

	req := GapAnalysisRequest{
		JobDescription:      session.jd,
		Resume:              session.resume,
		ConversationHistory: history,
		UserAnswer:          answer,
	}

	if err := ValidateGapAnalysisRequest(req); err != nil {
		session.mu.Unlock()
		return nil, err
	}

	session.state.Turns = history
	session.inFlight = true
	session.mu.Unlock()

	resp, err := s.oracle.NextQuestion(ctx, req)

	session.mu.Lock()
	defer session.mu.Unlock()
	session.inFlight = false

	if err != nil {
		// Roll back the optimistic user turn so the session is exactly as it
		// was before the call.
		session.state.Turns = session.state.Turns[:len(session.state.Turns)-1]
		return nil, err
	}

	applyOracleResponse(&session.state, resp)
	return snapshotLocked(id, session), nil
}

// Get implements InterrogationService.
func (s *interrogationService) Get(id uuid.UUID) (*InterrogationSnapshot, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	return snapshot(id, session), nil
}

// applyOracleResponse appends the assistant turn and merges the returned gap
// and confirmed-skill sets. Sets are replaced only when explicitly present in
// the payload; an absent field keeps the prior values.
func applyOracleResponse(state *models.InterrogationState, resp *GapAnalysisResponse) {
	content := resp.Question
	if resp.IsComplete && resp.Summary != "" {
		content = resp.Summary
	}

	state.Turns = append(state.Turns, models.ConversationTurn{
		Role:             models.RoleAssistant,
		Content:          content,
		SkillBeingProbed: resp.SkillBeingProbed,
		Context:          resp.Context,
	})

	if resp.GapsIdentified != nil {
		state.GapsIdentified = dedupeFold(*resp.GapsIdentified)
	}
	if resp.ConfirmedSkills != nil {
		state.ConfirmedSkills = dedupeFold(*resp.ConfirmedSkills)
	}

	state.IsComplete = resp.IsComplete
	if resp.Summary != "" {
		state.Summary = resp.Summary
	}
}

// relatedSkillHints enriches the first turn with skill-index neighbours of
// the naive gaps (job skills the resume does not mention). Lookup failures
// only cost the hints.
func (s *interrogationService) relatedSkillHints(ctx context.Context, jd models.JobDescription, resume models.ResumeProfile) []string {
	if s.suggester == nil {
		return nil
	}

	have := make(map[string]bool, len(resume.Skills))
	for _, skill := range resume.Skills {
		have[strings.ToLower(skill)] = true
	}

	var hints []string
	seen := make(map[string]bool)
	probed := 0
	for _, skill := range jd.Skills {
		if have[strings.ToLower(skill)] {
			continue
		}
		if probed == 3 {
			break
		}
		probed++

		suggestions, err := s.suggester.SuggestRelated(ctx, skill, 3)
		if err != nil {
			log.Printf("⚠️  Skill index lookup failed for %q: %v\n", skill, err)
			continue
		}
		for _, suggestion := range suggestions {
			key := strings.ToLower(suggestion.Skill)
			if !seen[key] && !have[key] {
				seen[key] = true
				hints = append(hints, suggestion.Skill)
			}
		}
	}

	return hints
}

func snapshot(id uuid.UUID, session *interrogationSession) *InterrogationSnapshot {
	session.mu.Lock()
	defer session.mu.Unlock()
	return snapshotLocked(id, session)
}

func snapshotLocked(id uuid.UUID, session *interrogationSession) *InterrogationSnapshot {
	state := models.InterrogationState{
		Turns:           append([]models.ConversationTurn(nil), session.state.Turns...),
		IsComplete:      session.state.IsComplete,
		GapsIdentified:  append([]string(nil), session.state.GapsIdentified...),
		ConfirmedSkills: append([]string(nil), session.state.ConfirmedSkills...),
		Summary:         session.state.Summary,
	}
	return &InterrogationSnapshot{ID: id, State: state}
}

// dedupeFold deduplicates case-insensitively, keeping first occurrences.
func dedupeFold(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
