package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"tailorcv/resume-tailor/internal/models"
)

// SkillSuggester answers "what skills are semantically near this one". The
// interrogation engine and the suggestion endpoint both consume it; nil is a
// valid value meaning the index is disabled.
type SkillSuggester interface {
	SuggestRelated(ctx context.Context, skill string, limit int) ([]models.SkillSuggestion, error)
}

// SkillIndexService is the vector store behind the suggester: one point per
// dictionary skill, embedded once at ingest time.
type SkillIndexService interface {
	SkillSuggester
	InitCollection() error
	UpsertSkill(ctx context.Context, skill string, embedding []float32) error
	ListSkills(ctx context.Context) ([]string, error)
	DeleteSkill(ctx context.Context, skill string) error
}

type skillIndexService struct {
	client         *qdrant.Client
	gemini         GeminiService
	collectionName string
	vectorSize     uint64
}

func NewSkillIndexService(urlStr, apiKey, collectionName string, gemini GeminiService) (SkillIndexService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &skillIndexService{
		client:         client,
		gemini:         gemini,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements SkillIndexService.
func (s *skillIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := s.client.CollectionExists(ctx, s.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Skill collection already exists")
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", s.collectionName)
	return nil
}

// UpsertSkill implements SkillIndexService. The skill name doubles as the
// point identity so re-ingesting the dictionary overwrites instead of
// duplicating.
func (s *skillIndexService) UpsertSkill(ctx context.Context, skill string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(skillPointID(skill)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"skill": skill,
		}),
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert skill point: %w", err)
	}

	return nil
}

// SuggestRelated implements SkillSuggester. The query skill itself is
// filtered from its own neighbours.
func (s *skillIndexService) SuggestRelated(ctx context.Context, skill string, limit int) ([]models.SkillSuggestion, error) {
	if limit <= 0 {
		limit = 5
	}

	embedding, err := s.gemini.GenerateEmbedding(ctx, skill)
	if err != nil {
		return nil, fmt.Errorf("failed to embed skill query: %w", err)
	}

	filter := &qdrant.Filter{
		MustNot: []*qdrant.Condition{
			qdrant.NewMatch("skill", skill),
		},
	}

	searchResult, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search skill index: %w", err)
	}

	var suggestions []models.SkillSuggestion
	for _, point := range searchResult {
		name := ""
		if value, ok := point.Payload["skill"]; ok {
			if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
				name = val.StringValue
			}
		}
		if name == "" {
			continue
		}

		suggestions = append(suggestions, models.SkillSuggestion{
			Skill: name,
			Score: point.Score,
		})
	}

	return suggestions, nil
}

// ListSkills implements SkillIndexService. A single scroll page covers the
// whole collection: it only ever holds the dictionary, well below the limit.
func (s *skillIndexService) ListSkills(ctx context.Context) ([]string, error) {
	points, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: s.collectionName,
		Limit:          qdrant.PtrOf(uint32(4096)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scroll skill index: %w", err)
	}

	var skills []string
	for _, point := range points {
		if value, ok := point.Payload["skill"]; ok {
			if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok && val.StringValue != "" {
				skills = append(skills, val.StringValue)
			}
		}
	}

	return skills, nil
}

// skillPointID derives a stable point UUID from the lowercased skill name.
func skillPointID(skill string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(skill))).String()
}

// DeleteSkill implements SkillIndexService.
func (s *skillIndexService) DeleteSkill(ctx context.Context, skill string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("skill", skill),
		},
	}

	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete skill point: %w", err)
	}

	return nil
}
