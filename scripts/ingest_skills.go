package main

import (
	"context"
	"log"
	"os"
	"strings"

	"tailorcv/resume-tailor/internal/config"
	"tailorcv/resume-tailor/internal/dictionary"
	"tailorcv/resume-tailor/internal/services"
)

func main() {
	log.Println("🚀 Starting skill dictionary ingestion...")

	// Load configuration
	cfg := config.Load()

	if !cfg.SkillIndexEnabled() {
		log.Fatalln("❌ QDRANT_URL is not set; nothing to ingest into")
	}

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Timeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	skillIndex, err := services.NewSkillIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := skillIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()
	skills := dictionary.Skills()
	log.Printf("📚 Ingesting %d skills from the dictionary\n", len(skills))

	successCount := 0
	failCount := 0

	for i, skill := range skills {
		embedding, err := geminiService.GenerateEmbedding(ctx, skill)
		if err != nil {
			log.Printf("   ❌ Failed to generate embedding for %q: %v", skill, err)
			failCount++
			continue
		}

		if err := skillIndex.UpsertSkill(ctx, skill, embedding); err != nil {
			log.Printf("   ❌ Failed to store %q: %v", skill, err)
			failCount++
			continue
		}

		successCount++
		if (i+1)%25 == 0 || i == len(skills)-1 {
			log.Printf("   📊 Progress: %d/%d skills stored", i+1, len(skills))
		}
	}

	// Purge entries for skills that have left the dictionary
	purgedCount := 0
	indexed, err := skillIndex.ListSkills(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to list indexed skills, skipping purge: %v", err)
	} else {
		current := make(map[string]bool, len(skills))
		for _, skill := range skills {
			current[strings.ToLower(skill)] = true
		}

		for _, skill := range indexed {
			if current[strings.ToLower(skill)] {
				continue
			}
			if err := skillIndex.DeleteSkill(ctx, skill); err != nil {
				log.Printf("   ❌ Failed to purge %q: %v", skill, err)
				failCount++
				continue
			}
			purgedCount++
		}
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d skills", successCount)
	log.Printf("   🧹 Purged stale: %d skills", purgedCount)
	log.Printf("   ❌ Failed: %d skills", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some skills failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ Skill dictionary ingested successfully!")
}
