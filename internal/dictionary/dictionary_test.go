package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesLoaded(t *testing.T) {
	require.NotEmpty(t, Skills())
	require.NotEmpty(t, ActionVerbs())
	require.NotEmpty(t, TitleKeywords())
	require.NotEmpty(t, SectionHeaders())
}

func TestSkillPattern_WordBoundaries(t *testing.T) {
	pattern := SkillPattern()

	// "go" as a standalone word matches; inside another word it does not.
	assert.Equal(t, []string{"go"}, pattern.FindAllString("written in go", -1))
	assert.Empty(t, pattern.FindAllString("category argon", -1))
}

func TestSkillPattern_NonWordEdges(t *testing.T) {
	pattern := SkillPattern()

	assert.Contains(t, pattern.FindAllString("fluent in c++ since school", -1), "c++")
	assert.Contains(t, pattern.FindAllString("worked on .net services", -1), ".net")
}

func TestSkillPattern_CaseInsensitive(t *testing.T) {
	pattern := SkillPattern()

	matches := pattern.FindAllString("Docker, DOCKER and docker", -1)
	assert.Len(t, matches, 3)
}

func TestSkillPattern_LongestMatchWins(t *testing.T) {
	pattern := SkillPattern()

	// "machine learning" must be taken whole, not as a partial hit on a
	// shorter term at the same position.
	match := pattern.FindString("applied machine learning daily")
	assert.Equal(t, "machine learning", match)
}

func TestActionVerbPattern(t *testing.T) {
	pattern := ActionVerbPattern()

	assert.True(t, pattern.MatchString("Led the platform team"))
	assert.True(t, pattern.MatchString("developed new features"))
	assert.False(t, pattern.MatchString("responsible for snacks"))
}
