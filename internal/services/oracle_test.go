package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGapAnalysisResponse_PlainJSON(t *testing.T) {
	resp, err := parseGapAnalysisResponse(`{
		"question": "How many years of Go?",
		"skill_being_probed": "go",
		"is_complete": false,
		"gaps_identified": ["go", "kubernetes"]
	}`)
	require.NoError(t, err)

	assert.Equal(t, "How many years of Go?", resp.Question)
	assert.Equal(t, "go", resp.SkillBeingProbed)
	require.NotNil(t, resp.GapsIdentified)
	assert.Equal(t, []string{"go", "kubernetes"}, *resp.GapsIdentified)
	assert.Nil(t, resp.ConfirmedSkills)
}

func TestParseGapAnalysisResponse_MarkdownFenced(t *testing.T) {
	content := "Here is my response:\n```json\n{\"question\": \"Tell me about Docker.\"}\n```\nHope that helps!"

	resp, err := parseGapAnalysisResponse(content)
	require.NoError(t, err)
	assert.Equal(t, "Tell me about Docker.", resp.Question)
}

func TestParseGapAnalysisResponse_RawTextFallback(t *testing.T) {
	resp, err := parseGapAnalysisResponse("Could you tell me more about your Kubernetes experience?")
	require.NoError(t, err)

	assert.Equal(t, "Could you tell me more about your Kubernetes experience?", resp.Question)
	assert.Nil(t, resp.GapsIdentified)
	assert.Nil(t, resp.ConfirmedSkills)
	assert.False(t, resp.IsComplete)
}

func TestParseGapAnalysisResponse_BlankIsEmptyResponse(t *testing.T) {
	_, err := parseGapAnalysisResponse("   \n\t  ")
	require.Error(t, err)

	var oracleErr *OracleError
	require.ErrorAs(t, err, &oracleErr)
	assert.Equal(t, OracleEmptyResponse, oracleErr.Kind)
}

func TestParseGapAnalysisResponse_NoQuestionNoSummary(t *testing.T) {
	_, err := parseGapAnalysisResponse(`{"is_complete": false}`)
	require.Error(t, err)

	var oracleErr *OracleError
	require.ErrorAs(t, err, &oracleErr)
	assert.Equal(t, OracleMalformed, oracleErr.Kind)
}

func TestParseGapAnalysisResponse_SummaryOnlyCompletion(t *testing.T) {
	resp, err := parseGapAnalysisResponse(`{"is_complete": true, "summary": "All gaps covered."}`)
	require.NoError(t, err)

	assert.True(t, resp.IsComplete)
	assert.Equal(t, "All gaps covered.", resp.Summary)
	assert.Empty(t, resp.Question)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare json untouched",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "fenced json",
			input: "```json\n{\"a\": 1}\n```",
			want:  "{\"a\": 1}",
		},
		{
			name:  "prose around object",
			input: "Sure! {\"a\": 1} is the result.",
			want:  `{"a": 1}`,
		},
		{
			name:  "no object returns input",
			input: "no json here",
			want:  "no json here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.input))
		})
	}
}
