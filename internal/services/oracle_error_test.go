package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassifyOracleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want OracleErrorKind
	}{
		{
			name: "existing oracle error passes through",
			err:  fmt.Errorf("wrapped: %w", &OracleError{Kind: OracleMalformed}),
			want: OracleMalformed,
		},
		{
			name: "deadline exceeded is a timeout",
			err:  fmt.Errorf("call failed: %w", context.DeadlineExceeded),
			want: OracleTimeout,
		},
		{
			name: "429 is rate limited",
			err:  genai.APIError{Code: 429, Message: "resource exhausted"},
			want: OracleRateLimited,
		},
		{
			name: "403 is quota exhausted",
			err:  genai.APIError{Code: 403, Message: "quota"},
			want: OracleQuotaExhausted,
		},
		{
			name: "anything else is transport",
			err:  errors.New("connection reset"),
			want: OracleTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyOracleError(tt.err).Kind)
		})
	}
}

func TestOracleError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &OracleError{Kind: OracleTransport, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "transport")
	assert.Contains(t, err.Error(), "boom")
}
