package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// OracleErrorKind separates user-actionable oracle failures (rate limits,
// exhausted quota) from generic transport or payload problems. Every kind is
// recoverable: session state is left untouched so the caller can retry.
type OracleErrorKind string

const (
	OracleRateLimited    OracleErrorKind = "rate_limited"
	OracleQuotaExhausted OracleErrorKind = "quota_exhausted"
	OracleTransport      OracleErrorKind = "transport"
	OracleEmptyResponse  OracleErrorKind = "empty_response"
	OracleMalformed      OracleErrorKind = "malformed_response"
	OracleTimeout        OracleErrorKind = "timeout"
)

type OracleError struct {
	Kind OracleErrorKind
	Err  error
}

func (e *OracleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oracle %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("oracle %s", e.Kind)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// classifyOracleError maps a Gemini API failure onto the taxonomy.
func classifyOracleError(err error) *OracleError {
	var oracleErr *OracleError
	if errors.As(err, &oracleErr) {
		return oracleErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &OracleError{Kind: OracleTimeout, Err: err}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			return &OracleError{Kind: OracleRateLimited, Err: err}
		case 402, 403:
			return &OracleError{Kind: OracleQuotaExhausted, Err: err}
		}
	}

	return &OracleError{Kind: OracleTransport, Err: err}
}
