package tools

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
)

// ErrorPayload is the JSON text of a failed tool call:
//
//	{"error":{"kind":"rate-limited","message":"...","status":429,"retry_after_seconds":5}}
type ErrorPayload struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed tool call.
type ErrorDetail struct {
	Kind              string `json:"kind"`
	Message           string `json:"message"`
	Status            int    `json:"status,omitempty"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
}

// ToolError is returned by handlers. The SDK reports it as a tool result with
// isError set and Error() as its text.
type ToolError struct {
	Payload ErrorPayload
	cause   error
}

func (e *ToolError) Error() string {
	b, err := json.Marshal(e.Payload)
	if err != nil {
		return e.Payload.Error.Message
	}
	return string(b)
}

func (e *ToolError) Unwrap() error {
	return e.cause
}

// toolError converts a client failure into a ToolError and logs it.
func toolError(log logger.Logger, tool string, err error) error {
	detail := ErrorDetail{Kind: string(s2.KindUpstreamFailure), Message: err.Error()}

	var apiErr *s2.APIError
	if errors.As(err, &apiErr) {
		detail.Kind = string(apiErr.Kind)
		detail.Message = apiErr.Message
		detail.Status = apiErr.StatusCode
		if apiErr.RetryAfter > 0 {
			detail.RetryAfterSeconds = int(math.Ceil(apiErr.RetryAfter.Seconds()))
		}
	}

	if detail.Kind == string(s2.KindInvalidArgument) || detail.Kind == string(s2.KindNotFound) {
		log.Info("%s: %s: %s", tool, detail.Kind, detail.Message)
	} else {
		log.Warn("%s failed: %v", tool, err)
	}
	return &ToolError{Payload: ErrorPayload{Error: detail}, cause: err}
}
