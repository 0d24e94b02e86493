package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payload is a schema-less key-value mapping exchanged with agent destinations.
// Different destinations return structurally different payloads; the gateway
// passes them through unmodified and lets higher layers interpret fields.
type Payload map[string]any

// InvocationRequest describes one request directed at a single destination.
// Requests are created per call, owned by that call and never persisted.
type InvocationRequest struct {
	Destination   string    `json:"destination"`
	Payload       Payload   `json:"payload"`
	CorrelationID string    `json:"correlation_id"`
	IssuedAt      time.Time `json:"issued_at"`
}

// NewInvocationRequest creates a request for the given destination, generating
// a correlation id when the caller did not supply one.
func NewInvocationRequest(destination string, payload Payload, correlationID string) InvocationRequest {
	if correlationID == "" {
		correlationID = NewCorrelationID()
	}
	return InvocationRequest{
		Destination:   destination,
		Payload:       payload,
		CorrelationID: correlationID,
		IssuedAt:      time.Now().UTC(),
	}
}

// NewCorrelationID generates a process-unique, time-ordered correlation id.
func NewCorrelationID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// InvocationResult is the outcome of one invocation. Results are immutable
// after creation and carry the correlation id of the request that produced them.
type InvocationResult struct {
	Succeeded     bool      `json:"succeeded"`
	Data          Payload   `json:"data,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CorrelationID string    `json:"correlation_id"`
	CompletedAt   time.Time `json:"completed_at"`
}

// NewSuccessResult builds a succeeded result carrying the given data.
func NewSuccessResult(data Payload, correlationID string) InvocationResult {
	return InvocationResult{
		Succeeded:     true,
		Data:          data,
		CorrelationID: correlationID,
		CompletedAt:   time.Now().UTC(),
	}
}

// NewFailureResult builds a failed result carrying the given reason.
func NewFailureResult(reason, correlationID string) InvocationResult {
	return InvocationResult{
		Succeeded:     false,
		FailureReason: reason,
		CorrelationID: correlationID,
		CompletedAt:   time.Now().UTC(),
	}
}
