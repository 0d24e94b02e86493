// Package usecase implements the agent invocation gateway: routing, synthetic
// fallback, health aggregation and batch/stream coordination.
package usecase

import (
	"context"
	"io"
	"time"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
)

// Registry provides destination lookup and reconfiguration.
type Registry interface {
	// Lookup returns the configuration for the named destination or
	// ErrUnknownDestination.
	Lookup(name string) (agentDomain.DestinationConfig, error)

	// Reconfigure merges the patch into the named entry, creating it if absent,
	// and returns the resulting configuration.
	Reconfigure(name string, patch agentDomain.DestinationPatch) agentDomain.DestinationConfig

	// Names returns the currently registered destination names.
	Names() []string
}

// Generator produces synthetic destination responses.
type Generator interface {
	// Generate fabricates a succeeded result shaped like a real response from
	// the named destination. It never fails.
	Generate(ctx context.Context, destination string, payload agentDomain.Payload, correlationID string) agentDomain.InvocationResult
}

// Executor performs single bounded network calls against destinations.
type Executor interface {
	// Post sends a JSON payload and decodes the response.
	Post(ctx context.Context, address, destination, correlationID string, payload agentDomain.Payload, timeout time.Duration) (agentDomain.Payload, error)

	// Get fetches a JSON document from the given URL.
	Get(ctx context.Context, url, destination, correlationID string, timeout time.Duration) (agentDomain.Payload, error)

	// PostStream sends a JSON payload and exposes the raw response body as a
	// lazily-consumed stream. The caller must close the returned reader.
	PostStream(ctx context.Context, address, destination, correlationID string, payload agentDomain.Payload, timeout time.Duration) (io.ReadCloser, error)
}

// GatewayUseCase coordinates invocations against the agent fleet. Backend
// failures other than an unknown destination are never propagated to callers;
// they degrade to synthetic responses and are surfaced through logs and
// metrics instead.
type GatewayUseCase interface {
	// Invoke routes one invocation request to its destination.
	Invoke(ctx context.Context, request agentDomain.InvocationRequest) agentDomain.InvocationResult

	// ExecuteWorkflow runs a named workflow through the supervisor destination.
	ExecuteWorkflow(ctx context.Context, workflowName string, params agentDomain.Payload) agentDomain.InvocationResult

	// Check issues a lightweight status query against one destination.
	Check(ctx context.Context, destination string) agentDomain.InvocationResult

	// Stream exposes a long-running invocation as an incrementally-consumable
	// byte stream. In disconnected mode the stream degenerates to a single
	// chunk containing the full synthetic result.
	Stream(ctx context.Context, destination string, payload agentDomain.Payload) (io.ReadCloser, error)

	// CancelExecution requests best-effort cancellation of a running workflow
	// execution identified by its correlation id.
	CancelExecution(ctx context.Context, correlationID string) agentDomain.InvocationResult

	// GetExecutionStatus fetches the best-effort status of a workflow execution.
	GetExecutionStatus(ctx context.Context, correlationID string) agentDomain.InvocationResult

	// SetDisconnectedMode toggles the process-wide disconnected flag.
	SetDisconnectedMode(enabled bool)

	// DisconnectedMode reports whether disconnected mode is active.
	DisconnectedMode() bool

	// ReconfigureDestination delegates a partial reconfiguration to the registry.
	ReconfigureDestination(name string, patch agentDomain.DestinationPatch) agentDomain.DestinationConfig

	// Destinations returns the registered destination names.
	Destinations() []string
}

// HealthUseCase aggregates per-destination health.
type HealthUseCase interface {
	// CheckAll queries every registered destination concurrently and returns
	// exactly one entry per destination.
	CheckAll(ctx context.Context) map[string]agentDomain.InvocationResult
}

// BatchUseCase fans out heterogeneous invocation requests.
type BatchUseCase interface {
	// InvokeBatch runs all requests concurrently and waits for all to settle.
	// When the same destination appears twice, the later result in completion
	// order wins.
	InvokeBatch(ctx context.Context, requests []agentDomain.InvocationRequest) map[string]agentDomain.InvocationResult
}

// FallbackRecorder surfaces masked backend failures to operators. The gateway
// hides executor failures from callers, so this channel is the only place
// where real outages stay visible.
type FallbackRecorder interface {
	RecordFallback(ctx context.Context, destination, reason string)
}
