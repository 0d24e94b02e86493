package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
	apperrors "github.com/impactrealty/backoffice/internal/errors"
)

// retryBackoffStep is the linear backoff increment between retry attempts.
const retryBackoffStep = 100 * time.Millisecond

// agentGateway implements GatewayUseCase. It owns the disconnected-mode flag
// as explicit process-wide state: seeded once from configuration and mutated
// only through SetDisconnectedMode.
type agentGateway struct {
	registry     Registry
	generator    Generator
	executor     Executor
	fallbacks    FallbackRecorder
	logger       *slog.Logger
	disconnected atomic.Bool
}

// NewGatewayUseCase creates the invocation gateway.
func NewGatewayUseCase(
	registry Registry,
	generator Generator,
	executor Executor,
	fallbacks FallbackRecorder,
	logger *slog.Logger,
	disconnected bool,
) GatewayUseCase {
	g := &agentGateway{
		registry:  registry,
		generator: generator,
		executor:  executor,
		fallbacks: fallbacks,
		logger:    logger,
	}
	g.disconnected.Store(disconnected)
	return g
}

// Invoke routes one request to its destination.
//
// An unknown destination is the one hard failure: it is reported even in
// disconnected mode and never silently synthesized. Every executor failure is
// recovered by falling back to a synthetic response; the real failure is
// logged and counted so operators can see what callers cannot.
func (g *agentGateway) Invoke(ctx context.Context, request agentDomain.InvocationRequest) agentDomain.InvocationResult {
	request = agentDomain.NewInvocationRequest(request.Destination, request.Payload, request.CorrelationID)

	cfg, err := g.registry.Lookup(request.Destination)
	if err != nil {
		return agentDomain.NewFailureResult(agentDomain.ReasonUnknownDestination, request.CorrelationID)
	}

	if g.disconnected.Load() {
		return g.generator.Generate(ctx, request.Destination, request.Payload, request.CorrelationID)
	}

	data, err := g.postWithRetry(ctx, cfg, request)
	if err != nil {
		return g.fallback(ctx, request, err)
	}

	return agentDomain.NewSuccessResult(data, request.CorrelationID)
}

// postWithRetry issues the call, retrying transport and status failures up to
// the destination's retry budget with linear backoff. Timeouts are not
// retried: another attempt would blow past the destination's timeout bound.
func (g *agentGateway) postWithRetry(
	ctx context.Context,
	cfg agentDomain.DestinationConfig,
	request agentDomain.InvocationRequest,
) (agentDomain.Payload, error) {
	var lastErr error

	for attempt := 0; attempt <= cfg.RetryBudget; attempt++ {
		if attempt > 0 {
			if !sleepCtx(ctx, time.Duration(attempt)*retryBackoffStep) {
				return nil, lastErr
			}
			g.logger.Debug("retrying invocation",
				slog.String("destination", cfg.Name),
				slog.String("correlation_id", request.CorrelationID),
				slog.Int("attempt", attempt),
			)
		}

		data, err := g.executor.Post(ctx, cfg.Address, cfg.Name, request.CorrelationID, request.Payload, cfg.Timeout)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if apperrors.Is(err, agentDomain.ErrExecutionTimeout) || ctx.Err() != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// fallback serves a synthetic response in place of a failed invocation and
// surfaces the real failure through the observability channel.
func (g *agentGateway) fallback(
	ctx context.Context,
	request agentDomain.InvocationRequest,
	cause error,
) agentDomain.InvocationResult {
	g.logger.Warn("invocation failed, serving synthetic fallback",
		slog.String("destination", request.Destination),
		slog.String("correlation_id", request.CorrelationID),
		slog.Any("error", cause),
	)
	if g.fallbacks != nil {
		g.fallbacks.RecordFallback(ctx, request.Destination, failureReason(cause))
	}

	return g.generator.Generate(ctx, request.Destination, request.Payload, request.CorrelationID)
}

// ExecuteWorkflow models workflow execution as a specialized payload sent to
// the supervisor destination rather than a separate code path.
func (g *agentGateway) ExecuteWorkflow(
	ctx context.Context,
	workflowName string,
	params agentDomain.Payload,
) agentDomain.InvocationResult {
	payload := agentDomain.Payload{
		"action":        "execute_workflow",
		"workflow_name": workflowName,
		"params":        params,
	}
	request := agentDomain.NewInvocationRequest(agentDomain.DestinationSupervisor, payload, "")
	return g.Invoke(ctx, request)
}

// Check issues a lightweight status query against one destination, with the
// same unknown-destination and fallback semantics as Invoke.
func (g *agentGateway) Check(ctx context.Context, destination string) agentDomain.InvocationResult {
	correlationID := agentDomain.NewCorrelationID()
	statusPayload := agentDomain.Payload{"action": "status"}

	cfg, err := g.registry.Lookup(destination)
	if err != nil {
		return agentDomain.NewFailureResult(agentDomain.ReasonUnknownDestination, correlationID)
	}

	if g.disconnected.Load() {
		return g.generator.Generate(ctx, destination, statusPayload, correlationID)
	}

	data, err := g.executor.Get(ctx, statusURL(cfg.Address), cfg.Name, correlationID, cfg.Timeout)
	if err != nil {
		request := agentDomain.InvocationRequest{
			Destination:   destination,
			Payload:       statusPayload,
			CorrelationID: correlationID,
		}
		return g.fallback(ctx, request, err)
	}

	return agentDomain.NewSuccessResult(data, correlationID)
}

// Stream exposes a long-running invocation as a byte stream. In disconnected
// mode, and whenever the destination cannot be reached, the stream is a single
// chunk containing the full synthetic result. An unknown destination is a hard
// error.
func (g *agentGateway) Stream(
	ctx context.Context,
	destination string,
	payload agentDomain.Payload,
) (io.ReadCloser, error) {
	correlationID := agentDomain.NewCorrelationID()

	cfg, err := g.registry.Lookup(destination)
	if err != nil {
		return nil, agentDomain.ErrUnknownDestination
	}

	if g.disconnected.Load() {
		return g.syntheticChunk(ctx, destination, payload, correlationID)
	}

	body, err := g.executor.PostStream(ctx, cfg.Address, cfg.Name, correlationID, payload, cfg.Timeout)
	if err != nil {
		g.logger.Warn("stream failed, serving synthetic chunk",
			slog.String("destination", destination),
			slog.String("correlation_id", correlationID),
			slog.Any("error", err),
		)
		if g.fallbacks != nil {
			g.fallbacks.RecordFallback(ctx, destination, failureReason(err))
		}
		return g.syntheticChunk(ctx, destination, payload, correlationID)
	}

	return body, nil
}

// syntheticChunk encodes one synthetic result as a single-chunk stream.
func (g *agentGateway) syntheticChunk(
	ctx context.Context,
	destination string,
	payload agentDomain.Payload,
	correlationID string,
) (io.ReadCloser, error) {
	result := g.generator.Generate(ctx, destination, payload, correlationID)
	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode synthetic chunk")
	}
	return io.NopCloser(bytes.NewReader(encoded)), nil
}

// CancelExecution requests cancellation of a workflow execution against the
// supervisor's execution-tracking endpoint. Best effort: in disconnected mode,
// and when the supervisor cannot be reached, it reports immediate success.
func (g *agentGateway) CancelExecution(ctx context.Context, correlationID string) agentDomain.InvocationResult {
	cfg, err := g.registry.Lookup(agentDomain.DestinationSupervisor)
	if err != nil {
		return agentDomain.NewFailureResult(agentDomain.ReasonUnknownDestination, correlationID)
	}

	cancelled := agentDomain.Payload{"status": "cancelled", "execution_id": correlationID}
	if g.disconnected.Load() {
		return agentDomain.NewSuccessResult(cancelled, correlationID)
	}

	url := executionURL(cfg.Address, correlationID) + "/cancel"
	data, err := g.executor.Post(ctx, url, cfg.Name, correlationID, nil, cfg.Timeout)
	if err != nil {
		g.logger.Warn("execution cancel failed, reporting best-effort success",
			slog.String("correlation_id", correlationID),
			slog.Any("error", err),
		)
		return agentDomain.NewSuccessResult(cancelled, correlationID)
	}

	return agentDomain.NewSuccessResult(data, correlationID)
}

// GetExecutionStatus fetches the status of a workflow execution. Best effort:
// in disconnected mode, and when the supervisor cannot be reached, it reports
// immediate completion.
func (g *agentGateway) GetExecutionStatus(ctx context.Context, correlationID string) agentDomain.InvocationResult {
	cfg, err := g.registry.Lookup(agentDomain.DestinationSupervisor)
	if err != nil {
		return agentDomain.NewFailureResult(agentDomain.ReasonUnknownDestination, correlationID)
	}

	completed := agentDomain.Payload{"status": "completed", "execution_id": correlationID}
	if g.disconnected.Load() {
		return agentDomain.NewSuccessResult(completed, correlationID)
	}

	data, err := g.executor.Get(ctx, executionURL(cfg.Address, correlationID), cfg.Name, correlationID, cfg.Timeout)
	if err != nil {
		g.logger.Warn("execution status query failed, reporting best-effort completion",
			slog.String("correlation_id", correlationID),
			slog.Any("error", err),
		)
		return agentDomain.NewSuccessResult(completed, correlationID)
	}

	return agentDomain.NewSuccessResult(data, correlationID)
}

// SetDisconnectedMode toggles the process-wide disconnected flag.
func (g *agentGateway) SetDisconnectedMode(enabled bool) {
	previous := g.disconnected.Swap(enabled)
	if previous != enabled {
		g.logger.Info("disconnected mode changed", slog.Bool("enabled", enabled))
	}
}

// DisconnectedMode reports whether disconnected mode is active.
func (g *agentGateway) DisconnectedMode() bool {
	return g.disconnected.Load()
}

// ReconfigureDestination delegates to the registry.
func (g *agentGateway) ReconfigureDestination(
	name string,
	patch agentDomain.DestinationPatch,
) agentDomain.DestinationConfig {
	cfg := g.registry.Reconfigure(name, patch)
	g.logger.Info("destination reconfigured",
		slog.String("destination", name),
		slog.String("address", cfg.Address),
		slog.Duration("timeout", cfg.Timeout),
		slog.Int("retry_budget", cfg.RetryBudget),
	)
	return cfg
}

// Destinations returns the registered destination names.
func (g *agentGateway) Destinations() []string {
	return g.registry.Names()
}

// statusURL builds the health-check URL for a destination address.
func statusURL(address string) string {
	return strings.TrimSuffix(address, "/") + "/status"
}

// executionURL builds the execution-tracking URL for a correlation id.
func executionURL(address, correlationID string) string {
	return strings.TrimSuffix(address, "/") + "/executions/" + correlationID
}

// failureReason maps an executor error to a short reason label for metrics.
func failureReason(err error) string {
	var statusErr *agentDomain.StatusError
	switch {
	case apperrors.Is(err, agentDomain.ErrExecutionTimeout):
		return "timeout"
	case apperrors.As(err, &statusErr):
		return "status"
	case apperrors.Is(err, agentDomain.ErrTransport):
		return "transport"
	default:
		return "unknown"
	}
}

// sleepCtx waits for the given duration, returning false if the context is
// cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
