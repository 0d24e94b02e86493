package usecase

import (
	"context"
	"io"
	"time"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
	"github.com/impactrealty/backoffice/internal/metrics"
)

// gatewayUseCaseWithMetrics decorates GatewayUseCase with metrics instrumentation.
type gatewayUseCaseWithMetrics struct {
	next    GatewayUseCase
	metrics metrics.BusinessMetrics
}

// NewGatewayUseCaseWithMetrics wraps a GatewayUseCase with metrics recording.
func NewGatewayUseCaseWithMetrics(useCase GatewayUseCase, m metrics.BusinessMetrics) GatewayUseCase {
	return &gatewayUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// resultStatus maps an invocation result to a metric status label. A synthetic
// fallback still counts as success here; real failures are tracked separately
// by the fallback counter.
func resultStatus(result agentDomain.InvocationResult) string {
	if !result.Succeeded {
		return "error"
	}
	return "success"
}

// Invoke records metrics for invocation operations.
func (g *gatewayUseCaseWithMetrics) Invoke(
	ctx context.Context,
	request agentDomain.InvocationRequest,
) agentDomain.InvocationResult {
	start := time.Now()
	result := g.next.Invoke(ctx, request)

	status := resultStatus(result)
	g.metrics.RecordOperation(ctx, "agent", "invoke", status)
	g.metrics.RecordDuration(ctx, "agent", "invoke", time.Since(start), status)

	return result
}

// ExecuteWorkflow records metrics for workflow execution operations.
func (g *gatewayUseCaseWithMetrics) ExecuteWorkflow(
	ctx context.Context,
	workflowName string,
	params agentDomain.Payload,
) agentDomain.InvocationResult {
	start := time.Now()
	result := g.next.ExecuteWorkflow(ctx, workflowName, params)

	status := resultStatus(result)
	g.metrics.RecordOperation(ctx, "agent", "execute_workflow", status)
	g.metrics.RecordDuration(ctx, "agent", "execute_workflow", time.Since(start), status)

	return result
}

// Check records metrics for destination status queries.
func (g *gatewayUseCaseWithMetrics) Check(ctx context.Context, destination string) agentDomain.InvocationResult {
	start := time.Now()
	result := g.next.Check(ctx, destination)

	status := resultStatus(result)
	g.metrics.RecordOperation(ctx, "agent", "check", status)
	g.metrics.RecordDuration(ctx, "agent", "check", time.Since(start), status)

	return result
}

// Stream records metrics for streaming invocations. Duration covers stream
// setup only, not consumption.
func (g *gatewayUseCaseWithMetrics) Stream(
	ctx context.Context,
	destination string,
	payload agentDomain.Payload,
) (io.ReadCloser, error) {
	start := time.Now()
	body, err := g.next.Stream(ctx, destination, payload)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "agent", "stream", status)
	g.metrics.RecordDuration(ctx, "agent", "stream", time.Since(start), status)

	return body, err
}

// CancelExecution records metrics for execution cancellation operations.
func (g *gatewayUseCaseWithMetrics) CancelExecution(
	ctx context.Context,
	correlationID string,
) agentDomain.InvocationResult {
	start := time.Now()
	result := g.next.CancelExecution(ctx, correlationID)

	status := resultStatus(result)
	g.metrics.RecordOperation(ctx, "agent", "cancel_execution", status)
	g.metrics.RecordDuration(ctx, "agent", "cancel_execution", time.Since(start), status)

	return result
}

// GetExecutionStatus records metrics for execution status queries.
func (g *gatewayUseCaseWithMetrics) GetExecutionStatus(
	ctx context.Context,
	correlationID string,
) agentDomain.InvocationResult {
	start := time.Now()
	result := g.next.GetExecutionStatus(ctx, correlationID)

	status := resultStatus(result)
	g.metrics.RecordOperation(ctx, "agent", "execution_status", status)
	g.metrics.RecordDuration(ctx, "agent", "execution_status", time.Since(start), status)

	return result
}

// SetDisconnectedMode delegates without instrumentation.
func (g *gatewayUseCaseWithMetrics) SetDisconnectedMode(enabled bool) {
	g.next.SetDisconnectedMode(enabled)
}

// DisconnectedMode delegates without instrumentation.
func (g *gatewayUseCaseWithMetrics) DisconnectedMode() bool {
	return g.next.DisconnectedMode()
}

// ReconfigureDestination delegates without instrumentation.
func (g *gatewayUseCaseWithMetrics) ReconfigureDestination(
	name string,
	patch agentDomain.DestinationPatch,
) agentDomain.DestinationConfig {
	return g.next.ReconfigureDestination(name, patch)
}

// Destinations delegates without instrumentation.
func (g *gatewayUseCaseWithMetrics) Destinations() []string {
	return g.next.Destinations()
}
