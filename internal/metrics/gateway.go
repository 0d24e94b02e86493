package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// GatewayMetrics records invocation fallbacks. The gateway masks backend
// failures from callers by serving synthetic responses, so this counter is the
// operator-facing channel that keeps real outages visible.
type GatewayMetrics interface {
	// RecordFallback counts one synthetic fallback for a destination.
	// Reason examples: "timeout", "transport", "status".
	RecordFallback(ctx context.Context, destination, reason string)
}

// gatewayMetrics implements GatewayMetrics using OpenTelemetry metrics.
type gatewayMetrics struct {
	fallbackCounter metric.Int64Counter
}

// NewGatewayMetrics creates a GatewayMetrics implementation using the provided
// meter provider. The namespace parameter prefixes the metric name.
func NewGatewayMetrics(meterProvider metric.MeterProvider, namespace string) (GatewayMetrics, error) {
	meter := meterProvider.Meter(namespace)

	fallbackCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_gateway_fallbacks_total", namespace),
		metric.WithDescription("Total number of invocations served with a synthetic fallback"),
		metric.WithUnit("{fallback}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback counter: %w", err)
	}

	return &gatewayMetrics{fallbackCounter: fallbackCounter}, nil
}

// RecordFallback increments the fallback counter with destination and reason labels.
func (g *gatewayMetrics) RecordFallback(ctx context.Context, destination, reason string) {
	g.fallbackCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("destination", destination),
			attribute.String("reason", reason),
		),
	)
}

// NoOpGatewayMetrics is a no-op implementation for when metrics are disabled.
type NoOpGatewayMetrics struct{}

// NewNoOpGatewayMetrics creates a no-op GatewayMetrics implementation.
func NewNoOpGatewayMetrics() GatewayMetrics {
	return &NoOpGatewayMetrics{}
}

// RecordFallback does nothing when metrics are disabled.
func (n *NoOpGatewayMetrics) RecordFallback(ctx context.Context, destination, reason string) {
	// No-op
}
