package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
	"github.com/impactrealty/backoffice/internal/app"
	"github.com/impactrealty/backoffice/internal/config"
)

// healthChecker is the slice of the health use case the command needs.
type healthChecker interface {
	CheckAll(ctx context.Context) map[string]agentDomain.InvocationResult
}

// RunCheckAgents queries the health of every registered agent destination and
// writes a per-destination report.
func RunCheckAgents(ctx context.Context, format string, streams IOTuple) error {
	cfg := config.Load()

	container := app.NewContainer(cfg, "")
	logger := container.Logger()
	defer closeContainer(container, logger)

	healthUseCase, err := container.HealthUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize health use case: %w", err)
	}

	return checkAgents(ctx, healthUseCase, streams.Writer, format)
}

// checkAgents runs the health probes and renders the report. Destinations
// answering their status probe are reported as healthy; everything else is
// reported with its failure reason.
func checkAgents(ctx context.Context, healthUseCase healthChecker, writer io.Writer, format string) error {
	results := healthUseCase.CheckAll(ctx)

	if format == "json" {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	// Stable output ordering for the text report.
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		result := results[name]
		if result.Succeeded {
			fmt.Fprintf(writer, "%-16s healthy   (correlation_id=%s)\n", name, result.CorrelationID)
			continue
		}
		fmt.Fprintf(writer, "%-16s unhealthy %s (correlation_id=%s)\n", name, result.FailureReason, result.CorrelationID)
	}

	return nil
}
