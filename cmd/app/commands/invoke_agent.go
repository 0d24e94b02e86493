package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
	"github.com/impactrealty/backoffice/internal/app"
	"github.com/impactrealty/backoffice/internal/config"
)

// invoker is the slice of the gateway use case the command needs.
type invoker interface {
	Invoke(ctx context.Context, request agentDomain.InvocationRequest) agentDomain.InvocationResult
}

// RunInvokeAgent sends a single invocation to the named destination and writes
// the result. The payload argument must be a JSON object.
func RunInvokeAgent(
	ctx context.Context,
	destination string,
	payloadJSON string,
	correlationID string,
	format string,
	streams IOTuple,
) error {
	cfg := config.Load()

	container := app.NewContainer(cfg, "")
	logger := container.Logger()
	defer closeContainer(container, logger)

	gateway, err := container.GatewayUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize gateway use case: %w", err)
	}

	return invokeAgent(ctx, gateway, streams.Writer, destination, payloadJSON, correlationID, format)
}

// invokeAgent parses the payload, performs the invocation and renders the result.
func invokeAgent(
	ctx context.Context,
	gateway invoker,
	writer io.Writer,
	destination string,
	payloadJSON string,
	correlationID string,
	format string,
) error {
	var payload agentDomain.Payload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	request := agentDomain.NewInvocationRequest(destination, payload, correlationID)
	result := gateway.Invoke(ctx, request)

	if format == "json" {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Fprintf(writer, "destination:    %s\n", destination)
	fmt.Fprintf(writer, "correlation_id: %s\n", result.CorrelationID)

	if !result.Succeeded {
		fmt.Fprintf(writer, "failed:         %s\n", result.FailureReason)
		return nil
	}

	data, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Fprintf(writer, "data:\n%s\n", data)

	return nil
}
