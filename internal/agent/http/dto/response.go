package dto

import (
	"time"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
)

// InvocationResponse is the outward representation of an invocation result.
type InvocationResponse struct {
	Succeeded     bool                `json:"succeeded"`
	Data          agentDomain.Payload `json:"data,omitempty"`
	FailureReason string              `json:"failure_reason,omitempty"`
	CorrelationID string              `json:"correlation_id"`
	CompletedAt   time.Time           `json:"completed_at"`
}

// MapResultToResponse converts an invocation result to its response representation.
func MapResultToResponse(result agentDomain.InvocationResult) InvocationResponse {
	return InvocationResponse{
		Succeeded:     result.Succeeded,
		Data:          result.Data,
		FailureReason: result.FailureReason,
		CorrelationID: result.CorrelationID,
		CompletedAt:   result.CompletedAt,
	}
}

// BatchInvokeResponse carries one response per distinct destination.
type BatchInvokeResponse struct {
	Results map[string]InvocationResponse `json:"results"`
}

// MapResultsToBatchResponse converts a result map to its response representation.
func MapResultsToBatchResponse(results map[string]agentDomain.InvocationResult) BatchInvokeResponse {
	mapped := make(map[string]InvocationResponse, len(results))
	for destination, result := range results {
		mapped[destination] = MapResultToResponse(result)
	}
	return BatchInvokeResponse{Results: mapped}
}

// HealthResponse aggregates per-destination health.
type HealthResponse struct {
	Healthy      int                           `json:"healthy"`
	Total        int                           `json:"total"`
	Destinations map[string]InvocationResponse `json:"destinations"`
}

// MapResultsToHealthResponse converts health check results to the aggregate response.
func MapResultsToHealthResponse(results map[string]agentDomain.InvocationResult) HealthResponse {
	response := HealthResponse{
		Total:        len(results),
		Destinations: make(map[string]InvocationResponse, len(results)),
	}
	for destination, result := range results {
		if result.Succeeded {
			response.Healthy++
		}
		response.Destinations[destination] = MapResultToResponse(result)
	}
	return response
}

// DestinationResponse is the outward representation of a destination configuration.
type DestinationResponse struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	RetryBudget    int    `json:"retry_budget"`
}

// MapDestinationToResponse converts a destination configuration to its response representation.
func MapDestinationToResponse(cfg agentDomain.DestinationConfig) DestinationResponse {
	return DestinationResponse{
		Name:           cfg.Name,
		Address:        cfg.Address,
		TimeoutSeconds: int(cfg.Timeout.Seconds()),
		RetryBudget:    cfg.RetryBudget,
	}
}

// DestinationListResponse lists the registered destination names.
type DestinationListResponse struct {
	Destinations []string `json:"destinations"`
}

// DisconnectedModeResponse reports the disconnected-mode flag.
type DisconnectedModeResponse struct {
	Enabled bool `json:"enabled"`
}

// SystemStatusResponse is the operator-facing service status document.
type SystemStatusResponse struct {
	Status           string   `json:"status"`
	Version          string   `json:"version"`
	DisconnectedMode bool     `json:"disconnected_mode"`
	Destinations     []string `json:"destinations"`
}
