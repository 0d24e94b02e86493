// Package http provides HTTP handlers for the agent invocation gateway.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
	"github.com/impactrealty/backoffice/internal/agent/http/dto"
	agentUseCase "github.com/impactrealty/backoffice/internal/agent/usecase"
	"github.com/impactrealty/backoffice/internal/httputil"
	customValidation "github.com/impactrealty/backoffice/internal/validation"
)

// streamBufferSize is the chunk size used when relaying agent streams.
const streamBufferSize = 4096

// AgentHandler handles HTTP requests for agent invocations.
type AgentHandler struct {
	gatewayUseCase agentUseCase.GatewayUseCase
	healthUseCase  agentUseCase.HealthUseCase
	batchUseCase   agentUseCase.BatchUseCase
	logger         *slog.Logger
}

// NewAgentHandler creates a new agent handler with required dependencies.
func NewAgentHandler(
	gatewayUseCase agentUseCase.GatewayUseCase,
	healthUseCase agentUseCase.HealthUseCase,
	batchUseCase agentUseCase.BatchUseCase,
	logger *slog.Logger,
) *AgentHandler {
	return &AgentHandler{
		gatewayUseCase: gatewayUseCase,
		healthUseCase:  healthUseCase,
		batchUseCase:   batchUseCase,
		logger:         logger,
	}
}

// InvokeHandler routes one invocation to a named agent destination.
// POST /api/v1/agents/:name/invoke
// Returns 200 OK with the invocation result, or 404 for an unknown destination.
func (h *AgentHandler) InvokeHandler(c *gin.Context) {
	name := c.Param("name")

	var req dto.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gatewayUseCase.Invoke(c.Request.Context(), agentDomain.InvocationRequest{
		Destination:   name,
		Payload:       req.Payload,
		CorrelationID: req.CorrelationID,
	})

	if !result.Succeeded && result.FailureReason == agentDomain.ReasonUnknownDestination {
		httputil.HandleErrorGin(c, agentDomain.ErrUnknownDestination, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapResultToResponse(result))
}

// BatchInvokeHandler fans out a batch of invocations concurrently.
// POST /api/v1/agents/invoke-batch
// Returns 200 OK with one result per distinct destination.
func (h *AgentHandler) BatchInvokeHandler(c *gin.Context) {
	var req dto.BatchInvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	requests := make([]agentDomain.InvocationRequest, 0, len(req.Requests))
	for _, item := range req.Requests {
		requests = append(requests, agentDomain.InvocationRequest{
			Destination:   item.Destination,
			Payload:       item.Payload,
			CorrelationID: item.CorrelationID,
		})
	}

	results := h.batchUseCase.InvokeBatch(c.Request.Context(), requests)
	c.JSON(http.StatusOK, dto.MapResultsToBatchResponse(results))
}

// HealthHandler aggregates health across all registered destinations.
// GET /api/v1/agents/health
// Returns 200 OK with exactly one entry per destination.
func (h *AgentHandler) HealthHandler(c *gin.Context) {
	results := h.healthUseCase.CheckAll(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapResultsToHealthResponse(results))
}

// StreamHandler relays a long-running invocation as an incremental byte stream.
// POST /api/v1/agents/:name/stream
// Returns 200 OK with chunked output, or 404 for an unknown destination.
func (h *AgentHandler) StreamHandler(c *gin.Context) {
	name := c.Param("name")

	var req dto.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	stream, err := h.gatewayUseCase.Stream(c.Request.Context(), name, req.Payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer func() {
		if closeErr := stream.Close(); closeErr != nil {
			h.logger.Warn("failed to close agent stream", slog.Any("error", closeErr))
		}
	}()

	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)

	buf := make([]byte, streamBufferSize)
	for {
		n, readErr := stream.Read(buf)
		if n > 0 {
			if _, writeErr := c.Writer.Write(buf[:n]); writeErr != nil {
				return
			}
			c.Writer.Flush()
		}
		if readErr != nil {
			return
		}
	}
}

// ListHandler lists the registered destination names.
// GET /api/v1/agents
func (h *AgentHandler) ListHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.DestinationListResponse{
		Destinations: h.gatewayUseCase.Destinations(),
	})
}

// ReconfigureHandler applies a partial reconfiguration to a destination,
// registering it when absent.
// PUT /api/v1/agents/:name/config
// Returns 200 OK with the resulting configuration.
func (h *AgentHandler) ReconfigureHandler(c *gin.Context) {
	name := c.Param("name")
	if err := customValidation.DestinationName.Validate(name); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var req dto.ReconfigureDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	patch := agentDomain.DestinationPatch{
		Address:     req.Address,
		RetryBudget: req.RetryBudget,
	}
	if req.TimeoutSeconds != nil {
		timeout := time.Duration(*req.TimeoutSeconds) * time.Second
		patch.Timeout = &timeout
	}

	cfg := h.gatewayUseCase.ReconfigureDestination(name, patch)
	c.JSON(http.StatusOK, dto.MapDestinationToResponse(cfg))
}
