package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/impactrealty/backoffice/internal/agent/http/dto"
	agentUseCase "github.com/impactrealty/backoffice/internal/agent/usecase"
	"github.com/impactrealty/backoffice/internal/httputil"
	customValidation "github.com/impactrealty/backoffice/internal/validation"
)

// WorkflowHandler handles HTTP requests for workflow orchestration. Workflows
// run through the supervisor destination and are tracked by correlation id.
type WorkflowHandler struct {
	gatewayUseCase agentUseCase.GatewayUseCase
	logger         *slog.Logger
}

// NewWorkflowHandler creates a new workflow handler with required dependencies.
func NewWorkflowHandler(gatewayUseCase agentUseCase.GatewayUseCase, logger *slog.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		gatewayUseCase: gatewayUseCase,
		logger:         logger,
	}
}

// ExecuteHandler runs a named workflow through the supervisor destination.
// POST /api/v1/workflows/execute
// Returns 202 Accepted with the invocation result.
func (h *WorkflowHandler) ExecuteHandler(c *gin.Context) {
	var req dto.ExecuteWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gatewayUseCase.ExecuteWorkflow(c.Request.Context(), req.WorkflowName, req.Params)
	c.JSON(http.StatusAccepted, dto.MapResultToResponse(result))
}

// StatusHandler fetches the status of a workflow execution.
// GET /api/v1/workflows/executions/:id
func (h *WorkflowHandler) StatusHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("execution id cannot be empty"), h.logger)
		return
	}

	result := h.gatewayUseCase.GetExecutionStatus(c.Request.Context(), id)
	c.JSON(http.StatusOK, dto.MapResultToResponse(result))
}

// CancelHandler requests best-effort cancellation of a workflow execution.
// POST /api/v1/workflows/executions/:id/cancel
func (h *WorkflowHandler) CancelHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("execution id cannot be empty"), h.logger)
		return
	}

	result := h.gatewayUseCase.CancelExecution(c.Request.Context(), id)
	c.JSON(http.StatusOK, dto.MapResultToResponse(result))
}
