package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/impactrealty/backoffice/internal/agent/http/dto"
	agentUseCase "github.com/impactrealty/backoffice/internal/agent/usecase"
	"github.com/impactrealty/backoffice/internal/httputil"
	customValidation "github.com/impactrealty/backoffice/internal/validation"
)

// SystemHandler handles HTTP requests for service-level status and the
// disconnected-mode switch.
type SystemHandler struct {
	gatewayUseCase agentUseCase.GatewayUseCase
	version        string
	logger         *slog.Logger
}

// NewSystemHandler creates a new system handler with required dependencies.
func NewSystemHandler(gatewayUseCase agentUseCase.GatewayUseCase, version string, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{
		gatewayUseCase: gatewayUseCase,
		version:        version,
		logger:         logger,
	}
}

// StatusHandler reports the operator-facing service status.
// GET /api/v1/status
func (h *SystemHandler) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SystemStatusResponse{
		Status:           "operational",
		Version:          h.version,
		DisconnectedMode: h.gatewayUseCase.DisconnectedMode(),
		Destinations:     h.gatewayUseCase.Destinations(),
	})
}

// GetDisconnectedModeHandler reports the disconnected-mode flag.
// GET /api/v1/system/disconnected-mode
func (h *SystemHandler) GetDisconnectedModeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.DisconnectedModeResponse{
		Enabled: h.gatewayUseCase.DisconnectedMode(),
	})
}

// SetDisconnectedModeHandler toggles the disconnected-mode flag.
// PUT /api/v1/system/disconnected-mode
func (h *SystemHandler) SetDisconnectedModeHandler(c *gin.Context) {
	var req dto.DisconnectedModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	h.gatewayUseCase.SetDisconnectedMode(*req.Enabled)
	c.JSON(http.StatusOK, dto.DisconnectedModeResponse{
		Enabled: h.gatewayUseCase.DisconnectedMode(),
	})
}
