// Package http provides HTTP handlers for the back-office record store.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/impactrealty/backoffice/internal/httputil"
	recordsDomain "github.com/impactrealty/backoffice/internal/records/domain"
	"github.com/impactrealty/backoffice/internal/records/http/dto"
	recordsUseCase "github.com/impactrealty/backoffice/internal/records/usecase"
	customValidation "github.com/impactrealty/backoffice/internal/validation"
)

// RecordHandler handles HTTP requests for the record store.
type RecordHandler struct {
	recordUseCase recordsUseCase.RecordUseCase
	logger        *slog.Logger
}

// NewRecordHandler creates a new record handler with required dependencies.
func NewRecordHandler(recordUseCase recordsUseCase.RecordUseCase, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		recordUseCase: recordUseCase,
		logger:        logger,
	}
}

// EntitiesHandler lists the entities the store accepts.
// GET /api/v1/records
func (h *RecordHandler) EntitiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.EntityListResponse{
		Entities: recordsDomain.AllowedEntities(),
	})
}

// CreateHandler stores a new record under an entity.
// POST /api/v1/records/:entity
// Returns 201 Created with the stored record, or 422 for an unknown entity.
func (h *RecordHandler) CreateHandler(c *gin.Context) {
	entity := c.Param("entity")
	if err := customValidation.EntityName.Validate(entity); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.recordUseCase.Create(c.Request.Context(), entity, req.Data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecordToResponse(record))
}

// GetHandler retrieves one record.
// GET /api/v1/records/:entity/:id
// Returns 200 OK with the record, or 404 when it does not exist.
func (h *RecordHandler) GetHandler(c *gin.Context) {
	entity := c.Param("entity")

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid record ID format: must be a valid UUID"),
			h.logger)
		return
	}

	record, err := h.recordUseCase.Get(c.Request.Context(), entity, recordID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// ListHandler retrieves records for one entity with filtering and pagination.
// GET /api/v1/records/:entity?offset=0&limit=50&status=active
// Query parameters other than offset/limit are equality filters matched
// against the record data document. Returns 200 OK with the record list,
// newest first.
func (h *RecordHandler) ListHandler(c *gin.Context) {
	entity := c.Param("entity")

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter := make(map[string]any)
	for key, values := range c.Request.URL.Query() {
		if key == "offset" || key == "limit" || len(values) == 0 {
			continue
		}
		filter[key] = values[0]
	}

	records, err := h.recordUseCase.List(c.Request.Context(), entity, filter, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordsToListResponse(records))
}

// UpdateHandler merges fields into an existing record's data document.
// PATCH /api/v1/records/:entity/:id
// Returns 200 OK with the merged record, or 404 when it does not exist.
func (h *RecordHandler) UpdateHandler(c *gin.Context) {
	entity := c.Param("entity")

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid record ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.recordUseCase.Update(c.Request.Context(), entity, recordID, req.Data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// DeleteHandler removes one record.
// DELETE /api/v1/records/:entity/:id
// Returns 204 No Content, or 404 when the record does not exist.
func (h *RecordHandler) DeleteHandler(c *gin.Context) {
	entity := c.Param("entity")

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid record ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.recordUseCase.Delete(c.Request.Context(), entity, recordID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}
