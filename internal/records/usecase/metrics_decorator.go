package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/impactrealty/backoffice/internal/metrics"
	recordsDomain "github.com/impactrealty/backoffice/internal/records/domain"
)

// recordUseCaseWithMetrics decorates RecordUseCase with metrics instrumentation.
type recordUseCaseWithMetrics struct {
	next    RecordUseCase
	metrics metrics.BusinessMetrics
}

// NewRecordUseCaseWithMetrics wraps a RecordUseCase with metrics recording.
func NewRecordUseCaseWithMetrics(useCase RecordUseCase, m metrics.BusinessMetrics) RecordUseCase {
	return &recordUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for record creation operations.
func (r *recordUseCaseWithMetrics) Create(
	ctx context.Context,
	entity string,
	data map[string]any,
) (*recordsDomain.Record, error) {
	start := time.Now()
	record, err := r.next.Create(ctx, entity, data)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "records", "record_create", status)
	r.metrics.RecordDuration(ctx, "records", "record_create", time.Since(start), status)

	return record, err
}

// Get records metrics for record retrieval operations.
func (r *recordUseCaseWithMetrics) Get(
	ctx context.Context,
	entity string,
	id uuid.UUID,
) (*recordsDomain.Record, error) {
	start := time.Now()
	record, err := r.next.Get(ctx, entity, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "records", "record_get", status)
	r.metrics.RecordDuration(ctx, "records", "record_get", time.Since(start), status)

	return record, err
}

// List records metrics for record list operations.
func (r *recordUseCaseWithMetrics) List(
	ctx context.Context,
	entity string,
	filter map[string]any,
	offset, limit int,
) ([]*recordsDomain.Record, error) {
	start := time.Now()
	records, err := r.next.List(ctx, entity, filter, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "records", "record_list", status)
	r.metrics.RecordDuration(ctx, "records", "record_list", time.Since(start), status)

	return records, err
}

// Update records metrics for record update operations.
func (r *recordUseCaseWithMetrics) Update(
	ctx context.Context,
	entity string,
	id uuid.UUID,
	data map[string]any,
) (*recordsDomain.Record, error) {
	start := time.Now()
	record, err := r.next.Update(ctx, entity, id, data)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "records", "record_update", status)
	r.metrics.RecordDuration(ctx, "records", "record_update", time.Since(start), status)

	return record, err
}

// Delete records metrics for record deletion operations.
func (r *recordUseCaseWithMetrics) Delete(ctx context.Context, entity string, id uuid.UUID) error {
	start := time.Now()
	err := r.next.Delete(ctx, entity, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "records", "record_delete", status)
	r.metrics.RecordDuration(ctx, "records", "record_delete", time.Since(start), status)

	return err
}
