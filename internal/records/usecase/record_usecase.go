package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/impactrealty/backoffice/internal/database"
	recordsDomain "github.com/impactrealty/backoffice/internal/records/domain"
)

// recordUseCase implements RecordUseCase.
type recordUseCase struct {
	txManager  database.TxManager
	repository RecordRepository
}

// NewRecordUseCase creates a new record use case with required dependencies.
func NewRecordUseCase(txManager database.TxManager, repository RecordRepository) RecordUseCase {
	return &recordUseCase{
		txManager:  txManager,
		repository: repository,
	}
}

// Create stores a new record under the given entity.
func (u *recordUseCase) Create(
	ctx context.Context,
	entity string,
	data map[string]any,
) (*recordsDomain.Record, error) {
	if !recordsDomain.IsAllowedEntity(entity) {
		return nil, recordsDomain.ErrUnknownEntity
	}

	record := recordsDomain.NewRecord(entity, data)
	if err := u.repository.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Get retrieves one record.
func (u *recordUseCase) Get(ctx context.Context, entity string, id uuid.UUID) (*recordsDomain.Record, error) {
	if !recordsDomain.IsAllowedEntity(entity) {
		return nil, recordsDomain.ErrUnknownEntity
	}

	return u.repository.Get(ctx, entity, id)
}

// List retrieves records for one entity with equality filtering and pagination.
func (u *recordUseCase) List(
	ctx context.Context,
	entity string,
	filter map[string]any,
	offset, limit int,
) ([]*recordsDomain.Record, error) {
	if !recordsDomain.IsAllowedEntity(entity) {
		return nil, recordsDomain.ErrUnknownEntity
	}

	return u.repository.List(ctx, entity, filter, offset, limit)
}

// Update merges the given fields into an existing record's data document.
// The read-merge-write runs in a transaction so concurrent updates cannot
// interleave partial merges.
func (u *recordUseCase) Update(
	ctx context.Context,
	entity string,
	id uuid.UUID,
	data map[string]any,
) (*recordsDomain.Record, error) {
	if !recordsDomain.IsAllowedEntity(entity) {
		return nil, recordsDomain.ErrUnknownEntity
	}

	var updated *recordsDomain.Record
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := u.repository.Get(ctx, entity, id)
		if err != nil {
			return err
		}

		if record.Data == nil {
			record.Data = make(map[string]any, len(data))
		}
		for key, value := range data {
			record.Data[key] = value
		}
		record.UpdatedAt = time.Now().UTC()

		if err := u.repository.Update(ctx, record); err != nil {
			return err
		}

		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes one record.
func (u *recordUseCase) Delete(ctx context.Context, entity string, id uuid.UUID) error {
	if !recordsDomain.IsAllowedEntity(entity) {
		return recordsDomain.ErrUnknownEntity
	}

	return u.repository.Delete(ctx, entity, id)
}
