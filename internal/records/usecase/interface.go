// Package usecase implements the back-office record store operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	recordsDomain "github.com/impactrealty/backoffice/internal/records/domain"
)

// RecordRepository defines record persistence operations.
type RecordRepository interface {
	// Create inserts a new record.
	Create(ctx context.Context, record *recordsDomain.Record) error

	// Get retrieves a record by entity and id, or ErrRecordNotFound.
	Get(ctx context.Context, entity string, id uuid.UUID) (*recordsDomain.Record, error)

	// List retrieves records for one entity with pagination, newest first.
	// Records whose data document does not contain every filter field are
	// excluded; a nil or empty filter matches everything.
	List(ctx context.Context, entity string, filter map[string]any, offset, limit int) ([]*recordsDomain.Record, error)

	// Update replaces the data document of an existing record.
	Update(ctx context.Context, record *recordsDomain.Record) error

	// Delete removes a record by entity and id.
	Delete(ctx context.Context, entity string, id uuid.UUID) error
}

// RecordUseCase coordinates record store operations. Every operation rejects
// entities outside the allowlist with ErrUnknownEntity.
type RecordUseCase interface {
	// Create stores a new record under the given entity.
	Create(ctx context.Context, entity string, data map[string]any) (*recordsDomain.Record, error)

	// Get retrieves one record.
	Get(ctx context.Context, entity string, id uuid.UUID) (*recordsDomain.Record, error)

	// List retrieves records for one entity with equality filtering and pagination.
	List(ctx context.Context, entity string, filter map[string]any, offset, limit int) ([]*recordsDomain.Record, error)

	// Update merges the given fields into an existing record's data document.
	Update(ctx context.Context, entity string, id uuid.UUID, data map[string]any) (*recordsDomain.Record, error)

	// Delete removes one record.
	Delete(ctx context.Context, entity string, id uuid.UUID) error
}
