// Package repository implements record persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/impactrealty/backoffice/internal/database"
	apperrors "github.com/impactrealty/backoffice/internal/errors"
	recordsDomain "github.com/impactrealty/backoffice/internal/records/domain"
)

// PostgreSQLRecordRepository implements record persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRecordRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecordRepository creates a new PostgreSQL record repository.
func NewPostgreSQLRecordRepository(db *sql.DB) *PostgreSQLRecordRepository {
	return &PostgreSQLRecordRepository{db: db}
}

// Create inserts a new record into the PostgreSQL database.
func (p *PostgreSQLRecordRepository) Create(ctx context.Context, record *recordsDomain.Record) error {
	querier := database.GetTx(ctx, p.db)

	dataJSON, err := json.Marshal(record.Data)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record data")
	}

	query := `INSERT INTO records (id, entity, data, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err = querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.Entity,
		dataJSON,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create record")
	}

	return nil
}

// Get retrieves a record by entity and id. Returns ErrRecordNotFound when absent.
func (p *PostgreSQLRecordRepository) Get(
	ctx context.Context,
	entity string,
	id uuid.UUID,
) (*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, entity, data, created_at, updated_at
			  FROM records
			  WHERE entity = $1 AND id = $2`

	var record recordsDomain.Record
	var dataJSON []byte

	err := querier.QueryRowContext(ctx, query, entity, id).Scan(
		&record.ID,
		&record.Entity,
		&dataJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, recordsDomain.ErrRecordNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get record")
	}

	if dataJSON != nil {
		if err := json.Unmarshal(dataJSON, &record.Data); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal record data")
		}
	}

	return &record, nil
}

// List retrieves records for one entity ordered by ID descending (newest first)
// with pagination. The filter uses JSONB containment: only records whose data
// document contains every filter field are returned. Returns an empty slice if
// no records are found.
func (p *PostgreSQLRecordRepository) List(
	ctx context.Context,
	entity string,
	filter map[string]any,
	offset, limit int,
) ([]*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal record filter")
	}
	if filter == nil {
		filterJSON = []byte("{}")
	}

	// An empty filter object is contained in every data document.
	query := `SELECT id, entity, data, created_at, updated_at
			  FROM records
			  WHERE entity = $1 AND data @> $2::jsonb
			  ORDER BY id DESC
			  LIMIT $3 OFFSET $4`

	rows, err := querier.QueryContext(ctx, query, entity, filterJSON, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*recordsDomain.Record, 0)
	for rows.Next() {
		var record recordsDomain.Record
		var dataJSON []byte

		err := rows.Scan(
			&record.ID,
			&record.Entity,
			&dataJSON,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan record")
		}

		if dataJSON != nil {
			if err := json.Unmarshal(dataJSON, &record.Data); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal record data")
			}
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate records")
	}

	return records, nil
}

// Update replaces the data document of an existing record.
// Returns ErrRecordNotFound when the record does not exist.
func (p *PostgreSQLRecordRepository) Update(ctx context.Context, record *recordsDomain.Record) error {
	querier := database.GetTx(ctx, p.db)

	dataJSON, err := json.Marshal(record.Data)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record data")
	}

	query := `UPDATE records
			  SET data = $1, updated_at = $2
			  WHERE entity = $3 AND id = $4`

	result, err := querier.ExecContext(ctx, query, dataJSON, record.UpdatedAt, record.Entity, record.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update record")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return recordsDomain.ErrRecordNotFound
	}

	return nil
}

// Delete removes a record by entity and id.
// Returns ErrRecordNotFound when the record does not exist.
func (p *PostgreSQLRecordRepository) Delete(ctx context.Context, entity string, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM records WHERE entity = $1 AND id = $2`

	result, err := querier.ExecContext(ctx, query, entity, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete record")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read delete result")
	}
	if affected == 0 {
		return recordsDomain.ErrRecordNotFound
	}

	return nil
}
