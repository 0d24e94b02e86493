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

// MySQLRecordRepository implements record persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLRecordRepository struct {
	db *sql.DB
}

// NewMySQLRecordRepository creates a new MySQL record repository.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}

// Create inserts a new record into the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLRecordRepository) Create(ctx context.Context, record *recordsDomain.Record) error {
	querier := database.GetTx(ctx, m.db)

	dataJSON, err := json.Marshal(record.Data)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record data")
	}

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record id")
	}

	query := `INSERT INTO records (id, entity, data, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLRecordRepository) Get(
	ctx context.Context,
	entity string,
	id uuid.UUID,
) (*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal record id")
	}

	query := `SELECT id, entity, data, created_at, updated_at
			  FROM records
			  WHERE entity = ? AND id = ?`

	var record recordsDomain.Record
	var rawID []byte
	var dataJSON []byte

	err = querier.QueryRowContext(ctx, query, entity, idBytes).Scan(
		&rawID,
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

	if err := record.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record id")
	}

	if dataJSON != nil {
		if err := json.Unmarshal(dataJSON, &record.Data); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal record data")
		}
	}

	return &record, nil
}

// List retrieves records for one entity ordered by ID descending (newest first)
// with pagination. The filter uses JSON containment: only records whose data
// document contains every filter field are returned. Returns an empty slice if
// no records are found.
func (m *MySQLRecordRepository) List(
	ctx context.Context,
	entity string,
	filter map[string]any,
	offset, limit int,
) ([]*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

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
			  WHERE entity = ? AND JSON_CONTAINS(data, ?)
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

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
		var rawID []byte
		var dataJSON []byte

		err := rows.Scan(
			&rawID,
			&record.Entity,
			&dataJSON,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan record")
		}

		if err := record.ID.UnmarshalBinary(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal record id")
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
func (m *MySQLRecordRepository) Update(ctx context.Context, record *recordsDomain.Record) error {
	querier := database.GetTx(ctx, m.db)

	dataJSON, err := json.Marshal(record.Data)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record data")
	}

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record id")
	}

	query := `UPDATE records
			  SET data = ?, updated_at = ?
			  WHERE entity = ? AND id = ?`

	result, err := querier.ExecContext(ctx, query, dataJSON, record.UpdatedAt, record.Entity, id)
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
func (m *MySQLRecordRepository) Delete(ctx context.Context, entity string, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record id")
	}

	query := `DELETE FROM records WHERE entity = ? AND id = ?`

	result, err := querier.ExecContext(ctx, query, entity, idBytes)
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
