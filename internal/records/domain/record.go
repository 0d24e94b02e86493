// Package domain defines the back-office record store models. Records are
// schema-less documents grouped by entity, used by agents and operators to
// share transaction, compliance and recruiting state.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Allowed record entities. The allowlist keeps the generic store from turning
// into an arbitrary table dump: every entity here maps to a back-office concern.
const (
	EntityTransactions      = "transactions"
	EntityComplianceReports = "compliance_reports"
	EntityCandidates        = "candidates"
	EntityCommunications    = "communications"
	EntityProperties        = "properties"
	EntityWorkflowRuns      = "workflow_runs"
)

// allowedEntities is the set of entities the store accepts.
var allowedEntities = map[string]struct{}{
	EntityTransactions:      {},
	EntityComplianceReports: {},
	EntityCandidates:        {},
	EntityCommunications:    {},
	EntityProperties:        {},
	EntityWorkflowRuns:      {},
}

// IsAllowedEntity reports whether the named entity is accepted by the store.
func IsAllowedEntity(entity string) bool {
	_, ok := allowedEntities[entity]
	return ok
}

// AllowedEntities returns the accepted entity names. The result is a copy.
func AllowedEntities() []string {
	return []string{
		EntityCandidates,
		EntityCommunications,
		EntityComplianceReports,
		EntityProperties,
		EntityTransactions,
		EntityWorkflowRuns,
	}
}

// Record is one schema-less document in the back-office store.
type Record struct {
	ID        uuid.UUID      `json:"id"`
	Entity    string         `json:"entity"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewRecord creates a record for the given entity with a time-ordered id.
func NewRecord(entity string, data map[string]any) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.Must(uuid.NewV7()),
		Entity:    entity,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
