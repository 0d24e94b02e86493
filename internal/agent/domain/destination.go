// Package domain defines the agent gateway domain models: destinations,
// invocations and health states.
//
// A destination is a logical backend agent service (e.g., "compliance",
// "recruiting") reachable at a configured network address. Invocations are
// single request/response cycles directed at one destination and are always
// traceable through a correlation id.
package domain

import (
	"time"
)

// Well-known destination names. The supervisor destination is the single
// orchestration endpoint that named workflows are routed through.
const (
	DestinationSupervisor    = "supervisor"
	DestinationCompliance    = "compliance"
	DestinationRecruiting    = "recruiting"
	DestinationInvestments   = "investments"
	DestinationCommunication = "communication"
	DestinationAnalytics     = "analytics"
)

// DestinationConfig holds the routing configuration for one agent destination.
// Entries are immutable after creation; the registry replaces whole entries on
// reconfiguration.
type DestinationConfig struct {
	Name        string        `json:"name"`         // Unique logical destination name
	Address     string        `json:"address"`      // Base URL accepting invocations
	Timeout     time.Duration `json:"timeout"`      // Per-invocation response timeout
	RetryBudget int           `json:"retry_budget"` // Retries before synthetic fallback
}

// DestinationPatch carries a partial destination reconfiguration.
// Nil fields are left untouched on the existing entry.
type DestinationPatch struct {
	Address     *string        `json:"address,omitempty"`
	Timeout     *time.Duration `json:"timeout,omitempty"`
	RetryBudget *int           `json:"retry_budget,omitempty"`
}

// Apply merges the patch into a copy of the given config and returns it.
// Fields not present in the patch keep their existing values.
func (p DestinationPatch) Apply(cfg DestinationConfig) DestinationConfig {
	if p.Address != nil {
		cfg.Address = *p.Address
	}
	if p.Timeout != nil {
		cfg.Timeout = *p.Timeout
	}
	if p.RetryBudget != nil {
		cfg.RetryBudget = *p.RetryBudget
	}
	return cfg
}

// DestinationHealth describes the reachability of one destination at the time
// of a health query. Health is recomputed on every query and never cached.
type DestinationHealth struct {
	Destination string  `json:"destination"`
	Reachable   bool    `json:"reachable"`
	Detail      Payload `json:"detail,omitempty"`
}
