// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
	customValidation "github.com/impactrealty/backoffice/internal/validation"
)

// InvokeRequest contains the parameters for a single agent invocation.
// The destination is extracted from the URL parameter, not the request body.
type InvokeRequest struct {
	Payload       agentDomain.Payload `json:"payload"`
	CorrelationID string              `json:"correlation_id"`
}

// Validate checks if the invoke request is valid.
func (r *InvokeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CorrelationID, validation.When(r.CorrelationID != "", customValidation.NoWhitespace)),
	)
}

// BatchInvokeItem is one member of a batch invocation request.
type BatchInvokeItem struct {
	Destination   string              `json:"destination"`
	Payload       agentDomain.Payload `json:"payload"`
	CorrelationID string              `json:"correlation_id"`
}

// Validate checks if the batch item is valid.
func (r BatchInvokeItem) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Destination, validation.Required, customValidation.DestinationName),
	)
}

// BatchInvokeRequest contains the members of a batch invocation.
type BatchInvokeRequest struct {
	Requests []BatchInvokeItem `json:"requests"`
}

// Validate checks if the batch invoke request is valid.
func (r *BatchInvokeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Requests, validation.Required, validation.Length(1, 50)),
	)
}

// ExecuteWorkflowRequest contains the parameters for running a named workflow.
type ExecuteWorkflowRequest struct {
	WorkflowName string              `json:"workflow_name"`
	Params       agentDomain.Payload `json:"params"`
}

// Validate checks if the execute workflow request is valid.
func (r *ExecuteWorkflowRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.WorkflowName, validation.Required, customValidation.NotBlank),
	)
}

// ReconfigureDestinationRequest contains the partial reconfiguration of a
// destination. Absent fields leave the current values untouched.
type ReconfigureDestinationRequest struct {
	Address        *string `json:"address"`
	TimeoutSeconds *int    `json:"timeout_seconds"`
	RetryBudget    *int    `json:"retry_budget"`
}

// Validate checks if the reconfigure request is valid.
func (r *ReconfigureDestinationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Address, validation.When(r.Address != nil, customValidation.HTTPAddress)),
		validation.Field(&r.TimeoutSeconds, validation.When(r.TimeoutSeconds != nil, validation.Min(1))),
		validation.Field(&r.RetryBudget, validation.When(r.RetryBudget != nil, validation.Min(0))),
	)
}

// DisconnectedModeRequest toggles the process-wide disconnected flag.
type DisconnectedModeRequest struct {
	Enabled *bool `json:"enabled"`
}

// Validate checks if the disconnected mode request is valid.
func (r *DisconnectedModeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Enabled, validation.NotNil),
	)
}
