// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// CreateRecordRequest contains the document for a new record.
// The entity is extracted from the URL parameter, not the request body.
type CreateRecordRequest struct {
	Data map[string]any `json:"data"`
}

// Validate checks if the create record request is valid.
func (r *CreateRecordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Data,
			validation.Required,
		),
	)
}

// UpdateRecordRequest contains the fields to merge into an existing record.
type UpdateRecordRequest struct {
	Data map[string]any `json:"data"`
}

// Validate checks if the update record request is valid.
func (r *UpdateRecordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Data,
			validation.Required,
		),
	)
}
