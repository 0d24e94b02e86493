package domain

import (
	apperrors "github.com/impactrealty/backoffice/internal/errors"
)

// ErrUnknownEntity indicates the entity is not in the store's allowlist.
var ErrUnknownEntity = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown record entity")

// ErrRecordNotFound indicates no record exists with the given entity and id.
var ErrRecordNotFound = apperrors.Wrap(apperrors.ErrNotFound, "record not found")
