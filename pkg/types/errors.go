package types

import (
	"errors"
	"strings"
)

var (
	// ErrCustomerIDRequired indicates a customer identifier was omitted.
	ErrCustomerIDRequired = errors.New("go-progressions: customer id required")
	// ErrProgressionIDRequired indicates a progression identifier was omitted.
	ErrProgressionIDRequired = errors.New("go-progressions: progression id required")
	// ErrTouchpointRequired indicates the request carried no touchpoint id.
	ErrTouchpointRequired = errors.New("go-progressions: touchpoint id required")
	// ErrAPIURLRequired indicates the request carried no upstream API base URL.
	ErrAPIURLRequired = errors.New("go-progressions: api base url required")
	// ErrCustomerNotFound indicates the customer does not exist.
	ErrCustomerNotFound = errors.New("go-progressions: customer not found")
	// ErrCustomerReadOnly indicates the customer is terminated and rejects writes.
	ErrCustomerReadOnly = errors.New("go-progressions: customer is read only")
	// ErrProgressionExists indicates the customer already has a progression record.
	ErrProgressionExists = errors.New("go-progressions: progression already exists for customer")
	// ErrProgressionNotFound indicates no stored progression matched the lookup.
	ErrProgressionNotFound = errors.New("go-progressions: progression not found")
	// ErrProgressionRequired indicates a create was issued without a payload.
	ErrProgressionRequired = errors.New("go-progressions: progression payload required")
	// ErrMalformedDocument indicates the stored document is not parseable JSON.
	ErrMalformedDocument = errors.New("go-progressions: stored document is not valid json")
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("go-progressions: service not ready")
	// ErrMissingProgressionRepository occurs when no progression repository was supplied.
	ErrMissingProgressionRepository = errors.New("go-progressions: missing progression repository")
	// ErrMissingCustomerRepository occurs when no customer repository was supplied.
	ErrMissingCustomerRepository = errors.New("go-progressions: missing customer repository")
	// ErrMissingAuditRepository occurs when the audit feed query lacks storage.
	ErrMissingAuditRepository = errors.New("go-progressions: missing audit repository")
	// ErrMissingValidator occurs when a command lacks the validation engine.
	ErrMissingValidator = errors.New("go-progressions: missing validation engine")
	// ErrMissingMerger occurs when the patch command lacks the merge engine.
	ErrMissingMerger = errors.New("go-progressions: missing merge engine")
)

// Violation names a single business rule failure on a progression field.
type Violation struct {
	Field   string `json:"Field"`
	Message string `json:"Message"`
}

// ValidationError carries the full violation list so callers can fix every
// problem in one round trip.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError wraps one or more violations.
func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "go-progressions: validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "go-progressions: validation failed: " + strings.Join(parts, "; ")
}
