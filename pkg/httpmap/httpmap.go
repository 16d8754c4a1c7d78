// Package httpmap maps command outcomes and errors to the HTTP status
// contract for the learning progression endpoints. Hosts that mount their own
// transport call these helpers instead of re-deriving the table.
package httpmap

import (
	"errors"
	"net/http"

	"github.com/learnpath/go-progressions/pkg/types"
)

// StatusForPatch returns the status code for a patch invocation. Several
// distinct outcomes (no-op patch, missing record, unconfirmed replace)
// deliberately collapse to 204 for compatibility with existing callers.
func StatusForPatch(result types.PatchResult, err error) int {
	if err != nil {
		return StatusForError(err)
	}
	switch result.Outcome {
	case types.PatchOutcomeUpdated:
		return http.StatusOK
	case types.PatchOutcomeNoop, types.PatchOutcomeNotFound, types.PatchOutcomeNotReplaced:
		return http.StatusNoContent
	}
	return http.StatusInternalServerError
}

// StatusForCreate returns the status code for a create invocation.
func StatusForCreate(err error) int {
	if err == nil {
		return http.StatusCreated
	}
	if errors.Is(err, types.ErrProgressionExists) {
		return http.StatusConflict
	}
	return StatusForError(err)
}

// StatusForQuery returns the status code for read paths. A missing record
// yields 204 rather than 404, matching the write-side conflation.
func StatusForQuery(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, types.ErrProgressionNotFound) {
		return http.StatusNoContent
	}
	return StatusForError(err)
}

// StatusForError maps gate failures and validation errors shared by every
// operation.
func StatusForError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var validation *types.ValidationError
	if errors.As(err, &validation) {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, types.ErrCustomerReadOnly):
		return http.StatusForbidden
	case errors.Is(err, types.ErrCustomerNotFound),
		errors.Is(err, types.ErrCustomerIDRequired),
		errors.Is(err, types.ErrProgressionIDRequired),
		errors.Is(err, types.ErrTouchpointRequired),
		errors.Is(err, types.ErrAPIURLRequired),
		errors.Is(err, types.ErrProgressionRequired):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrProgressionNotFound):
		return http.StatusNoContent
	}
	return http.StatusInternalServerError
}
