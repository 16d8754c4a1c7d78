package command

import "github.com/learnpath/go-progressions/pkg/types"

var (
	// ErrCustomerIDRequired indicates a command lacks a customer id.
	ErrCustomerIDRequired = types.ErrCustomerIDRequired
	// ErrProgressionIDRequired indicates the patch command lacks a record id.
	ErrProgressionIDRequired = types.ErrProgressionIDRequired
	// ErrTouchpointRequired indicates the request context carried no touchpoint.
	ErrTouchpointRequired = types.ErrTouchpointRequired
	// ErrAPIURLRequired indicates the request context carried no API base URL.
	ErrAPIURLRequired = types.ErrAPIURLRequired
	// ErrProgressionRequired indicates a create was issued without a payload.
	ErrProgressionRequired = types.ErrProgressionRequired
)
