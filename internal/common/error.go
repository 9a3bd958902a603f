// Package common defines shared constants and sentinel errors used across
// client layers of dataflow. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors for user-supplied input.
	ErrorValidation = errors.New("validation error")
)
