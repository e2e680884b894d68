// Package usecase implements the business logic for the stocks feature.
package usecase

import "errors"

var (
	// ErrValidation is returned when a required field is empty on creation.
	// The caller gets it immediately; storage is left unchanged.
	ErrValidation = errors.New("required field is empty")
)
