// Package usecase implements the business logic for the timeseries feature.
package usecase

import "errors"

var (
	// ErrReferentialIntegrity is returned when a batch of observations references
	// a stock that has not been durably created. The whole batch is rejected;
	// rows are never silently dropped.
	ErrReferentialIntegrity = errors.New("observation references a missing stock")
)
