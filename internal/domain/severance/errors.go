package severance

import "errors"

var (
	ErrInvalidDateRange       = errors.New("termination date must be after hire date")
	ErrInvalidSalary          = errors.New("daily salary must be positive")
	ErrUnknownTerminationType = errors.New("unknown termination type")
	ErrCalculationNotFound    = errors.New("severance calculation not found")
)
