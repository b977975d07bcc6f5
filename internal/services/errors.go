package services

import "errors"

// Service-level errors. Handlers map these onto HTTP problem responses.
var (
	ErrIndicatorNotFound = errors.New("indicator not found")
	ErrGeographyNotFound = errors.New("geography not found")
	ErrNoIndicatorsFound = errors.New("no indicators found")
	ErrInvalidInput      = errors.New("invalid input")
)
