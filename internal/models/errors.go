package models

import "errors"

// Custom errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidConfig   = errors.New("invalid generation config")
	ErrInvalidLeg      = errors.New("invalid leg")
	ErrDuplicateKey    = errors.New("duplicate key violation")
	ErrTooFewLegs      = errors.New("combination requires at least two legs")
	ErrOddsUnavailable = errors.New("market odds unavailable")
)
