package model

import "errors"

var (
	ErrSearchUnavailable     = errors.New("video search unavailable")
	ErrGenerationUnavailable = errors.New("text generation unavailable")
	ErrInvalidBudget         = errors.New("hours per week must be positive")
)
