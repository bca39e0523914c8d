package model

import "errors"

var (
	// ErrInvalidTopicCount indicates a requested rank of zero or less
	ErrInvalidTopicCount = errors.New("topic count must be positive")

	// ErrInvalidIterations indicates a non-positive iteration ceiling
	ErrInvalidIterations = errors.New("max iterations must be positive")
)
