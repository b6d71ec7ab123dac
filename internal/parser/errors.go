package parser

import "errors"

var (
	// ErrInvalidInput is returned when the transcript is missing or is not text.
	ErrInvalidInput = errors.New("invalid conversation text provided")

	// ErrInternal wraps a failure inside extraction itself. It indicates a bug.
	ErrInternal = errors.New("failed to parse conversation")
)
