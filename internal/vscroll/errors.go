package vscroll

import "errors"

// Contract violations. These indicate caller bugs: they are returned from
// constructors and setters instead of being worked around. Bad data observed
// at event time never errors; it is sanitized and logged.
var (
	ErrNegativeCount    = errors.New("item count cannot be negative")
	ErrNilHeightFunc    = errors.New("height function cannot be nil")
	ErrInvalidHeight    = errors.New("height must be a positive finite number")
	ErrInvalidOverscan  = errors.New("overscan cannot be negative")
	ErrInvalidThreshold = errors.New("end-reached threshold must be within (0, 1]")
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")
)
