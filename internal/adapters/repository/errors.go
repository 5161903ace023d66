package repository

import "errors"

// Sentinel kinds for table loading and access errors.
var (
	ErrFileNotFound  = errors.New("data file not found")
	ErrParse         = errors.New("data file parse failed")
	ErrMissingColumn = errors.New("missing column")
)
