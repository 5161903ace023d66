package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrObserveFailed = errors.New("metrics observe failed")
	ErrNotGathered   = errors.New("metric not gathered")
	ErrInvalidOption = errors.New("invalid metrics option")
)
