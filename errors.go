package spikeview

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingChannels is returned when background features are requested
	// without an explicit channel subset.
	ErrMissingChannels = errors.New("spikeview: channel ids required for background features")

	// ErrClusterPairRequired is returned when a two-cluster comparison is
	// requested with a cluster count other than two.
	ErrClusterPairRequired = errors.New("spikeview: exactly two cluster ids required")

	// ErrInvalidInterval is returned for an empty or reversed time interval.
	ErrInvalidInterval = errors.New("spikeview: interval must satisfy start < end")

	// ErrInvalidBinning is returned when a correlogram is requested with a
	// non-positive bin or window size.
	ErrInvalidBinning = errors.New("spikeview: bin size and window size must be positive")
)

// ErrLengthMismatch indicates parallel argument slices of differing lengths.
type ErrLengthMismatch struct {
	Field string
	Want  int
	Got   int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("spikeview: %s has length %d, want %d", e.Field, e.Got, e.Want)
}
