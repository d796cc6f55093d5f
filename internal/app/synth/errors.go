package synth

import "github.com/cockroachdb/errors"

// Error taxonomy for the synthesis pipeline. Invalid input is rejected
// before any expensive work; timeouts and failures skip the spoken segment
// but never block track playback.
var (
	ErrInvalidInput     = errors.New("invalid synthesis input")
	ErrSynthesisTimeout = errors.New("synthesis worker timed out")
	ErrSynthesisFailure = errors.New("synthesis failed")
	ErrRateLimited      = errors.New("synthesis rate limited")
)
