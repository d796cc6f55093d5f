// Package session runs a listener's radio session: track turns, DJ breaks,
// requests, and feedback.
package session

import (
	"context"

	"github.com/mwindeman/djradio/internal/app/synth"
)

// Weather is a current-conditions snapshot for weather segments.
type Weather struct {
	Summary string
	TempC   float64
}

// WeatherSource provides current weather. A nil source disables weather
// segments.
type WeatherSource interface {
	Current(ctx context.Context) (Weather, error)
}

// NewsSource provides recent headlines. A nil source disables news segments.
type NewsSource interface {
	Headlines(ctx context.Context, max int) ([]string, error)
}

// Synthesizer turns DJ script text into audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, req synth.Request) (*synth.Result, error)
}
