// Package fetch pulls track candidates from the catalog API.
package fetch

import (
	"context"

	"github.com/mwindeman/djradio/internal/app/rotation"
	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/domain/track"
	"github.com/mwindeman/djradio/internal/infra/spotify"
)

// CatalogClient defines the catalog operations the fetch providers need.
type CatalogClient interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]track.Track, error)
	Recommendations(ctx context.Context, seeds spotify.Seeds, targets spotify.Targets, limit int) ([]track.Track, error)
	EnrichAudioFeatures(ctx context.Context, tracks []track.Track) error
}

// Provider is a single candidate-provision strategy.
type Provider interface {
	// Fetch retrieves candidates for the station given the session state.
	Fetch(ctx context.Context, st *station.Profile, state *rotation.SelectionState) ([]track.Track, error)
	// Name returns the provider name (used in config).
	Name() string
}
