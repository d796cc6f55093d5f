package fetch

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/app/rotation"
	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/domain/track"
	"github.com/mwindeman/djradio/internal/infra/spotify"
)

// Fetcher selects between the warm recommendation path and the cold-start
// search path and keeps the session's candidate pool topped up.
type Fetcher struct {
	search          *SearchProvider
	recommend       *RecommendProvider
	catalog         CatalogClient
	refillThreshold int
}

// NewFetcher creates a fetcher over the given providers.
func NewFetcher(catalog CatalogClient, search *SearchProvider, recommend *RecommendProvider, refillThreshold int) *Fetcher {
	if refillThreshold <= 0 {
		refillThreshold = 5
	}
	return &Fetcher{
		search:          search,
		recommend:       recommend,
		catalog:         catalog,
		refillThreshold: refillThreshold,
	}
}

// FetchCandidates pulls a fresh batch of candidates. With play history the
// recommendation path runs first and falls back to search on failure; a cold
// session goes straight to search. Auth failures always surface.
func (f *Fetcher) FetchCandidates(ctx context.Context, st *station.Profile, state *rotation.SelectionState) ([]track.Track, error) {
	var tracks []track.Track
	var err error

	if state.PlayedCount() > 0 && f.recommend != nil {
		tracks, err = f.recommend.Fetch(ctx, st, state)
		if err != nil {
			if errors.Is(err, spotify.ErrAuthExpired) {
				return nil, err
			}
			zlog.Warn().Err(err).Str("station", st.ID).Msg("recommendation fetch failed, falling back to search")
			tracks, err = f.search.Fetch(ctx, st, state)
		}
	} else {
		tracks, err = f.search.Fetch(ctx, st, state)
	}
	if err != nil {
		return nil, err
	}

	// Energy/valence feed mood requests and scoring; a features outage is
	// not worth failing the fetch over, but a dead token is.
	if ferr := f.catalog.EnrichAudioFeatures(ctx, tracks); ferr != nil {
		if errors.Is(ferr, spotify.ErrAuthExpired) {
			return nil, ferr
		}
		zlog.Warn().Err(ferr).Msg("audio feature enrichment failed")
	}

	zlog.Debug().Int("count", len(tracks)).Str("station", st.ID).Msg("fetched candidates")
	return tracks, nil
}

// EnsurePool refills the session pool when it drops below the refill
// threshold.
func (f *Fetcher) EnsurePool(ctx context.Context, st *station.Profile, state *rotation.SelectionState) error {
	if state.PoolSize() >= f.refillThreshold {
		return nil
	}
	tracks, err := f.FetchCandidates(ctx, st, state)
	if err != nil {
		return err
	}
	state.AddToPool(tracks)
	return nil
}
