package fetch

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"

	"github.com/mwindeman/djradio/internal/app/rotation"
	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/domain/track"
	"github.com/mwindeman/djradio/internal/infra/spotify"
)

// RecommendSettings configure the warm recommendation provider.
type RecommendSettings struct {
	Limit    int     `mapstructure:"limit"`
	RampCap  int     `mapstructure:"ramp_cap"`
	RampStep float64 `mapstructure:"ramp_step"`
}

// RecommendProvider derives recommendation targets from time of day and
// session depth, seeded by recently played tracks. Used once the session has
// play history.
type RecommendProvider struct {
	catalog  CatalogClient
	settings RecommendSettings
	now      func() time.Time
}

// NewRecommendProvider creates a recommendation provider.
func NewRecommendProvider(catalog CatalogClient, settings RecommendSettings) (*RecommendProvider, error) {
	if catalog == nil {
		return nil, errors.New("catalog client is required")
	}
	if settings.Limit <= 0 {
		settings.Limit = 20
	}
	if settings.RampCap <= 0 {
		settings.RampCap = 20
	}
	if settings.RampStep <= 0 {
		settings.RampStep = 0.01
	}
	return &RecommendProvider{
		catalog:  catalog,
		settings: settings,
		now:      time.Now,
	}, nil
}

// Name returns the provider name.
func (p *RecommendProvider) Name() string { return "recommend" }

// Fetch requests recommendations seeded by the 1-2 most recently played
// tracks, or the station's genre terms when the session has no tracks yet.
func (p *RecommendProvider) Fetch(ctx context.Context, st *station.Profile, state *rotation.SelectionState) ([]track.Track, error) {
	energy, valence := p.targets(state.PlayedCount())

	seeds := spotify.Seeds{TrackIDs: state.RecentTrackIDs(2)}
	if len(seeds.TrackIDs) == 0 {
		seeds.Genres = genreTerms(st, 2)
	}
	if len(seeds.TrackIDs) == 0 && len(seeds.Genres) == 0 {
		return nil, errors.Newf("station %s has no recommendation seeds", st.ID)
	}

	tracks, err := p.catalog.Recommendations(ctx, seeds, spotify.Targets{
		Energy:  &energy,
		Valence: &valence,
	}, p.settings.Limit)
	if err != nil {
		return nil, errors.Wrap(err, "recommendation fetch failed")
	}
	return tracks, nil
}

// targets derives energy/valence from the time of day (lower at night,
// higher midday) plus a session-depth ramp that caps out after RampCap
// tracks, encouraging a gradual build-up.
func (p *RecommendProvider) targets(depth int) (energy, valence float64) {
	switch hour := p.now().Hour(); {
	case hour >= 22 || hour < 6:
		energy, valence = 0.35, 0.45
	case hour < 10:
		energy, valence = 0.5, 0.55
	case hour < 16:
		energy, valence = 0.7, 0.65
	default:
		energy, valence = 0.6, 0.6
	}

	if depth > p.settings.RampCap {
		depth = p.settings.RampCap
	}
	energy += float64(depth) * p.settings.RampStep
	if energy > 1.0 {
		energy = 1.0
	}
	return energy, valence
}

// genreTerms returns up to n lowercase non-proper-name search terms usable as
// genre seeds.
func genreTerms(st *station.Profile, n int) []string {
	var out []string
	for _, term := range st.SearchTerms {
		words := strings.Fields(term)
		if len(words) == 0 {
			continue
		}
		if unicode.IsUpper([]rune(words[0])[0]) {
			continue
		}
		out = append(out, strings.ToLower(term))
		if len(out) == n {
			break
		}
	}
	return out
}
