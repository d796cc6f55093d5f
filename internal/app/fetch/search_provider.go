package fetch

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/app/rotation"
	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/domain/track"
)

// SearchSettings configure the cold-start search provider.
type SearchSettings struct {
	MaxQueries  int `mapstructure:"max_queries"`
	QueryLimit  int `mapstructure:"query_limit"`
	FloorOffset int `mapstructure:"floor_offset"`
}

// SearchProvider builds catalog search queries from the station's search
// terms. Used on cold start, and as the fallback when recommendations fail.
type SearchProvider struct {
	catalog  CatalogClient
	settings SearchSettings
	rng      *rand.Rand
	mu       sync.Mutex
}

// NewSearchProvider creates a search provider.
func NewSearchProvider(catalog CatalogClient, settings SearchSettings) (*SearchProvider, error) {
	if catalog == nil {
		return nil, errors.New("catalog client is required")
	}
	if settings.MaxQueries <= 0 {
		settings.MaxQueries = 3
	}
	if settings.QueryLimit <= 0 {
		settings.QueryLimit = 15
	}
	if settings.FloorOffset <= 0 {
		settings.FloorOffset = 15
	}
	return &SearchProvider{
		catalog:  catalog,
		settings: settings,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Name returns the provider name.
func (p *SearchProvider) Name() string { return "search" }

// Fetch samples station search terms into 2-3 queries, runs them
// concurrently, and merges the results deduplicated by track ID in
// first-seen order. Results below the popularity floor are dropped.
func (p *SearchProvider) Fetch(ctx context.Context, st *station.Profile, state *rotation.SelectionState) ([]track.Track, error) {
	queries := p.buildQueries(st, state)
	if len(queries) == 0 {
		return nil, errors.Newf("station %s has no usable search terms", st.ID)
	}

	// Fan out per query, fan in by query index so the merge order is
	// deterministic regardless of completion order.
	results := make([][]track.Track, len(queries))
	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex

	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			tracks, err := p.catalog.SearchTracks(ctx, q, p.settings.QueryLimit)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				zlog.Warn().Err(err).Str("query", q).Msg("search query failed")
				return
			}
			results[i] = tracks
		}(i, q)
	}
	wg.Wait()

	floor := st.PopularityRange.Min - p.settings.FloorOffset
	if floor < 0 {
		floor = 0
	}

	seen := make(map[string]bool)
	var merged []track.Track
	for _, batch := range results {
		for _, t := range batch {
			if seen[t.ID] || t.Popularity < floor {
				continue
			}
			seen[t.ID] = true
			merged = append(merged, t)
		}
	}

	if len(merged) == 0 && firstErr != nil {
		return nil, errors.Wrap(firstErr, "all search queries failed")
	}
	return merged, nil
}

// buildQueries samples 2-3 search terms. Terms that look like proper names
// become artist-scoped queries; the rest become genre queries bounded by the
// year window of the current rotation slot.
func (p *SearchProvider) buildQueries(st *station.Profile, state *rotation.SelectionState) []string {
	terms := append([]string(nil), st.SearchTerms...)
	if len(terms) == 0 {
		return nil
	}

	p.mu.Lock()
	p.rng.Shuffle(len(terms), func(i, j int) {
		terms[i], terms[j] = terms[j], terms[i]
	})
	count := 2 + p.rng.Intn(2)
	p.mu.Unlock()

	if count > p.settings.MaxQueries {
		count = p.settings.MaxQueries
	}
	if count > len(terms) {
		count = len(terms)
	}

	window := rotation.YearWindow(state.Clock().Slot(), st, time.Now())

	queries := make([]string, 0, count)
	for _, term := range terms[:count] {
		if looksLikeProperName(term) {
			queries = append(queries, fmt.Sprintf("artist:%q", term))
		} else {
			queries = append(queries, fmt.Sprintf("genre:%q year:%d-%d", term, window.Min, window.Max))
		}
	}
	return queries
}

// looksLikeProperName reports whether every word of the term starts with an
// uppercase letter, which marks it as an artist name rather than a genre.
func looksLikeProperName(term string) bool {
	words := strings.Fields(term)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
