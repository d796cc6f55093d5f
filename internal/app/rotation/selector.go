package rotation

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/app/request"
	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/domain/track"
)

// ErrNoEligibleCandidate indicates selection was exhausted after relaxation
// and a forced refetch. The caller must handle "nothing to play".
var ErrNoEligibleCandidate = errors.New("no eligible candidate")

// RefetchFunc fetches a fresh batch of candidates when the pool is exhausted.
type RefetchFunc func(ctx context.Context) ([]track.Track, error)

// Selector picks the next track from the candidate pool.
type Selector struct {
	rules  *RuleChain
	scorer *Scorer
}

// NewSelector creates a selector with the default eligibility chain.
func NewSelector(scorer *Scorer) *Selector {
	return &Selector{
		rules:  DefaultRules(),
		scorer: scorer,
	}
}

// Select picks the highest-scoring eligible candidate from the pool and
// applies the selection side effects. When no candidate passes the full
// eligibility chain it relaxes to "not already played" only, and as a last
// resort forces a refetch and takes the first fresh candidate unscored.
func (s *Selector) Select(ctx context.Context, st *station.Profile, state *SelectionState, taste TasteReader, req *request.DJRequest, refetch RefetchFunc) (*track.Track, error) {
	now := time.Now()

	eligible := s.filterPool(state, func(t *track.Track) bool {
		return s.rules.Eligible(t, state)
	})

	if len(eligible) == 0 {
		// Relaxation step: drop cooldown and duration constraints.
		zlog.Debug().Str("station", st.ID).Msg("no eligible candidates, relaxing to not-played only")
		eligible = s.filterPool(state, func(t *track.Track) bool {
			return !state.Played(t.ID)
		})
	}

	if len(eligible) > 0 {
		// Copy before MarkSelected: removing the track shifts the pool's
		// backing array under the selected pointer.
		chosen := *s.best(eligible, st, state, taste, req, now)
		state.MarkSelected(&chosen)
		return &chosen, nil
	}

	// Last resort: force a full refetch and take the first fresh candidate.
	zlog.Warn().Str("station", st.ID).Msg("candidate pool exhausted, forcing refetch")
	fresh, err := refetch(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "forced refetch failed")
	}
	for i := range fresh {
		if !state.Played(fresh[i].ID) {
			chosen := fresh[i]
			state.AddToPool(fresh)
			state.MarkSelected(&chosen)
			return &chosen, nil
		}
	}

	return nil, ErrNoEligibleCandidate
}

// filterPool returns pointers into the pool for candidates passing the
// predicate, preserving pool order.
func (s *Selector) filterPool(state *SelectionState, keep func(*track.Track) bool) []*track.Track {
	pool := state.Pool()
	out := make([]*track.Track, 0, len(pool))
	for i := range pool {
		if keep(&pool[i]) {
			out = append(out, &pool[i])
		}
	}
	return out
}

// best returns the highest-scoring candidate. Ties keep the earlier
// candidate, so ordering stays stable beyond the jitter term.
func (s *Selector) best(candidates []*track.Track, st *station.Profile, state *SelectionState, taste TasteReader, req *request.DJRequest, now time.Time) *track.Track {
	chosen := candidates[0]
	bestScore := s.scorer.Score(chosen, st, state, taste, req, now)
	for _, c := range candidates[1:] {
		if score := s.scorer.Score(c, st, state, taste, req, now); score > bestScore {
			chosen = c
			bestScore = score
		}
	}
	zlog.Debug().
		Str("track", chosen.Name).
		Str("artist", chosen.PrimaryArtist()).
		Float64("score", bestScore).
		Str("slot", string(state.Clock().Slot())).
		Msg("selected track")
	return chosen
}
