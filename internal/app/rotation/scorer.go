package rotation

import (
	"math/rand"
	"time"

	"github.com/mwindeman/djradio/internal/app/request"
	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/domain/track"
)

// Scoring term constants. The score is additive and deliberately unclamped:
// it can exceed 1.0 or go negative, and relative ranking depends on that.
const (
	likedArtistBonus    = 0.2
	skippedArtistMalus  = -0.3
	repeatArtistMalus   = -0.1
	repeatArtistFloor   = -0.4
	inRangeBonus        = 0.1
	jitterSpread        = 0.1
	requestMatchBonus   = 0.4
	discoveryFreshBonus = 0.15
)

// TasteReader exposes the taste profile lookups the scorer needs.
type TasteReader interface {
	IsLiked(artist string) bool
	IsSkipped(artist string) bool
}

// Scorer ranks eligible candidates.
type Scorer struct {
	rng    *rand.Rand
	jitter bool
}

// NewScorer creates a scorer seeded for jitter.
func NewScorer(seed int64) *Scorer {
	return &Scorer{rng: rand.New(rand.NewSource(seed)), jitter: true}
}

// NewDeterministicScorer creates a scorer without the jitter term.
func NewDeterministicScorer() *Scorer {
	return &Scorer{rng: rand.New(rand.NewSource(0)), jitter: false}
}

// Score computes the additive score for a candidate.
func (sc *Scorer) Score(t *track.Track, st *station.Profile, state *SelectionState, taste TasteReader, req *request.DJRequest, now time.Time) float64 {
	score := float64(t.Popularity) / 100.0

	age := t.Age(now)
	score += slotBonus(state.Clock().Slot(), age, t.Popularity)

	if taste != nil {
		for _, a := range t.Artists {
			if taste.IsLiked(a) {
				score += likedArtistBonus
			}
			if taste.IsSkipped(a) {
				score += skippedArtistMalus
			}
		}
	}

	// Every credited artist counts toward the diminishing-returns penalty,
	// so a collaboration cannot dodge it through a fresh primary artist.
	repeat := 0.0
	for _, a := range t.Artists {
		repeat += repeatArtistMalus * float64(state.ArtistPlays(a))
	}
	if repeat < repeatArtistFloor {
		repeat = repeatArtistFloor
	}
	score += repeat

	if st.PopularityRange.Contains(t.Popularity) {
		score += inRangeBonus
	}

	if req != nil && !req.Expired() {
		if req.Matches(t) {
			score += requestMatchBonus
		}
		if req.Discovery && t.Popularity < 50 {
			score += discoveryFreshBonus
		}
	}

	if sc.jitter {
		score += sc.rng.Float64()*2*jitterSpread - jitterSpread
	}

	return score
}
