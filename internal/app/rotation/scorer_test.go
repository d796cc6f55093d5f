package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mwindeman/djradio/internal/app/request"
	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/domain/track"
)

// fakeTaste is a static taste profile for scorer tests.
type fakeTaste struct {
	liked   map[string]bool
	skipped map[string]bool
}

func (f *fakeTaste) IsLiked(artist string) bool   { return f.liked[artist] }
func (f *fakeTaste) IsSkipped(artist string) bool { return f.skipped[artist] }

func testStation() *station.Profile {
	return &station.Profile{
		ID:              "test",
		Label:           "Test FM",
		YearRange:       station.Range{Min: 1970, Max: 2030},
		PopularityRange: station.Range{Min: 20, Max: 90},
		MinSongsBetween: 3,
	}
}

func TestScorer_Score(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	sc := NewDeterministicScorer()

	tests := []struct {
		name  string
		track track.Track
		taste *fakeTaste
		req   *request.DJRequest
		setup func(*SelectionState)
		want  float64
	}{
		{
			name: "Popularity and in-range only",
			// gold slot track on a current slot: no slot bonus
			track: track.Track{ID: "t1", Name: "Old", Artists: []string{"A"}, Popularity: 50, ReleaseYear: 1990},
			want:  0.5 + 0.1,
		},
		{
			name:  "Current slot bonus",
			track: track.Track{ID: "t2", Name: "Hit", Artists: []string{"A"}, Popularity: 80, ReleaseYear: 2025},
			want:  0.8 + 0.3 + 0.1,
		},
		{
			name:  "Liked artist bonus",
			track: track.Track{ID: "t3", Name: "Fav", Artists: []string{"Loved"}, Popularity: 50, ReleaseYear: 1990},
			taste: &fakeTaste{liked: map[string]bool{"Loved": true}},
			want:  0.5 + 0.1 + 0.2,
		},
		{
			name:  "Skipped artist malus",
			track: track.Track{ID: "t4", Name: "Nope", Artists: []string{"Hated"}, Popularity: 50, ReleaseYear: 1990},
			taste: &fakeTaste{skipped: map[string]bool{"Hated": true}},
			want:  0.5 + 0.1 - 0.3,
		},
		{
			name:  "Outside popularity range",
			track: track.Track{ID: "t5", Name: "Obscure", Artists: []string{"A"}, Popularity: 10, ReleaseYear: 1990},
			want:  0.1,
		},
		{
			name:  "Request match bonus",
			track: track.Track{ID: "t6", Name: "Eighties", Artists: []string{"A"}, Popularity: 50, ReleaseYear: 1985},
			req: &request.DJRequest{
				Type:       request.TypeDecade,
				YearRange:  &request.YearRange{Min: 1980, Max: 1989},
				TracksLeft: 3,
			},
			want: 0.5 + 0.1 + 0.4,
		},
		{
			name:  "Expired request ignored",
			track: track.Track{ID: "t7", Name: "Eighties", Artists: []string{"A"}, Popularity: 50, ReleaseYear: 1985},
			req: &request.DJRequest{
				Type:       request.TypeDecade,
				YearRange:  &request.YearRange{Min: 1980, Max: 1989},
				TracksLeft: 0,
			},
			want: 0.5 + 0.1,
		},
		{
			name:  "Discovery bonus for obscure track",
			track: track.Track{ID: "t8", Name: "Deep Cut", Artists: []string{"A"}, Popularity: 30, ReleaseYear: 1990},
			req: &request.DJRequest{
				Type:       request.TypeMixed,
				Discovery:  true,
				TracksLeft: 3,
			},
			// matches (no constraining dimensions) plus discovery bonus
			want: 0.3 + 0.1 + 0.4 + 0.15,
		},
		{
			name:  "Repeat malus counts secondary artists",
			track: track.Track{ID: "t10", Name: "Duet", Artists: []string{"Fresh", "Repeat"}, Popularity: 50, ReleaseYear: 1990},
			setup: func(s *SelectionState) {
				s.artistPlays["Repeat"] = 2
			},
			want: 0.5 + 0.1 - 0.2,
		},
		{
			name:  "Repeat artist malus capped",
			track: track.Track{ID: "t9", Name: "Again", Artists: []string{"Repeat"}, Popularity: 50, ReleaseYear: 1990},
			setup: func(s *SelectionState) {
				for i := 0; i < 6; i++ {
					s.artistPlays["Repeat"]++
				}
			},
			want: 0.5 + 0.1 - 0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewSelectionState("test")
			if tt.setup != nil {
				tt.setup(state)
			}
			var taste TasteReader
			if tt.taste != nil {
				taste = tt.taste
			}
			got := sc.Score(&tt.track, testStation(), state, taste, tt.req, now)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScorer_GoldSlotPrefersOldTrack(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	sc := NewDeterministicScorer()
	st := testStation()

	state := NewSelectionState("test")
	// Advance to the first gold slot.
	for state.Clock().Slot() != SlotGold {
		state.Clock().Advance()
	}

	oldie := track.Track{ID: "old", Name: "Classic", Artists: []string{"A"}, Popularity: 55, ReleaseYear: 1985}
	fresh := track.Track{ID: "new", Name: "Chart", Artists: []string{"B"}, Popularity: 70, ReleaseYear: 2025}

	oldScore := sc.Score(&oldie, st, state, nil, nil, now)
	freshScore := sc.Score(&fresh, st, state, nil, nil, now)

	assert.Greater(t, oldScore, freshScore,
		"on a gold slot the slot bonus should outweigh a moderate popularity gap")
}

func TestScorer_JitterBounded(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	st := testStation()
	state := NewSelectionState("test")
	tr := track.Track{ID: "t", Name: "X", Artists: []string{"A"}, Popularity: 50, ReleaseYear: 1990}

	base := NewDeterministicScorer().Score(&tr, st, state, nil, nil, now)
	sc := NewScorer(42)
	for i := 0; i < 50; i++ {
		got := sc.Score(&tr, st, state, nil, nil, now)
		assert.InDelta(t, base, got, jitterSpread+1e-9)
	}
}
