package rotation

import (
	"github.com/mwindeman/djradio/internal/domain/track"
)

// RecentArtistWindow is the artist cooldown window size.
const RecentArtistWindow = 6

// SelectionState is the mutable per-session selection context. It is owned by
// a single session engine and must not be shared between sessions.
type SelectionState struct {
	stationID     string
	played        map[string]bool
	playedOrder   []string
	recentArtists []string
	artistPlays   map[string]int
	clock         Clock
	pool          []track.Track
}

// NewSelectionState creates selection state bound to a station.
func NewSelectionState(stationID string) *SelectionState {
	return &SelectionState{
		stationID:   stationID,
		played:      make(map[string]bool),
		artistPlays: make(map[string]int),
	}
}

// StationID returns the station this state was created for.
func (s *SelectionState) StationID() string {
	return s.stationID
}

// Reset clears all selection state and rebinds it to a station.
// Called on station change.
func (s *SelectionState) Reset(stationID string) {
	s.stationID = stationID
	s.played = make(map[string]bool)
	s.playedOrder = nil
	s.recentArtists = nil
	s.artistPlays = make(map[string]int)
	s.clock.Reset()
	s.pool = nil
}

// Clock returns the rotation clock.
func (s *SelectionState) Clock() *Clock {
	return &s.clock
}

// Played reports whether the track ID was already selected this session.
func (s *SelectionState) Played(trackID string) bool {
	return s.played[trackID]
}

// PlayedCount returns the number of tracks selected this session.
func (s *SelectionState) PlayedCount() int {
	return len(s.playedOrder)
}

// RecentTrackIDs returns up to n most recently selected track IDs,
// newest first.
func (s *SelectionState) RecentTrackIDs(n int) []string {
	out := make([]string, 0, n)
	for i := len(s.playedOrder) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.playedOrder[i])
	}
	return out
}

// RecentArtists returns up to n artists from the cooldown ring, newest first.
func (s *SelectionState) RecentArtists(n int) []string {
	out := make([]string, 0, n)
	for i := len(s.recentArtists) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.recentArtists[i])
	}
	return out
}

// InCooldown reports whether the artist is inside the recent-artist window.
func (s *SelectionState) InCooldown(artist string) bool {
	for _, a := range s.recentArtists {
		if a == artist {
			return true
		}
	}
	return false
}

// ArtistPlays returns how many tracks by the artist were selected this
// session.
func (s *SelectionState) ArtistPlays(artist string) int {
	return s.artistPlays[artist]
}

// MarkSelected applies the selection side effects for the chosen track:
// mark played, push artists into the cooldown ring, bump play counts, advance
// the rotation clock, and drop the track from the pool.
func (s *SelectionState) MarkSelected(t *track.Track) {
	s.played[t.ID] = true
	s.playedOrder = append(s.playedOrder, t.ID)
	for _, a := range t.Artists {
		s.recentArtists = append(s.recentArtists, a)
	}
	if over := len(s.recentArtists) - RecentArtistWindow; over > 0 {
		s.recentArtists = s.recentArtists[over:]
	}
	for _, a := range t.Artists {
		s.artistPlays[a]++
	}
	s.clock.Advance()
	s.RemoveFromPool(t.ID)
}

// Pool returns the current candidate pool.
func (s *SelectionState) Pool() []track.Track {
	return s.pool
}

// PoolSize returns the number of pooled candidates.
func (s *SelectionState) PoolSize() int {
	return len(s.pool)
}

// AddToPool appends candidates, skipping IDs already pooled or played.
func (s *SelectionState) AddToPool(tracks []track.Track) {
	seen := make(map[string]bool, len(s.pool))
	for _, t := range s.pool {
		seen[t.ID] = true
	}
	for _, t := range tracks {
		if seen[t.ID] || s.played[t.ID] {
			continue
		}
		seen[t.ID] = true
		s.pool = append(s.pool, t)
	}
}

// ClearPool discards all pooled candidates.
func (s *SelectionState) ClearPool() {
	s.pool = nil
}

// RemoveFromPool removes the track with the given ID from the pool.
func (s *SelectionState) RemoveFromPool(trackID string) {
	for i, t := range s.pool {
		if t.ID == trackID {
			s.pool = append(s.pool[:i], s.pool[i+1:]...)
			return
		}
	}
}
