// Package request converts free-text listener requests into structured
// selection filters.
package request

import (
	"strings"

	"github.com/mwindeman/djradio/internal/domain/track"
)

// Type classifies a parsed request.
type Type string

const (
	TypeDecade Type = "decade"
	TypeGenre  Type = "genre"
	TypeMood   Type = "mood"
	TypeArtist Type = "artist"
	TypeMixed  Type = "mixed"
)

// DefaultExpiry is how many tracks a request stays active.
const DefaultExpiry = 5

// YearRange is an inclusive year window.
type YearRange struct {
	Min int
	Max int
}

// EnergyRange is an inclusive energy window.
type EnergyRange struct {
	Min float64
	Max float64
}

// DJRequest is an ephemeral listener-issued selection filter.
// At most one request is active at a time; a new request replaces the prior.
type DJRequest struct {
	Type        Type
	Label       string
	YearRange   *YearRange
	Genres      []string
	EnergyRange *EnergyRange
	ArtistQuery string
	Discovery   bool
	TracksLeft  int
}

// Expired reports whether the request has run out of tracks.
func (r *DJRequest) Expired() bool {
	return r.TracksLeft <= 0
}

// Tick consumes one track of the request lifetime.
func (r *DJRequest) Tick() {
	if r.TracksLeft > 0 {
		r.TracksLeft--
	}
}

// Matches reports whether the track satisfies every dimension of the request.
func (r *DJRequest) Matches(t *track.Track) bool {
	if r.YearRange != nil {
		if t.ReleaseYear < r.YearRange.Min || t.ReleaseYear > r.YearRange.Max {
			return false
		}
	}
	if r.EnergyRange != nil {
		if t.Energy < r.EnergyRange.Min || t.Energy > r.EnergyRange.Max {
			return false
		}
	}
	if len(r.Genres) > 0 {
		found := false
		for _, g := range r.Genres {
			if t.HasGenre(g) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if r.ArtistQuery != "" {
		q := strings.ToLower(r.ArtistQuery)
		found := false
		for _, a := range t.Artists {
			if strings.Contains(strings.ToLower(a), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
