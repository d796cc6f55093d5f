// Package track provides the Track domain entity.
package track

import "time"

// Track represents a catalog track entity.
// Contains only information retrieved from the streaming provider.
type Track struct {
	ID          string        // Provider track ID
	Name        string        // Track name
	Artists     []string      // Artist names
	Album       string        // Album name
	Duration    time.Duration // Track duration
	URI         string        // Playback URI
	Genres      []string      // Genres (from artist info)
	Popularity  int           // Popularity score (0-100)
	ReleaseYear int           // Album release year (0 if unknown)
	Energy      float64       // Audio feature: energy (0.0-1.0)
	Valence     float64       // Audio feature: valence (0.0-1.0)
	Explicit    bool          // Explicit content flag
}

// PrimaryArtist returns the first credited artist, or an empty string.
func (t *Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// Age returns the track age in whole years relative to now.
// Unknown release years count as very old.
func (t *Track) Age(now time.Time) int {
	if t.ReleaseYear == 0 {
		return 100
	}
	age := now.Year() - t.ReleaseYear
	if age < 0 {
		return 0
	}
	return age
}

// HasGenre reports whether the track carries the given genre tag.
func (t *Track) HasGenre(genre string) bool {
	for _, g := range t.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
