package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwindeman/djradio/internal/domain/track"
)

func TestDJRequest_Lifecycle(t *testing.T) {
	req := &DJRequest{Type: TypeGenre, TracksLeft: 2}

	assert.False(t, req.Expired())
	req.Tick()
	assert.False(t, req.Expired())
	req.Tick()
	assert.True(t, req.Expired())

	// Ticking past zero stays at zero.
	req.Tick()
	assert.Equal(t, 0, req.TracksLeft)
}

func TestDJRequest_Matches(t *testing.T) {
	tr := track.Track{
		ID:          "t1",
		Name:        "Song",
		Artists:     []string{"The Band"},
		Genres:      []string{"rock", "classic rock"},
		ReleaseYear: 1985,
		Energy:      0.7,
	}

	tests := []struct {
		name string
		req  DJRequest
		want bool
	}{
		{
			name: "Year in range",
			req:  DJRequest{YearRange: &YearRange{Min: 1980, Max: 1989}},
			want: true,
		},
		{
			name: "Year out of range",
			req:  DJRequest{YearRange: &YearRange{Min: 1990, Max: 1999}},
			want: false,
		},
		{
			name: "Genre match",
			req:  DJRequest{Genres: []string{"rock"}},
			want: true,
		},
		{
			name: "Genre mismatch",
			req:  DJRequest{Genres: []string{"jazz"}},
			want: false,
		},
		{
			name: "Energy in range",
			req:  DJRequest{EnergyRange: &EnergyRange{Min: 0.65, Max: 1.0}},
			want: true,
		},
		{
			name: "Energy out of range",
			req:  DJRequest{EnergyRange: &EnergyRange{Min: 0.0, Max: 0.4}},
			want: false,
		},
		{
			name: "Artist substring match is case insensitive",
			req:  DJRequest{ArtistQuery: "the band"},
			want: true,
		},
		{
			name: "Artist mismatch",
			req:  DJRequest{ArtistQuery: "other act"},
			want: false,
		},
		{
			name: "All dimensions must pass",
			req: DJRequest{
				YearRange: &YearRange{Min: 1980, Max: 1989},
				Genres:    []string{"jazz"},
			},
			want: false,
		},
		{
			name: "No dimensions always matches",
			req:  DJRequest{Discovery: true},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Matches(&tr))
		})
	}
}
