package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name        string
		text        string
		wantType    Type
		wantLabel   string
		check       func(t *testing.T, req *DJRequest)
		description string
	}{
		{
			name:      "Dutch decade phrase",
			text:      "doe maar wat uit de jaren 80",
			wantType:  TypeDecade,
			wantLabel: "Jaren 80",
			check: func(t *testing.T, req *DJRequest) {
				require.NotNil(t, req.YearRange)
				assert.Equal(t, 1980, req.YearRange.Min)
				assert.Equal(t, 1989, req.YearRange.Max)
			},
		},
		{
			name:      "Apostrophe decade",
			text:      "lekker wat '90s muziek",
			wantType:  TypeDecade,
			wantLabel: "Jaren 90",
			check: func(t *testing.T, req *DJRequest) {
				require.NotNil(t, req.YearRange)
				assert.Equal(t, 1990, req.YearRange.Min)
			},
		},
		{
			name:      "Full year decade",
			text:      "something from the 1970s",
			wantType:  TypeDecade,
			wantLabel: "Jaren 70",
			check: func(t *testing.T, req *DJRequest) {
				require.NotNil(t, req.YearRange)
				assert.Equal(t, 1970, req.YearRange.Min)
				assert.Equal(t, 1979, req.YearRange.Max)
			},
		},
		{
			name:      "Word decade",
			text:      "give me the eighties",
			wantType:  TypeDecade,
			wantLabel: "Jaren 80",
		},
		{
			name:      "Genre request",
			text:      "ik wil rock horen",
			wantType:  TypeGenre,
			wantLabel: "Rock",
			check: func(t *testing.T, req *DJRequest) {
				assert.Equal(t, []string{"rock"}, req.Genres)
			},
		},
		{
			name:      "Specific genre wins over broad",
			text:      "hard rock graag",
			wantType:  TypeGenre,
			wantLabel: "Hard rock",
			check: func(t *testing.T, req *DJRequest) {
				assert.Equal(t, []string{"hard-rock"}, req.Genres)
			},
		},
		{
			name:      "High energy mood",
			text:      "iets met veel energie voor een feest",
			wantType:  TypeMood,
			wantLabel: "Up-tempo",
			check: func(t *testing.T, req *DJRequest) {
				require.NotNil(t, req.EnergyRange)
				assert.InDelta(t, 0.65, req.EnergyRange.Min, 1e-9)
			},
		},
		{
			name:      "Low energy mood",
			text:      "doe maar rustig aan vanavond",
			wantType:  TypeMood,
			wantLabel: "Chill",
			check: func(t *testing.T, req *DJRequest) {
				require.NotNil(t, req.EnergyRange)
				assert.InDelta(t, 0.4, req.EnergyRange.Max, 1e-9)
			},
		},
		{
			name:      "Artist request",
			text:      "meer van Fleetwood Mac",
			wantType:  TypeArtist,
			wantLabel: "Fleetwood Mac",
			check: func(t *testing.T, req *DJRequest) {
				assert.Equal(t, "Fleetwood Mac", req.ArtistQuery)
			},
		},
		{
			name:      "English play phrase",
			text:      "play Queen!",
			wantType:  TypeArtist,
			wantLabel: "Queen",
		},
		{
			name:      "Mixed decade and genre",
			text:      "rock uit de jaren 70",
			wantType:  TypeMixed,
			wantLabel: "Jaren 70 + Rock",
			check: func(t *testing.T, req *DJRequest) {
				require.NotNil(t, req.YearRange)
				assert.Equal(t, []string{"rock"}, req.Genres)
			},
		},
		{
			name:      "Discovery request",
			text:      "verras me eens",
			wantType:  TypeMixed,
			wantLabel: "Verrassing",
			check: func(t *testing.T, req *DJRequest) {
				assert.True(t, req.Discovery)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := p.Parse(tt.text)
			require.NotNil(t, req, "expected a parse for %q", tt.text)
			assert.Equal(t, tt.wantType, req.Type)
			assert.Equal(t, tt.wantLabel, req.Label)
			assert.Equal(t, DefaultExpiry, req.TracksLeft)
			if tt.check != nil {
				tt.check(t, req)
			}
		})
	}
}

func TestParser_Unrecognized(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name string
		text string
	}{
		{name: "Empty", text: ""},
		{name: "Whitespace", text: "   "},
		{name: "Small talk", text: "hoe gaat het vandaag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, p.Parse(tt.text))
		})
	}
}

func TestParser_ArtistOnlyWithoutOtherDimensions(t *testing.T) {
	p := NewParser()

	// "play" plus a genre word parses as a genre request, not an artist named
	// "rock".
	req := p.Parse("play rock")
	require.NotNil(t, req)
	assert.Equal(t, TypeGenre, req.Type)
	assert.Empty(t, req.ArtistQuery)
}
