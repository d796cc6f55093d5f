package script

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mwindeman/djradio/internal/domain/station"
)

func scriptStation(tone station.Tone) *station.Profile {
	return &station.Profile{
		ID:            "test",
		Label:         "Test FM",
		Tone:          tone,
		Talkativeness: 1.0,
	}
}

func scriptContext() Context {
	return Context{
		TrackName:      "Dreams",
		ArtistName:     "Fleetwood Mac",
		Time:           time.Date(2026, 6, 1, 14, 30, 0, 0, time.UTC),
		WeatherSummary: "licht bewolkt",
		TempC:          18,
		HasWeather:     true,
		Headlines:      []string{"Kop een.", "Kop twee.", "Kop drie."},
	}
}

func TestGenerator_SegmentContent(t *testing.T) {
	g := NewGenerator(1)

	tests := []struct {
		name     string
		seg      station.SegmentType
		contains string
	}{
		{name: "Intro names the station", seg: station.SegmentIntro, contains: "Test FM"},
		{name: "Weather reads temperature", seg: station.SegmentWeather, contains: "18 graden"},
		{name: "Full weather reads summary", seg: station.SegmentWeatherFull, contains: "licht bewolkt"},
		{name: "News reads a headline", seg: station.SegmentNews, contains: "Kop een."},
		{name: "Time reads the clock", seg: station.SegmentTime, contains: "14:30"},
		{name: "Station ID names the station", seg: station.SegmentStationID, contains: "Test FM"},
		{name: "Song intro names track and artist", seg: station.SegmentSongIntro, contains: "Dreams"},
		{name: "Jingle names the station", seg: station.SegmentJingle, contains: "Test FM"},
		{name: "Outro names the station", seg: station.SegmentOutro, contains: "Test FM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := g.Generate(scriptStation(station.ToneWarm), tt.seg, scriptContext())
			assert.Contains(t, text, tt.contains)
		})
	}
}

func TestGenerator_EmphasisWrapsProperNouns(t *testing.T) {
	g := NewGenerator(1)

	text := g.Generate(scriptStation(station.ToneEnergetic), station.SegmentSongIntro, scriptContext())
	assert.Contains(t, text, `<em level="strong">Dreams</em>`)
	assert.Contains(t, text, `<em level="strong">Fleetwood Mac</em>`)
}

func TestGenerator_PauseTagsBetweenParts(t *testing.T) {
	g := NewGenerator(1)

	text := g.Generate(scriptStation(station.ToneChill), station.SegmentIntro, scriptContext())
	assert.Contains(t, text, `<break ms="650"/>`, "chill tone uses its long sentence pause")
}

func TestGenerator_QuietTonesNeverBreathe(t *testing.T) {
	for _, tone := range []station.Tone{station.ToneChill, station.ToneSmooth} {
		g := NewGenerator(3)
		for i := 0; i < 50; i++ {
			text := g.Generate(scriptStation(tone), station.SegmentNewsFull, scriptContext())
			assert.NotContains(t, text, "<breath/>", "tone %s must not breathe", tone)
		}
	}
}

func TestGenerator_EnergeticToneCanBreathe(t *testing.T) {
	g := NewGenerator(3)

	found := false
	for i := 0; i < 100 && !found; i++ {
		text := g.Generate(scriptStation(station.ToneEnergetic), station.SegmentNewsFull, scriptContext())
		found = strings.Contains(text, "<breath/>")
	}
	assert.True(t, found, "energetic tone should eventually insert a breath")
}

func TestGenerator_SilentDJSkipsFillers(t *testing.T) {
	st := scriptStation(station.ToneWarm)
	st.Talkativeness = 0

	g := NewGenerator(1)
	text := g.Generate(st, station.SegmentIntro, Context{Time: time.Now()})
	assert.Contains(t, text, "Test FM", "intro still names the station with zero talkativeness")
}

func TestGenerator_WeatherUnavailable(t *testing.T) {
	g := NewGenerator(1)

	text := g.Generate(scriptStation(station.ToneWarm), station.SegmentWeather, Context{})
	assert.Contains(t, text, "weerbericht")
}

func TestGenerator_HolidayLineWovenIn(t *testing.T) {
	g := NewGenerator(1)
	ctx := scriptContext()
	ctx.HolidayLine = "Vrolijk kerstfeest!"

	text := g.Generate(scriptStation(station.ToneWarm), station.SegmentIntro, ctx)
	assert.Contains(t, text, "Vrolijk kerstfeest!")
}

func TestGenerator_DeterministicPerSeed(t *testing.T) {
	a := NewGenerator(9).Generate(scriptStation(station.ToneWarm), station.SegmentBetween, scriptContext())
	b := NewGenerator(9).Generate(scriptStation(station.ToneWarm), station.SegmentBetween, scriptContext())
	assert.Equal(t, a, b)
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, "strong", StyleFor(station.ToneEnergetic).Emphasis)
	assert.Equal(t, 0.0, StyleFor(station.ToneSmooth).BreathChance)

	// Unknown tones fall back to warm.
	assert.Equal(t, StyleFor(station.ToneWarm), StyleFor(station.Tone("unknown")))
}
