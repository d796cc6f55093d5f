package announce

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwindeman/djradio/internal/domain/station"
)

func schedStation() *station.Profile {
	return &station.Profile{
		ID:              "test",
		Label:           "Test FM",
		MinSongsBetween: 3,
		SongSpread:      3,
		SegmentWeights: map[station.SegmentType]int{
			station.SegmentBetween:   5,
			station.SegmentWeather:   2,
			station.SegmentNews:      2,
			station.SegmentSongIntro: 3,
			station.SegmentTime:      1,
		},
	}
}

func TestScheduler_CountdownTriggersBreak(t *testing.T) {
	s := NewScheduler(schedStation(), station.FrequencyNormal, 1)

	countdown := s.SongsUntilAnnouncement()
	assert.GreaterOrEqual(t, countdown, 3)
	assert.LessOrEqual(t, countdown, 6)

	for i := 0; i < countdown-1; i++ {
		assert.False(t, s.OnTrackComplete(), "break fired before the countdown ran out")
		assert.Equal(t, StatePlayingTrack, s.State())
	}
	assert.True(t, s.OnTrackComplete(), "break should fire when the countdown hits zero")
	assert.Equal(t, StateSpeaking, s.State())
}

func TestScheduler_BreakDoneResetsCountdown(t *testing.T) {
	s := NewScheduler(schedStation(), station.FrequencyNormal, 1)

	for !s.OnTrackComplete() {
	}
	s.OnBreakDone()

	assert.Equal(t, StatePlayingTrack, s.State())
	assert.Equal(t, 0, s.SongsSinceAnnouncement())
	assert.GreaterOrEqual(t, s.SongsUntilAnnouncement(), 3,
		"fresh countdown must respect the station minimum")
}

func TestScheduler_FrequencyAdjustment(t *testing.T) {
	tests := []struct {
		name string
		freq station.DJFrequency
		min  int
		max  int
	}{
		{name: "Low frequency adds songs", freq: station.FrequencyLow, min: 5, max: 8},
		{name: "Normal frequency", freq: station.FrequencyNormal, min: 3, max: 6},
		{name: "High frequency clamps to station minimum", freq: station.FrequencyHigh, min: 3, max: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 25; seed++ {
				s := NewScheduler(schedStation(), tt.freq, seed)
				got := s.SongsUntilAnnouncement()
				assert.GreaterOrEqual(t, got, tt.min)
				assert.LessOrEqual(t, got, tt.max)
			}
		})
	}
}

func TestScheduler_PickSegmentAvailability(t *testing.T) {
	s := NewScheduler(schedStation(), station.FrequencyNormal, 7)

	t.Run("All sources available", func(t *testing.T) {
		seen := map[station.SegmentType]bool{}
		for i := 0; i < 200; i++ {
			seen[s.PickSegment(Context{WeatherAvailable: true, NewsAvailable: true, HasNextTrack: true})] = true
		}
		assert.True(t, seen[station.SegmentBetween])
		assert.True(t, seen[station.SegmentWeather])
		assert.True(t, seen[station.SegmentNews])
		assert.True(t, seen[station.SegmentSongIntro])
	})

	t.Run("Unavailable sources excluded", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			seg := s.PickSegment(Context{})
			assert.NotEqual(t, station.SegmentWeather, seg)
			assert.NotEqual(t, station.SegmentNews, seg)
			assert.NotEqual(t, station.SegmentSongIntro, seg)
		}
	})
}

func TestScheduler_PickSegmentNoWeights(t *testing.T) {
	st := schedStation()
	st.SegmentWeights = nil
	s := NewScheduler(st, station.FrequencyNormal, 1)

	assert.Equal(t, station.SegmentBetween, s.PickSegment(Context{}))
}

func TestScheduler_Reset(t *testing.T) {
	s := NewScheduler(schedStation(), station.FrequencyNormal, 1)
	for !s.OnTrackComplete() {
	}

	other := schedStation()
	other.ID = "other"
	s.Reset(other, station.FrequencyLow)

	assert.Equal(t, StatePlayingTrack, s.State())
	assert.Equal(t, 0, s.SongsSinceAnnouncement())
	assert.GreaterOrEqual(t, s.SongsUntilAnnouncement(), 3)
}
