// Package announce decides when a DJ break occurs and which segment type
// plays.
package announce

import (
	"math/rand"
	"sort"
	"sync"

	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/domain/station"
)

// State is the scheduler macro-state.
type State string

const (
	StatePlayingTrack State = "playing_track"
	StateSpeaking     State = "speaking"
)

// Context carries the availability flags considered when picking a segment.
type Context struct {
	WeatherAvailable bool
	NewsAvailable    bool
	HasNextTrack     bool // enables song_intro segments
}

// Scheduler counts down tracks until the next DJ break. The countdown is
// always at least the station minimum except at the trigger point, and is
// reset to a fresh randomized value immediately after each break.
type Scheduler struct {
	mu      sync.Mutex
	station *station.Profile
	freq    station.DJFrequency
	rng     *rand.Rand

	state State
	until int // songsUntilAnnouncement
	since int // songsSinceAnnouncement
}

// NewScheduler creates a scheduler for the station with the listener's DJ
// frequency preference.
func NewScheduler(st *station.Profile, freq station.DJFrequency, seed int64) *Scheduler {
	s := &Scheduler{
		station: st,
		freq:    freq,
		rng:     rand.New(rand.NewSource(seed)),
		state:   StatePlayingTrack,
	}
	s.until = s.freshCountdown()
	return s
}

// State returns the current macro-state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SongsUntilAnnouncement returns the current countdown value.
func (s *Scheduler) SongsUntilAnnouncement() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.until
}

// SongsSinceAnnouncement returns tracks elapsed since the last break.
func (s *Scheduler) SongsSinceAnnouncement() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.since
}

// OnTrackComplete advances the state machine on a track-completion event.
// It returns true when a DJ break should happen now.
func (s *Scheduler) OnTrackComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.until--
	s.since++
	if s.until <= 0 {
		s.state = StateSpeaking
		return true
	}
	s.state = StatePlayingTrack
	return false
}

// OnBreakDone resets the counters after a spoken break and returns to the
// playing state.
func (s *Scheduler) OnBreakDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until = s.freshCountdown()
	s.since = 0
	s.state = StatePlayingTrack
}

// Reset restarts the scheduler, e.g. on station change.
func (s *Scheduler) Reset(st *station.Profile, freq station.DJFrequency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.station = st
	s.freq = freq
	s.until = s.freshCountdown()
	s.since = 0
	s.state = StatePlayingTrack
}

// freshCountdown draws a randomized station base adjusted by the listener's
// DJ-frequency preference, never below the station minimum. Must hold s.mu
// or be called before the scheduler is shared.
func (s *Scheduler) freshCountdown() int {
	base := s.station.MinSongsBetween
	if s.station.SongSpread > 0 {
		base += s.rng.Intn(s.station.SongSpread + 1)
	}
	switch s.freq {
	case station.FrequencyLow:
		base += 2
	case station.FrequencyHigh:
		base -= 2
	}
	if base < s.station.MinSongsBetween {
		base = s.station.MinSongsBetween
	}
	return base
}

// PickSegment picks the segment type for a break, weighted by the station
// configuration. Weather and news segments are excluded when their data
// source has nothing available, and song intros require a queued next track.
func (s *Scheduler) PickSegment(ctx Context) station.SegmentType {
	s.mu.Lock()
	defer s.mu.Unlock()

	type weighted struct {
		seg    station.SegmentType
		weight int
	}

	// Stable iteration so the weighted draw is reproducible for a seed.
	segs := make([]station.SegmentType, 0, len(s.station.SegmentWeights))
	for seg := range s.station.SegmentWeights {
		segs = append(segs, seg)
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i] < segs[j] })

	var choices []weighted
	total := 0
	for _, seg := range segs {
		w := s.station.SegmentWeights[seg]
		if w <= 0 {
			continue
		}
		switch seg {
		case station.SegmentWeather, station.SegmentWeatherFull:
			if !ctx.WeatherAvailable {
				continue
			}
		case station.SegmentNews, station.SegmentNewsFull:
			if !ctx.NewsAvailable {
				continue
			}
		case station.SegmentSongIntro:
			if !ctx.HasNextTrack {
				continue
			}
		}
		choices = append(choices, weighted{seg: seg, weight: w})
		total += w
	}

	if total == 0 {
		zlog.Debug().Str("station", s.station.ID).Msg("no weighted segments available, defaulting to between")
		return station.SegmentBetween
	}

	n := s.rng.Intn(total)
	for _, c := range choices {
		n -= c.weight
		if n < 0 {
			return c.seg
		}
	}
	return station.SegmentBetween
}
