package session

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/app/announce"
	"github.com/mwindeman/djradio/internal/app/fetch"
	"github.com/mwindeman/djradio/internal/app/request"
	"github.com/mwindeman/djradio/internal/app/rotation"
	"github.com/mwindeman/djradio/internal/app/script"
	"github.com/mwindeman/djradio/internal/app/synth"
	"github.com/mwindeman/djradio/internal/app/taste"
	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/domain/track"
)

// ErrUnrecognizedRequest indicates the request text matched no known pattern.
var ErrUnrecognizedRequest = errors.New("unrecognized request")

// headlineCount is how many headlines a full news segment may read.
const headlineCount = 3

// Speech is a synthesized DJ break.
type Speech struct {
	Segment  station.SegmentType
	Text     string
	Audio    []byte
	CacheHit bool
}

// Turn is one step of the session: the next track to play, optionally
// preceded by a spoken DJ break.
type Turn struct {
	Track  *track.Track
	Speech *Speech // nil when the DJ stays quiet this turn
}

// Deps bundles the collaborators an engine needs.
type Deps struct {
	Fetcher *fetch.Fetcher
	Taste   *taste.Store
	Synth   Synthesizer
	Weather WeatherSource // optional
	News    NewsSource    // optional
	Seed    int64         // 0 means derive from the clock
}

// Engine drives a single listener session. All methods are safe for
// concurrent use; a session serializes its own turns.
type Engine struct {
	mu sync.Mutex

	id      string
	station *station.Profile
	deps    Deps

	state    *rotation.SelectionState
	selector *rotation.Selector
	sched    *announce.Scheduler
	gen      *script.Generator
	parser   *request.Parser

	req   *request.DJRequest
	last  *track.Track
	turns int
}

// NewEngine creates a session engine tuned to the station and the listener's
// DJ frequency preference.
func NewEngine(st *station.Profile, freq station.DJFrequency, deps Deps) *Engine {
	seed := deps.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		id:       uuid.NewString(),
		station:  st,
		deps:     deps,
		state:    rotation.NewSelectionState(st.ID),
		selector: rotation.NewSelector(rotation.NewScorer(seed)),
		sched:    announce.NewScheduler(st, freq, seed),
		gen:      script.NewGenerator(seed),
		parser:   request.NewParser(),
	}
}

// ID returns the session identifier.
func (e *Engine) ID() string {
	return e.id
}

// Station returns the active station profile.
func (e *Engine) Station() *station.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.station
}

// NextTurn advances the session by one track. The first turn opens with a
// station intro; later turns speak only when the announcement countdown
// triggers. A synthesis failure drops the spoken break but never the track.
func (e *Engine) NextTurn(ctx context.Context) (*Turn, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.req != nil && e.req.Expired() {
		zlog.Debug().Str("session", e.id).Msg("request expired, clearing")
		e.req = nil
	}

	if err := e.deps.Fetcher.EnsurePool(ctx, e.station, e.state); err != nil {
		if e.state.PoolSize() == 0 {
			return nil, errors.Wrap(err, "failed to fill candidate pool")
		}
		zlog.Warn().Err(err).Str("session", e.id).Msg("pool refill failed, selecting from remainder")
	}

	next, err := e.selector.Select(ctx, e.station, e.state, e.deps.Taste, e.req, e.refetch)
	if err != nil {
		return nil, err
	}

	if e.req != nil {
		e.req.Tick()
	}

	turn := &Turn{Track: next}

	switch {
	case e.turns == 0:
		turn.Speech = e.speak(ctx, station.SegmentIntro, next)
	case e.sched.OnTrackComplete():
		seg := e.sched.PickSegment(announce.Context{
			WeatherAvailable: e.deps.Weather != nil,
			NewsAvailable:    e.deps.News != nil,
			HasNextTrack:     true,
		})
		turn.Speech = e.speak(ctx, seg, next)
		e.sched.OnBreakDone()
	}

	e.last = next
	e.turns++
	return turn, nil
}

// SubmitRequest parses free-text listener input into an active request.
// A new request replaces any prior one.
func (e *Engine) SubmitRequest(text string) (*request.DJRequest, error) {
	req := e.parser.Parse(text)
	if req == nil {
		return nil, errors.Wrapf(ErrUnrecognizedRequest, "could not parse %q", text)
	}

	e.mu.Lock()
	e.req = req
	e.mu.Unlock()

	zlog.Info().
		Str("session", e.id).
		Str("type", string(req.Type)).
		Str("label", req.Label).
		Msg("request activated")
	return req, nil
}

// ActiveRequest returns the current request, or nil.
func (e *Engine) ActiveRequest() *request.DJRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.req
}

// RecordFeedback applies like or skip feedback to the most recent track.
func (e *Engine) RecordFeedback(action taste.Action) error {
	e.mu.Lock()
	last := e.last
	e.mu.Unlock()

	if last == nil {
		return errors.New("no track has played yet")
	}
	e.deps.Taste.RecordFeedback(action, last)
	return nil
}

// ChangeStation switches the session to another station. Play history, the
// candidate pool, the announcement countdown, and any active request are all
// reset.
func (e *Engine) ChangeStation(st *station.Profile, freq station.DJFrequency) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.station = st
	e.state.Reset(st.ID)
	e.sched.Reset(st, freq)
	e.req = nil
	e.last = nil
	e.turns = 0
	zlog.Info().Str("session", e.id).Str("station", st.ID).Msg("station changed")
}

// refetch is the forced-refetch hook for the selector.
func (e *Engine) refetch(ctx context.Context) ([]track.Track, error) {
	return e.deps.Fetcher.FetchCandidates(ctx, e.station, e.state)
}

// speak generates, synthesizes, and packages one DJ break. Any failure is
// logged and swallowed so the track still plays.
func (e *Engine) speak(ctx context.Context, seg station.SegmentType, next *track.Track) *Speech {
	text := e.gen.Generate(e.station, seg, e.scriptContext(ctx, next))
	if text == "" {
		return nil
	}

	res, err := e.deps.Synth.Synthesize(ctx, synth.Request{
		Text:  text,
		Voice: e.station.Voice.Voice,
		Rate:  e.station.Voice.Rate,
		Pitch: e.station.Voice.Pitch,
	})
	if err != nil {
		zlog.Warn().Err(err).
			Str("session", e.id).
			Str("segment", string(seg)).
			Msg("synthesis failed, skipping spoken break")
		return nil
	}

	return &Speech{
		Segment:  seg,
		Text:     text,
		Audio:    res.Audio,
		CacheHit: res.CacheHit,
	}
}

// scriptContext gathers the data a segment script can reference. Weather and
// news lookups are best effort.
func (e *Engine) scriptContext(ctx context.Context, next *track.Track) script.Context {
	now := time.Now()
	sctx := script.Context{Time: now}
	if h, ok := announce.DetectHoliday(now); ok {
		sctx.HolidayLine = h.Line
	}
	if next != nil {
		sctx.TrackName = next.Name
		sctx.ArtistName = next.PrimaryArtist()
	}
	if e.deps.Weather != nil {
		if w, err := e.deps.Weather.Current(ctx); err == nil {
			sctx.HasWeather = true
			sctx.WeatherSummary = w.Summary
			sctx.TempC = w.TempC
		} else {
			zlog.Debug().Err(err).Msg("weather lookup failed")
		}
	}
	if e.deps.News != nil {
		if lines, err := e.deps.News.Headlines(ctx, headlineCount); err == nil {
			sctx.Headlines = lines
		} else {
			zlog.Debug().Err(err).Msg("news lookup failed")
		}
	}
	return sctx
}
