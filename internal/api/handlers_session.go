package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/app/session"
	"github.com/mwindeman/djradio/internal/app/taste"
	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/domain/track"
)

// stationView is the public shape of a station profile.
type stationView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Tone  string `json:"tone"`
	Voice string `json:"voice"`
}

// trackView is the public shape of a track.
type trackView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	Album       string   `json:"album"`
	DurationSec int      `json:"duration_sec"`
	URI         string   `json:"uri"`
	ReleaseYear int      `json:"release_year"`
}

// speechView is the public shape of a spoken DJ break.
type speechView struct {
	Segment  string `json:"segment"`
	Text     string `json:"text"`
	Audio    string `json:"audio"` // base64 mpeg
	CacheHit bool   `json:"cache_hit"`
}

// turnView is the POST /sessions/{id}/next response.
type turnView struct {
	Track  trackView   `json:"track"`
	Speech *speechView `json:"speech,omitempty"`
}

func viewTrack(t *track.Track) trackView {
	return trackView{
		ID:          t.ID,
		Name:        t.Name,
		Artists:     t.Artists,
		Album:       t.Album,
		DurationSec: int(t.Duration.Seconds()),
		URI:         t.URI,
		ReleaseYear: t.ReleaseYear,
	}
}

// handleStations lists the configured stations.
func (s *Server) handleStations(w http.ResponseWriter, _ *http.Request) {
	stations := s.sessions.Stations()
	views := make([]stationView, 0, len(stations))
	for _, st := range stations {
		views = append(views, stationView{
			ID:    st.ID,
			Label: st.Label,
			Tone:  string(st.Tone),
			Voice: st.Voice.Voice,
		})
	}
	writeJSON(w, http.StatusOK, map[string][]stationView{"stations": views})
}

// handleOpenSession starts a listener session on a station.
func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StationID   string `json:"station_id"`
		DJFrequency string `json:"dj_frequency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	freq := station.DJFrequency(body.DJFrequency)
	if freq == "" {
		freq = station.FrequencyNormal
	}
	eng, err := s.sessions.Open(body.StationID, freq)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"session_id": eng.ID(),
		"station_id": eng.Station().ID,
	})
}

// handleNextTurn advances the session by one track.
func (s *Server) handleNextTurn(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.session(w, r)
	if !ok {
		return
	}

	turn, err := eng.NextTurn(r.Context())
	if err != nil {
		zlog.Error().Err(err).Str("session", eng.ID()).Msg("turn failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	view := turnView{Track: viewTrack(turn.Track)}
	if turn.Speech != nil {
		view.Speech = &speechView{
			Segment:  string(turn.Speech.Segment),
			Text:     turn.Speech.Text,
			Audio:    base64.StdEncoding.EncodeToString(turn.Speech.Audio),
			CacheHit: turn.Speech.CacheHit,
		}
	}
	writeJSON(w, http.StatusOK, view)
}

// handleRequest submits a free-text listener request.
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.session(w, r)
	if !ok {
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := eng.SubmitRequest(body.Text)
	if err != nil {
		if errors.Is(err, session.ErrUnrecognizedRequest) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"type":        string(req.Type),
		"label":       req.Label,
		"tracks_left": req.TracksLeft,
	})
}

// handleFeedback records like or skip feedback on the current track.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.session(w, r)
	if !ok {
		return
	}

	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action := taste.Action(body.Action)
	if action != taste.ActionLike && action != taste.ActionSkip {
		writeError(w, http.StatusBadRequest, "action must be like or skip")
		return
	}
	if err := eng.RecordFeedback(action); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleChangeStation switches the session to another station.
func (s *Server) handleChangeStation(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.session(w, r)
	if !ok {
		return
	}

	var body struct {
		StationID   string `json:"station_id"`
		DJFrequency string `json:"dj_frequency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := s.sessions.Station(body.StationID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	freq := station.DJFrequency(body.DJFrequency)
	if freq == "" {
		freq = station.FrequencyNormal
	}
	eng.ChangeStation(st, freq)
	w.WriteHeader(http.StatusNoContent)
}

// handleCloseSession ends the session.
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Close(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the {id} path value to a live session, writing the error
// response itself on failure.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Engine, bool) {
	eng, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return eng, true
}
