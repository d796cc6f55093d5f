package api

import (
	"encoding/json"
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/app/synth"
)

// synthesizeRequest is the POST /synthesize body.
type synthesizeRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice"`
	Rate  float64 `json:"rate"`
	Pitch float64 `json:"pitch"`
}

// handleSynthesize turns text into audio. The per-client quota is checked
// before any synthesis work. The X-Cache header reports HIT or MISS.
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, "synthesis quota exceeded, slow down")
		return
	}

	var body synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Voice == "" {
		body.Voice = s.defaults.voice
	}
	if body.Rate == 0 {
		body.Rate = s.defaults.rate
	}
	if body.Pitch == 0 {
		body.Pitch = s.defaults.pitch
	}

	res, err := s.synth.Synthesize(r.Context(), synth.Request{
		Text:  body.Text,
		Voice: body.Voice,
		Rate:  body.Rate,
		Pitch: body.Pitch,
	})
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			zlog.Error().Err(err).Msg("synthesis request failed")
			writeErrorDetails(w, status, "synthesis failed", err.Error())
			return
		}
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Audio); err != nil {
		zlog.Warn().Err(err).Msg("failed to write audio body")
	}
}

// handleVoices lists the available synthesis voices.
func (s *Server) handleVoices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]synth.Voice{"voices": synth.Voices()})
}
