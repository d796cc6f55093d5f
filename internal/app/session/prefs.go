package session

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/domain/station"
	"github.com/mwindeman/djradio/internal/infra/kvstore"
)

const prefsKey = "listener_prefs"

// Preferences are the listener settings carried across sessions.
type Preferences struct {
	Voice        string              `json:"voice,omitempty"`
	DJFrequency  station.DJFrequency `json:"dj_frequency,omitempty"`
	CrossfadeSec int                 `json:"crossfade_sec,omitempty"`
	StationID    string              `json:"station_id,omitempty"`
}

// PrefStore persists listener preferences in the key-value store.
type PrefStore struct {
	kv kvstore.Store
}

// NewPrefStore creates a preference store over the backing key-value store.
func NewPrefStore(kv kvstore.Store) *PrefStore {
	return &PrefStore{kv: kv}
}

// Load returns the stored preferences, or sensible defaults when nothing is
// stored or the stored value fails to parse.
func (p *PrefStore) Load() Preferences {
	prefs := Preferences{DJFrequency: station.FrequencyNormal}

	data, err := p.kv.Load(prefsKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			zlog.Warn().Err(err).Msg("failed to load preferences, using defaults")
		}
		return prefs
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		zlog.Warn().Err(err).Msg("preferences unreadable, using defaults")
		return Preferences{DJFrequency: station.FrequencyNormal}
	}
	if prefs.DJFrequency == "" {
		prefs.DJFrequency = station.FrequencyNormal
	}
	return prefs
}

// Save stores the preferences.
func (p *PrefStore) Save(prefs Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return errors.Wrap(err, "failed to marshal preferences")
	}
	return p.kv.Save(prefsKey, data)
}
