package session

import (
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/domain/station"
)

// ErrSessionNotFound indicates no session exists for the given ID.
var ErrSessionNotFound = errors.New("session not found")

// Manager creates and tracks listener sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Engine
	stations map[string]*station.Profile
	prefs    *PrefStore
	deps     Deps
}

// NewManager creates a session manager over the configured stations. A nil
// preference store disables preference persistence.
func NewManager(stations []*station.Profile, prefs *PrefStore, deps Deps) *Manager {
	byID := make(map[string]*station.Profile, len(stations))
	for _, st := range stations {
		byID[st.ID] = st
	}
	return &Manager{
		sessions: make(map[string]*Engine),
		stations: byID,
		prefs:    prefs,
		deps:     deps,
	}
}

// Station returns the station profile for the ID, or an error.
func (m *Manager) Station(id string) (*station.Profile, error) {
	st, ok := m.stations[id]
	if !ok {
		return nil, errors.Newf("unknown station: %s", id)
	}
	return st, nil
}

// Stations returns all configured station profiles.
func (m *Manager) Stations() []*station.Profile {
	out := make([]*station.Profile, 0, len(m.stations))
	for _, st := range m.stations {
		out = append(out, st)
	}
	return out
}

// Open creates a new session on the given station. An empty station ID or
// frequency falls back to the listener's stored preferences.
func (m *Manager) Open(stationID string, freq station.DJFrequency) (*Engine, error) {
	var stored Preferences
	if m.prefs != nil {
		stored = m.prefs.Load()
	}
	if stationID == "" {
		stationID = stored.StationID
	}
	if freq == "" {
		freq = stored.DJFrequency
	}
	if freq == "" {
		freq = station.FrequencyNormal
	}

	st, err := m.Station(stationID)
	if err != nil {
		return nil, err
	}
	eng := NewEngine(st, freq, m.deps)

	m.mu.Lock()
	m.sessions[eng.ID()] = eng
	m.mu.Unlock()

	if m.prefs != nil {
		stored.StationID = stationID
		stored.DJFrequency = freq
		if err := m.prefs.Save(stored); err != nil {
			zlog.Warn().Err(err).Msg("failed to save preferences")
		}
	}
	return eng, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	eng, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrSessionNotFound, "id %s", id)
	}
	return eng, nil
}

// Close removes the session.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
