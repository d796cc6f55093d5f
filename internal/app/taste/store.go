// Package taste tracks liked and skipped artists across sessions.
package taste

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/domain/track"
	"github.com/mwindeman/djradio/internal/infra/kvstore"
)

// Capacity is the maximum number of artists kept per list; the oldest entry
// is evicted first.
const Capacity = 80

const storeKey = "taste_profile"

// Action is a listener feedback action.
type Action string

const (
	ActionLike Action = "like"
	ActionSkip Action = "skip"
)

// Profile is the persisted taste profile shape.
type Profile struct {
	Liked     []string  `json:"liked"`
	Skipped   []string  `json:"skipped"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store holds the taste profile and persists it after every mutation.
// Saves are debounced so a burst of feedback causes a single write.
type Store struct {
	mu      sync.Mutex
	profile Profile
	kv      kvstore.Store

	// saveMu serializes snapshot-and-save so a timer flush racing an
	// explicit flush cannot overwrite a newer snapshot with an older one.
	saveMu    sync.Mutex
	saveDelay time.Duration
	saveTimer *time.Timer
}

// NewStore loads the profile from the backing store, falling back to an
// empty profile when nothing is stored or the stored value fails to parse.
func NewStore(kv kvstore.Store) *Store {
	s := &Store{
		kv:        kv,
		saveDelay: 2 * time.Second,
	}

	data, err := kv.Load(storeKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			zlog.Warn().Err(err).Msg("failed to load taste profile, starting empty")
		}
		return s
	}
	if err := json.Unmarshal(data, &s.profile); err != nil {
		zlog.Warn().Err(err).Msg("taste profile unreadable, starting empty")
		s.profile = Profile{}
	}
	return s
}

// RecordFeedback applies a like or skip for every artist on the track.
// A like removes the artist from the skipped list (explicit override).
func (s *Store) RecordFeedback(action Action, t *track.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, artist := range t.Artists {
		switch action {
		case ActionLike:
			s.profile.Liked = appendBounded(s.profile.Liked, artist)
			s.profile.Skipped = remove(s.profile.Skipped, artist)
		case ActionSkip:
			s.profile.Skipped = appendBounded(s.profile.Skipped, artist)
		}
	}
	s.profile.UpdatedAt = time.Now()

	s.scheduleSaveLocked()
}

// IsLiked reports whether the artist is on the liked list.
func (s *Store) IsLiked(artist string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.profile.Liked, artist)
}

// IsSkipped reports whether the artist is on the skipped list.
func (s *Store) IsSkipped(artist string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.profile.Skipped, artist)
}

// Snapshot returns a copy of the current profile.
func (s *Store) Snapshot() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Profile{
		Liked:     append([]string(nil), s.profile.Liked...),
		Skipped:   append([]string(nil), s.profile.Skipped...),
		UpdatedAt: s.profile.UpdatedAt,
	}
}

// Flush cancels any pending debounce and saves immediately.
func (s *Store) Flush() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	data, err := json.Marshal(s.profile)
	s.mu.Unlock()
	if err != nil {
		return errors.Wrap(err, "failed to marshal taste profile")
	}
	return s.kv.Save(storeKey, data)
}

// scheduleSaveLocked arms the debounce timer. Must hold s.mu.
func (s *Store) scheduleSaveLocked() {
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.saveDelay, func() {
		if err := s.Flush(); err != nil {
			zlog.Error().Err(err).Msg("failed to save taste profile")
		}
	})
}

// appendBounded adds the value if absent, evicting the oldest entry past
// capacity.
func appendBounded(list []string, value string) []string {
	if contains(list, value) {
		return list
	}
	list = append(list, value)
	if len(list) > Capacity {
		list = list[len(list)-Capacity:]
	}
	return list
}

func remove(list []string, value string) []string {
	for i, v := range list {
		if v == value {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
