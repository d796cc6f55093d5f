// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mwindeman/djradio/internal/domain/station"
)

// Config represents the application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Synthesis   SynthesisConfig   `yaml:"synthesis"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Stations    []StationConfig   `yaml:"stations" validate:"required,min=1,dive"`
	Spotify     SpotifyConfig     `yaml:"spotify"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr  string      `yaml:"addr" default:":8080"`
	Hooks HooksConfig `yaml:"hooks"`
}

// HooksConfig represents lifecycle hooks configuration.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// SynthesisConfig represents speech synthesis configuration.
type SynthesisConfig struct {
	WorkerCommand    string    `yaml:"worker_command" validate:"required"`
	WorkerTimeoutSec int       `yaml:"worker_timeout_sec" default:"20" validate:"gt=0,lte=120"`
	CacheTTLMin      int       `yaml:"cache_ttl_min" default:"30" validate:"gt=0"`
	MaxTextLength    int       `yaml:"max_text_length" default:"2000" validate:"gt=0"`
	TempDir          string    `yaml:"temp_dir"`
	DefaultVoice     string    `yaml:"default_voice" default:"nova"`
	DefaultRate      float64   `yaml:"default_rate" default:"1.0"`
	DefaultPitch     float64   `yaml:"default_pitch" default:"1.0"`
	RateLimit        RateLimit `yaml:"rate_limit"`
}

// RateLimit represents the per-client synthesis quota.
type RateLimit struct {
	Requests  int `yaml:"requests" default:"20" validate:"gt=0"`
	WindowSec int `yaml:"window_sec" default:"60" validate:"gt=0"`
}

// FetchConfig represents candidate fetcher configuration.
type FetchConfig struct {
	RefillThreshold int              `yaml:"refill_threshold" default:"5" validate:"gt=0"`
	CandidateCount  int              `yaml:"candidate_count" default:"20" validate:"gt=0"`
	Providers       []ProviderConfig `yaml:"providers"`
}

// ProviderConfig represents a single fetch provider configuration.
type ProviderConfig struct {
	Type     string         `yaml:"type" validate:"required"`
	Settings map[string]any `yaml:"settings"`
}

// PersistenceConfig represents local persistence configuration.
type PersistenceConfig struct {
	Dir string `yaml:"dir" default:"data"`
}

// StationConfig represents a single station profile.
type StationConfig struct {
	ID              string         `yaml:"id" validate:"required"`
	Label           string         `yaml:"label" validate:"required"`
	YearMin         int            `yaml:"year_min" default:"1960"`
	YearMax         int            `yaml:"year_max" default:"2030"`
	PopularityMin   int            `yaml:"popularity_min" default:"0" validate:"gte=0,lte=100"`
	PopularityMax   int            `yaml:"popularity_max" default:"100" validate:"gte=0,lte=100"`
	Voice           string         `yaml:"voice" validate:"required"`
	Rate            float64        `yaml:"rate" default:"1.0"`
	Pitch           float64        `yaml:"pitch" default:"1.0"`
	Tone            string         `yaml:"tone" default:"warm" validate:"oneof=energetic chill warm smooth edgy"`
	Talkativeness   float64        `yaml:"talkativeness" default:"0.5" validate:"gte=0,lte=1"`
	RotationCurrent float64        `yaml:"rotation_current" default:"0.58"`
	RotationRecent  float64        `yaml:"rotation_recurrent" default:"0.25"`
	RotationGold    float64        `yaml:"rotation_gold" default:"0.17"`
	SegmentWeights  map[string]int `yaml:"segment_weights"`
	SearchTerms     []string       `yaml:"search_terms" validate:"required,min=1"`
	MinSongsBetween int            `yaml:"min_songs_between" default:"3" validate:"gte=1"`
	SongSpread      int            `yaml:"song_spread" default:"3" validate:"gte=0"`
}

// SpotifyConfig represents catalog API configuration.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id" validate:"required"`
	ClientSecret string `yaml:"client_secret" validate:"required"`
	RefreshToken string `yaml:"refresh_token" validate:"required"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values for sensitive fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_REFRESH_TOKEN"); v != "" {
		c.Spotify.RefreshToken = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	for _, s := range c.Stations {
		if s.YearMin > s.YearMax {
			return errors.Newf("station %s: year_min must not exceed year_max", s.ID)
		}
		if s.PopularityMin > s.PopularityMax {
			return errors.Newf("station %s: popularity_min must not exceed popularity_max", s.ID)
		}
		for name := range s.SegmentWeights {
			if !validSegment(name) {
				return errors.Newf("station %s: unknown segment type %q", s.ID, name)
			}
		}
	}

	return nil
}

// Station returns the station config with the given ID, or nil.
func (c *Config) Station(id string) *StationConfig {
	for i := range c.Stations {
		if c.Stations[i].ID == id {
			return &c.Stations[i]
		}
	}
	return nil
}

// Profile converts the station config to an immutable domain profile.
func (s *StationConfig) Profile() *station.Profile {
	weights := make(map[station.SegmentType]int, len(s.SegmentWeights))
	for name, w := range s.SegmentWeights {
		weights[station.SegmentType(name)] = w
	}

	return &station.Profile{
		ID:              s.ID,
		Label:           s.Label,
		YearRange:       station.Range{Min: s.YearMin, Max: s.YearMax},
		PopularityRange: station.Range{Min: s.PopularityMin, Max: s.PopularityMax},
		Rotation: station.RotationWeights{
			Current:   s.RotationCurrent,
			Recurrent: s.RotationRecent,
			Gold:      s.RotationGold,
		},
		Voice: station.VoiceProfile{
			Voice: s.Voice,
			Rate:  s.Rate,
			Pitch: s.Pitch,
		},
		Tone:            station.Tone(s.Tone),
		Talkativeness:   s.Talkativeness,
		SegmentWeights:  weights,
		SearchTerms:     append([]string(nil), s.SearchTerms...),
		MinSongsBetween: s.MinSongsBetween,
		SongSpread:      s.SongSpread,
	}
}

func validSegment(name string) bool {
	switch station.SegmentType(name) {
	case station.SegmentIntro, station.SegmentBetween, station.SegmentWeather,
		station.SegmentWeatherFull, station.SegmentNews, station.SegmentNewsFull,
		station.SegmentTime, station.SegmentStationID, station.SegmentFunFact,
		station.SegmentSongIntro, station.SegmentJingle, station.SegmentOutro:
		return true
	}
	return false
}
