// Package spotify provides a client for the streaming catalog API.
package spotify

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"github.com/mwindeman/djradio/internal/domain/track"
)

// ErrAuthExpired indicates the catalog token is no longer valid. Callers must
// trigger re-authentication; retrying with the same token never succeeds.
var ErrAuthExpired = errors.New("catalog auth expired")

// Client is a catalog API client.
type Client struct {
	client     *spotify.Client
	maxRetries int
	retryDelay time.Duration
}

// Config represents catalog client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Seeds are the inputs for a recommendation call.
type Seeds struct {
	TrackIDs  []string
	ArtistIDs []string
	Genres    []string
}

// Targets are optional audio-feature targets for recommendations.
type Targets struct {
	Energy  *float64
	Valence *float64
}

// New creates a new catalog client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, errors.New("catalog credentials are required")
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserReadPlaybackState,
			spotifyauth.ScopeUserModifyPlaybackState,
		),
	)

	token := &oauth2.Token{RefreshToken: cfg.RefreshToken}
	httpClient := auth.Client(ctx, token)

	return &Client{
		client:     spotify.New(httpClient),
		maxRetries: 3,
		retryDelay: time.Second,
	}, nil
}

// SearchTracks searches the catalog for tracks matching the query.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]track.Track, error) {
	if query == "" {
		return nil, errors.New("search query is required")
	}
	limit = clampLimit(limit)

	var result *spotify.SearchResult
	err := c.retry(func() error {
		r, err := c.client.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, wrapAuth(err, "failed to search")
	}

	tracks := make([]track.Track, 0, len(result.Tracks.Tracks))
	for i := range result.Tracks.Tracks {
		tracks = append(tracks, *convertTrack(&result.Tracks.Tracks[i]))
	}
	return tracks, nil
}

// Recommendations retrieves recommended tracks for the given seeds and targets.
// Up to five seed values are used; extras are dropped in order.
func (c *Client) Recommendations(ctx context.Context, seeds Seeds, targets Targets, limit int) ([]track.Track, error) {
	limit = clampLimit(limit)

	spSeeds := spotify.Seeds{Genres: seeds.Genres}
	for _, id := range seeds.TrackIDs {
		spSeeds.Tracks = append(spSeeds.Tracks, spotify.ID(id))
	}
	for _, id := range seeds.ArtistIDs {
		spSeeds.Artists = append(spSeeds.Artists, spotify.ID(id))
	}
	if len(spSeeds.Tracks)+len(spSeeds.Artists)+len(spSeeds.Genres) == 0 {
		return nil, errors.New("at least one recommendation seed is required")
	}

	attrs := spotify.NewTrackAttributes()
	if targets.Energy != nil {
		attrs = attrs.TargetEnergy(*targets.Energy)
	}
	if targets.Valence != nil {
		attrs = attrs.TargetValence(*targets.Valence)
	}

	var rec *spotify.Recommendations
	err := c.retry(func() error {
		r, err := c.client.GetRecommendations(ctx, spSeeds, attrs, spotify.Limit(limit))
		if err != nil {
			return err
		}
		rec = r
		return nil
	})
	if err != nil {
		return nil, wrapAuth(err, "failed to get recommendations")
	}

	// The recommendation response only carries simplified tracks; resolve them
	// to full tracks to get popularity and album metadata.
	ids := make([]spotify.ID, 0, len(rec.Tracks))
	for _, t := range rec.Tracks {
		ids = append(ids, t.ID)
	}
	if len(ids) == 0 {
		return []track.Track{}, nil
	}

	var full []*spotify.FullTrack
	err = c.retry(func() error {
		f, err := c.client.GetTracks(ctx, ids)
		if err != nil {
			return err
		}
		full = f
		return nil
	})
	if err != nil {
		return nil, wrapAuth(err, "failed to resolve recommended tracks")
	}

	tracks := make([]track.Track, 0, len(full))
	for _, t := range full {
		if t == nil || t.ID == "" {
			continue
		}
		tracks = append(tracks, *convertTrack(t))
	}
	return tracks, nil
}

// EnrichAudioFeatures fills energy/valence on the given tracks in place.
// Missing features leave the zero values untouched.
func (c *Client) EnrichAudioFeatures(ctx context.Context, tracks []track.Track) error {
	if len(tracks) == 0 {
		return nil
	}

	ids := make([]spotify.ID, 0, len(tracks))
	for _, t := range tracks {
		ids = append(ids, spotify.ID(t.ID))
	}

	var features []*spotify.AudioFeatures
	err := c.retry(func() error {
		f, err := c.client.GetAudioFeatures(ctx, ids...)
		if err != nil {
			return err
		}
		features = f
		return nil
	})
	if err != nil {
		return wrapAuth(err, "failed to get audio features")
	}

	byID := make(map[string]*spotify.AudioFeatures, len(features))
	for _, f := range features {
		if f != nil {
			byID[string(f.ID)] = f
		}
	}
	for i := range tracks {
		if f, ok := byID[tracks[i].ID]; ok {
			tracks[i].Energy = float64(f.Energy)
			tracks[i].Valence = float64(f.Valence)
		}
	}
	return nil
}

// convertTrack converts a catalog FullTrack to the domain Track.
func convertTrack(t *spotify.FullTrack) *track.Track {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	year := 0
	if len(t.Album.ReleaseDate) >= 4 {
		if y, err := strconv.Atoi(t.Album.ReleaseDate[:4]); err == nil {
			year = y
		}
	}

	return &track.Track{
		ID:          string(t.ID),
		Name:        t.Name,
		Artists:     artists,
		Album:       t.Album.Name,
		Duration:    time.Duration(t.Duration) * time.Millisecond,
		URI:         string(t.URI),
		Popularity:  int(t.Popularity),
		ReleaseYear: year,
		Explicit:    t.Explicit,
	}
}

// retry retries an operation with linear backoff. Auth failures are never
// retried; a stale token cannot recover on its own.
func (c *Client) retry(fn func() error) error {
	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if isAuthError(err) || !isRetryable(err) {
			return err
		}

		if i < c.maxRetries-1 {
			time.Sleep(c.retryDelay * time.Duration(i+1))
		}
	}
	return errors.Wrap(lastErr, "max retries exceeded")
}

// wrapAuth maps auth failures to ErrAuthExpired and wraps everything else.
func wrapAuth(err error, msg string) error {
	if isAuthError(err) {
		return errors.Wrapf(ErrAuthExpired, "%s: %v", msg, err)
	}
	return errors.Wrap(err, msg)
}

// isAuthError checks whether the error indicates an invalid or expired token.
func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	var spErr spotify.Error
	if errors.As(err, &spErr) && spErr.Status == http.StatusUnauthorized {
		return true
	}
	var oErr *oauth2.RetrieveError
	if errors.As(err, &oErr) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "invalid_grant") ||
		strings.Contains(errStr, "token expired")
}

// isRetryable checks if an error is retryable.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504")
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 50 {
		return 50
	}
	return limit
}
