package fetch

import (
	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/mwindeman/djradio/internal/infra/config"
)

// NewFetcherFromConfig creates a fetcher from configuration. Provider
// settings maps are decoded into their typed settings structs.
func NewFetcherFromConfig(cfg *config.Config, catalog CatalogClient) (*Fetcher, error) {
	var search *SearchProvider
	var recommend *RecommendProvider

	providers := cfg.Fetch.Providers
	if len(providers) == 0 {
		// No explicit providers configured; enable both with defaults.
		providers = []config.ProviderConfig{{Type: "recommend"}, {Type: "search"}}
	}

	for i, pcfg := range providers {
		switch pcfg.Type {
		case "search":
			var settings SearchSettings
			if err := mapstructure.Decode(pcfg.Settings, &settings); err != nil {
				return nil, errors.Wrapf(err, "invalid search provider settings (index %d)", i)
			}
			p, err := NewSearchProvider(catalog, settings)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to create search provider (index %d)", i)
			}
			search = p

		case "recommend":
			var settings RecommendSettings
			if err := mapstructure.Decode(pcfg.Settings, &settings); err != nil {
				return nil, errors.Wrapf(err, "invalid recommend provider settings (index %d)", i)
			}
			p, err := NewRecommendProvider(catalog, settings)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to create recommend provider (index %d)", i)
			}
			recommend = p

		default:
			return nil, errors.Newf("unsupported provider type: %s (index %d)", pcfg.Type, i)
		}
		zlog.Info().Str("type", pcfg.Type).Int("index", i).Msg("registered fetch provider")
	}

	if search == nil {
		return nil, errors.New("a search provider is required as the cold-start and fallback path")
	}

	return NewFetcher(catalog, search, recommend, cfg.Fetch.RefillThreshold), nil
}
