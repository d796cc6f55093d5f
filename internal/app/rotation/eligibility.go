package rotation

import (
	"time"

	"github.com/mwindeman/djradio/internal/domain/track"
)

// Track duration bounds for eligibility.
const (
	minTrackDuration = 60 * time.Second
	maxTrackDuration = 600 * time.Second
)

// Rule is a single eligibility check applied before scoring.
type Rule interface {
	// Name returns the rule name for logging.
	Name() string
	// Eligible reports whether the candidate passes this rule.
	Eligible(t *track.Track, s *SelectionState) bool
}

// RuleChain executes rules in sequence; a candidate is eligible only when
// every rule accepts it.
type RuleChain struct {
	rules []Rule
}

// NewRuleChain creates a chain with the given rules.
func NewRuleChain(rules ...Rule) *RuleChain {
	return &RuleChain{rules: rules}
}

// DefaultRules returns the standard eligibility chain: not already played,
// artist outside the cooldown window, and duration within bounds.
func DefaultRules() *RuleChain {
	return NewRuleChain(
		notPlayedRule{},
		artistCooldownRule{},
		durationRule{},
	)
}

// Eligible runs every rule against the candidate.
func (c *RuleChain) Eligible(t *track.Track, s *SelectionState) bool {
	for _, r := range c.rules {
		if !r.Eligible(t, s) {
			return false
		}
	}
	return true
}

// Rules returns the rules in the chain.
func (c *RuleChain) Rules() []Rule {
	return c.rules
}

type notPlayedRule struct{}

func (notPlayedRule) Name() string { return "not_played" }

func (notPlayedRule) Eligible(t *track.Track, s *SelectionState) bool {
	return !s.Played(t.ID)
}

type artistCooldownRule struct{}

func (artistCooldownRule) Name() string { return "artist_cooldown" }

func (artistCooldownRule) Eligible(t *track.Track, s *SelectionState) bool {
	for _, a := range t.Artists {
		if s.InCooldown(a) {
			return false
		}
	}
	return true
}

type durationRule struct{}

func (durationRule) Name() string { return "duration" }

func (durationRule) Eligible(t *track.Track, _ *SelectionState) bool {
	return t.Duration >= minTrackDuration && t.Duration <= maxTrackDuration
}
