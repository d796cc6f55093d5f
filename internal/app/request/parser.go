package request

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// A matcher inspects the request text and contributes at most one filter
// dimension. The first matching pattern inside a matcher wins; matchers are
// independent of each other except for the artist matcher, which only runs
// when no other dimension fired.
type matcher interface {
	name() string
	apply(text string, req *DJRequest) (label string, ok bool)
}

// Parser parses free-text listener requests.
type Parser struct {
	families []matcher
	artist   *artistMatcher
}

// NewParser creates a parser with the default matcher families.
func NewParser() *Parser {
	return &Parser{
		families: []matcher{
			newDecadeMatcher(),
			newGenreMatcher(),
			newMoodMatcher(),
			newDiscoveryMatcher(),
		},
		artist: newArtistMatcher(),
	}
}

// Parse converts free text into a structured request, or nil when nothing
// matches. Every successful parse carries a fixed expiry of five tracks.
func (p *Parser) Parse(text string) *DJRequest {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	req := &DJRequest{TracksLeft: DefaultExpiry}
	var labels []string
	dims := 0

	for _, m := range p.families {
		if label, ok := m.apply(text, req); ok {
			labels = append(labels, label)
			if m.name() != "discovery" {
				dims++
			}
		}
	}

	// Artist extraction only applies if no other family matched.
	if dims == 0 && !req.Discovery {
		label, ok := p.artist.apply(text, req)
		if !ok {
			return nil
		}
		req.Type = TypeArtist
		req.Label = label
		return req
	}

	if dims == 0 && req.Discovery {
		req.Type = TypeMixed
		req.Label = labels[0]
		return req
	}

	switch {
	case dims > 1:
		req.Type = TypeMixed
	case req.YearRange != nil:
		req.Type = TypeDecade
	case len(req.Genres) > 0:
		req.Type = TypeGenre
	case req.EnergyRange != nil:
		req.Type = TypeMood
	default:
		req.Type = TypeMixed
	}
	req.Label = strings.Join(labels, " + ")
	return req
}

// decadeMatcher matches decade phrases ("jaren 80", "80s", "the nineties").
type decadeMatcher struct {
	dutch    *regexp.Regexp
	fullYear *regexp.Regexp
	short    *regexp.Regexp
	words    map[string]int
}

func newDecadeMatcher() *decadeMatcher {
	return &decadeMatcher{
		dutch:    regexp.MustCompile(`(?i)\bjaren\s*'?(\d0)\b`),
		fullYear: regexp.MustCompile(`(?i)\b(19[2-9]0|20[0-2]0)s?\b`),
		short:    regexp.MustCompile(`(?i)(?:\B'|\b)(\d0)s\b`),
		words: map[string]int{
			"fifties":   1950,
			"sixties":   1960,
			"seventies": 1970,
			"eighties":  1980,
			"nineties":  1990,
			"noughties": 2000,
		},
	}
}

func (m *decadeMatcher) name() string { return "decade" }

func (m *decadeMatcher) apply(text string, req *DJRequest) (string, bool) {
	if match := m.dutch.FindStringSubmatch(text); match != nil {
		start := expandDecade(match[1])
		req.YearRange = &YearRange{Min: start, Max: start + 9}
		return decadeLabel(start), true
	}
	if match := m.fullYear.FindStringSubmatch(text); match != nil {
		start, _ := strconv.Atoi(match[1])
		req.YearRange = &YearRange{Min: start, Max: start + 9}
		return decadeLabel(start), true
	}
	if match := m.short.FindStringSubmatch(text); match != nil {
		start := expandDecade(match[1])
		req.YearRange = &YearRange{Min: start, Max: start + 9}
		return decadeLabel(start), true
	}
	lower := strings.ToLower(text)
	for word, start := range m.words {
		if strings.Contains(lower, word) {
			req.YearRange = &YearRange{Min: start, Max: start + 9}
			return decadeLabel(start), true
		}
	}
	return "", false
}

// expandDecade turns a two-digit decade into a full year. Values below 30 are
// treated as 2000s decades.
func expandDecade(twoDigit string) int {
	n, _ := strconv.Atoi(twoDigit)
	if n < 30 {
		return 2000 + n
	}
	return 1900 + n
}

func decadeLabel(start int) string {
	if start >= 2000 {
		return fmt.Sprintf("%ds", start)
	}
	return fmt.Sprintf("Jaren %02d", start%100)
}

// genreMatcher matches genre keywords. Patterns are checked in order so more
// specific genres win over broad ones.
type genreMatcher struct {
	entries []genreEntry
}

type genreEntry struct {
	genre   string
	label   string
	pattern *regexp.Regexp
}

func newGenreMatcher() *genreMatcher {
	specs := []struct{ genre, label, pattern string }{
		{"hip-hop", "Hip-hop", `(?i)\b(hip.?hop|rap)\b`},
		{"hard-rock", "Hard rock", `(?i)\b(hard.?rock|metal)\b`},
		{"rock", "Rock", `(?i)\brock\b`},
		{"jazz", "Jazz", `(?i)\bjazz\b`},
		{"soul", "Soul", `(?i)\b(soul|motown)\b`},
		{"disco", "Disco", `(?i)\bdisco\b`},
		{"funk", "Funk", `(?i)\bfunk\b`},
		{"dance", "Dance", `(?i)\b(dance|house|techno|edm)\b`},
		{"classical", "Klassiek", `(?i)\b(klassiek|classical)\b`},
		{"country", "Country", `(?i)\bcountry\b`},
		{"blues", "Blues", `(?i)\bblues\b`},
		{"reggae", "Reggae", `(?i)\breggae\b`},
		{"pop", "Pop", `(?i)\bpop\b`},
	}
	entries := make([]genreEntry, 0, len(specs))
	for _, s := range specs {
		entries = append(entries, genreEntry{
			genre:   s.genre,
			label:   s.label,
			pattern: regexp.MustCompile(s.pattern),
		})
	}
	return &genreMatcher{entries: entries}
}

func (m *genreMatcher) name() string { return "genre" }

func (m *genreMatcher) apply(text string, req *DJRequest) (string, bool) {
	for _, e := range m.entries {
		if e.pattern.MatchString(text) {
			req.Genres = []string{e.genre}
			return e.label, true
		}
	}
	return "", false
}

// moodMatcher maps mood and energy words to an energy window.
type moodMatcher struct {
	high *regexp.Regexp
	low  *regexp.Regexp
}

func newMoodMatcher() *moodMatcher {
	return &moodMatcher{
		high: regexp.MustCompile(`(?i)\b(energie|energiek|feest|party|dans|upbeat|uptempo|workout|vrolijk)\b`),
		low:  regexp.MustCompile(`(?i)\b(chill|rustig|relax(?:ed)?|kalm|slow|mellow|avond|study)\b`),
	}
}

func (m *moodMatcher) name() string { return "mood" }

func (m *moodMatcher) apply(text string, req *DJRequest) (string, bool) {
	if m.high.MatchString(text) {
		req.EnergyRange = &EnergyRange{Min: 0.65, Max: 1.0}
		return "Up-tempo", true
	}
	if m.low.MatchString(text) {
		req.EnergyRange = &EnergyRange{Min: 0.0, Max: 0.4}
		return "Chill", true
	}
	return "", false
}

// discoveryMatcher flags requests asking for unfamiliar music.
type discoveryMatcher struct {
	pattern *regexp.Regexp
}

func newDiscoveryMatcher() *discoveryMatcher {
	return &discoveryMatcher{
		pattern: regexp.MustCompile(`(?i)\b(verras|ontdek|discover|surprise|iets nieuws|something new)\b`),
	}
}

func (m *discoveryMatcher) name() string { return "discovery" }

func (m *discoveryMatcher) apply(text string, req *DJRequest) (string, bool) {
	if m.pattern.MatchString(text) {
		req.Discovery = true
		return "Verrassing", true
	}
	return "", false
}

// artistMatcher extracts an artist name from "play X" / "more like X" phrases.
type artistMatcher struct {
	pattern *regexp.Regexp
}

func newArtistMatcher() *artistMatcher {
	return &artistMatcher{
		pattern: regexp.MustCompile(`(?i)^(?:meer\s+(?:van|zoals)|more\s+(?:like|from|of)|play|draai|speel)\s+(.+)$`),
	}
}

func (m *artistMatcher) name() string { return "artist" }

func (m *artistMatcher) apply(text string, req *DJRequest) (string, bool) {
	match := m.pattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	name := strings.Trim(strings.TrimSpace(match[1]), ".!?")
	if name == "" {
		return "", false
	}
	req.ArtistQuery = name
	return name, true
}
