package script

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mwindeman/djradio/internal/domain/station"
)

// Context carries the data a segment script can reference.
type Context struct {
	TrackName      string // current or upcoming track
	ArtistName     string
	Time           time.Time
	WeatherSummary string
	TempC          float64
	HasWeather     bool
	Headlines      []string
	HolidayLine    string
}

// humanizeChance is the probability a non-first sentence gets a
// conversational filler prefix.
const humanizeChance = 0.2

// Generator produces spoken segment text.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded for phrase selection.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate builds the spoken text for a segment as an ordered list of parts
// (greeting, filler, body, transition) drawn from the station tone's phrase
// bank, then applies the tone's prosody style.
func (g *Generator) Generate(profile *station.Profile, seg station.SegmentType, ctx Context) string {
	b := bankFor(profile.Tone)
	style := StyleFor(profile.Tone)

	var parts []string
	add := func(p string) {
		if p != "" {
			parts = append(parts, p)
		}
	}

	switch seg {
	case station.SegmentIntro:
		add(g.pick(b.greetings))
		add(ctx.HolidayLine)
		add(fmt.Sprintf("Je luistert naar %s.", style.emph(profile.Label)))
		if g.talkative(profile) {
			add(g.pick(b.fillers))
		}

	case station.SegmentBetween:
		if g.talkative(profile) {
			add(g.pick(b.fillers))
		}
		add(ctx.HolidayLine)
		add(g.pick(b.transitions))

	case station.SegmentWeather:
		add(g.weatherLine(ctx, false))

	case station.SegmentWeatherFull:
		add(g.pick(b.greetings))
		add(g.weatherLine(ctx, true))
		add(g.pick(b.transitions))

	case station.SegmentNews:
		add(g.newsLines(ctx, 1))

	case station.SegmentNewsFull:
		add(g.pick(b.greetings))
		add("Het nieuws in het kort.")
		add(g.newsLines(ctx, 3))
		add(g.pick(b.transitions))

	case station.SegmentTime:
		add(fmt.Sprintf("Het is %s.", ctx.Time.Format("15:04")))
		add(g.pick(b.transitions))

	case station.SegmentStationID:
		add(fmt.Sprintf(g.pick(b.stationIDs), style.emph(profile.Label)))

	case station.SegmentFunFact:
		add(g.pick(b.funFacts))
		add(g.pick(b.transitions))

	case station.SegmentSongIntro:
		if ctx.TrackName != "" {
			add(fmt.Sprintf("Hier is %s van %s.", style.emph(ctx.TrackName), style.emph(ctx.ArtistName)))
		}
		add(g.pick(b.transitions))

	case station.SegmentJingle:
		add(fmt.Sprintf(g.pick(b.jingles), style.emph(profile.Label)))

	case station.SegmentOutro:
		add(g.pick(b.outros))
		add(fmt.Sprintf("Dit was %s.", style.emph(profile.Label)))

	default:
		add(g.pick(b.transitions))
	}

	text := strings.Join(parts, " "+pauseTag(style.SentencePauseMs)+" ")
	text = g.insertBreaths(text, profile.Tone, style)
	text = g.humanize(text, profile.Tone, b)
	return text
}

// pick selects a random phrase from the set.
func (g *Generator) pick(phrases []string) string {
	if len(phrases) == 0 {
		return ""
	}
	return phrases[g.rng.Intn(len(phrases))]
}

// talkative rolls against the station's talkativeness for optional filler
// parts.
func (g *Generator) talkative(profile *station.Profile) bool {
	return g.rng.Float64() < profile.Talkativeness
}

func (g *Generator) weatherLine(ctx Context, full bool) string {
	if !ctx.HasWeather {
		return "Het weerbericht laat even op zich wachten."
	}
	if full {
		return fmt.Sprintf("Even uitgebreid het weer: %s, en het is nu %.0f graden buiten.", ctx.WeatherSummary, ctx.TempC)
	}
	return fmt.Sprintf("Het weer: %s, %.0f graden.", ctx.WeatherSummary, ctx.TempC)
}

func (g *Generator) newsLines(ctx Context, max int) string {
	if len(ctx.Headlines) == 0 {
		return "Geen nieuws op dit moment, en dat is ook wel eens lekker."
	}
	n := len(ctx.Headlines)
	if n > max {
		n = max
	}
	return strings.Join(ctx.Headlines[:n], " ")
}

// insertBreaths probabilistically places breath marks between sentences.
// Quiet tones (chill, smooth) never breathe audibly.
func (g *Generator) insertBreaths(text string, tone station.Tone, style Style) string {
	if quietTone(tone) || style.BreathChance <= 0 {
		return text
	}
	sentences := strings.Split(text, ". ")
	if len(sentences) < 2 {
		return text
	}
	for i := 0; i < len(sentences)-1; i++ {
		if g.rng.Float64() < style.BreathChance {
			sentences[i] = sentences[i] + ". " + breathTag
		} else {
			sentences[i] = sentences[i] + "."
		}
	}
	return strings.Join(sentences, " ")
}

// humanize prefixes roughly a fifth of the non-first sentences with a
// conversational filler word. Skipped for quiet tones.
func (g *Generator) humanize(text string, tone station.Tone, b bank) string {
	if quietTone(tone) || len(b.humanizers) == 0 {
		return text
	}
	sentences := strings.Split(text, ". ")
	for i := 1; i < len(sentences); i++ {
		if g.rng.Float64() < humanizeChance {
			sentences[i] = g.pick(b.humanizers) + " " + lowerFirst(sentences[i])
		}
	}
	return strings.Join(sentences, ". ")
}

// lowerFirst lowercases the first letter unless the sentence starts with
// markup or an emphasized proper noun.
func lowerFirst(s string) string {
	if s == "" || strings.HasPrefix(s, "<") {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
