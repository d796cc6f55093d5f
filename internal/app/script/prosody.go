// Package script produces spoken DJ text per segment type, station tone, and
// voice profile. The output carries lightweight markup (pause, emphasis, and
// breath directives) consumed by the synthesis service.
package script

import (
	"fmt"

	"github.com/mwindeman/djradio/internal/domain/station"
)

// Style holds the tone-specific prosody parameters applied when rendering
// spoken text.
type Style struct {
	SentencePauseMs int
	CommaPauseMs    int
	BreathChance    float64
	Emphasis        string // emphasis strength: "moderate" or "strong"
}

// styles maps each station tone to its prosody style. Chill and smooth tones
// speak slower with longer pauses and never take audible breaths.
var styles = map[station.Tone]Style{
	station.ToneEnergetic: {SentencePauseMs: 300, CommaPauseMs: 120, BreathChance: 0.25, Emphasis: "strong"},
	station.ToneChill:     {SentencePauseMs: 650, CommaPauseMs: 280, BreathChance: 0, Emphasis: "moderate"},
	station.ToneWarm:      {SentencePauseMs: 450, CommaPauseMs: 200, BreathChance: 0.15, Emphasis: "moderate"},
	station.ToneSmooth:    {SentencePauseMs: 550, CommaPauseMs: 240, BreathChance: 0, Emphasis: "moderate"},
	station.ToneEdgy:      {SentencePauseMs: 350, CommaPauseMs: 140, BreathChance: 0.2, Emphasis: "strong"},
}

// StyleFor returns the prosody style for a tone, defaulting to warm.
func StyleFor(tone station.Tone) Style {
	if s, ok := styles[tone]; ok {
		return s
	}
	return styles[station.ToneWarm]
}

// quietTone reports whether the tone skips breath marks and humanization.
func quietTone(tone station.Tone) bool {
	return tone == station.ToneChill || tone == station.ToneSmooth
}

// pauseTag renders a pause directive.
func pauseTag(ms int) string {
	return fmt.Sprintf(`<break ms="%d"/>`, ms)
}

// emph wraps a proper noun in an emphasis directive.
func (s Style) emph(text string) string {
	return fmt.Sprintf(`<em level=%q>%s</em>`, s.Emphasis, text)
}

// breathTag is the breath directive inserted between sentences.
const breathTag = "<breath/>"
