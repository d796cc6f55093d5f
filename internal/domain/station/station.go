// Package station provides the StationProfile domain entity and its value types.
package station

// Tone identifies the DJ speaking style of a station.
type Tone string

const (
	ToneEnergetic Tone = "energetic"
	ToneChill     Tone = "chill"
	ToneWarm      Tone = "warm"
	ToneSmooth    Tone = "smooth"
	ToneEdgy      Tone = "edgy"
)

// DJFrequency is the listener preference for how often the DJ speaks.
type DJFrequency string

const (
	FrequencyLow    DJFrequency = "low"
	FrequencyNormal DJFrequency = "normal"
	FrequencyHigh   DJFrequency = "high"
)

// SegmentType identifies a kind of spoken DJ segment.
type SegmentType string

const (
	SegmentIntro       SegmentType = "intro"
	SegmentBetween     SegmentType = "between"
	SegmentWeather     SegmentType = "weather"
	SegmentWeatherFull SegmentType = "weather_full"
	SegmentNews        SegmentType = "news"
	SegmentNewsFull    SegmentType = "news_full"
	SegmentTime        SegmentType = "time"
	SegmentStationID   SegmentType = "station_id"
	SegmentFunFact     SegmentType = "fun_fact"
	SegmentSongIntro   SegmentType = "song_intro"
	SegmentJingle      SegmentType = "jingle"
	SegmentOutro       SegmentType = "outro"
)

// Range is an inclusive integer range.
type Range struct {
	Min int
	Max int
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// VoiceProfile describes the synthesis voice of a station DJ.
type VoiceProfile struct {
	Voice string  // Synthesis voice identifier
	Rate  float64 // Speaking rate multiplier
	Pitch float64 // Pitch multiplier
}

// RotationWeights holds the configured current/recurrent/gold proportions.
// The rotation clock enforces these through a fixed slot pattern; the weights
// are kept on the profile for display and diagnostics.
type RotationWeights struct {
	Current   float64
	Recurrent float64
	Gold      float64
}

// Profile is the immutable per-station configuration.
// Loaded once at startup from static configuration, never mutated at runtime.
type Profile struct {
	ID              string
	Label           string
	YearRange       Range
	PopularityRange Range
	Rotation        RotationWeights
	Voice           VoiceProfile
	Tone            Tone
	Talkativeness   float64 // 0.0-1.0, chance of filler parts in scripts
	SegmentWeights  map[SegmentType]int
	SearchTerms     []string
	MinSongsBetween int // Minimum tracks between DJ breaks
	SongSpread      int // Randomized extra tracks added to the minimum
}
