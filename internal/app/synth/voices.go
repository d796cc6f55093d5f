package synth

// Voice describes an available synthesis voice.
type Voice struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Language string `json:"language"`
	Gender   string `json:"gender"`
}

// voices is the static catalog of available voice identifiers.
var voices = []Voice{
	{ID: "nova", Label: "Nova", Language: "nl-NL", Gender: "female"},
	{ID: "daan", Label: "Daan", Language: "nl-NL", Gender: "male"},
	{ID: "fleur", Label: "Fleur", Language: "nl-NL", Gender: "female"},
	{ID: "ruben", Label: "Ruben", Language: "nl-NL", Gender: "male"},
	{ID: "aria", Label: "Aria", Language: "en-US", Gender: "female"},
	{ID: "cole", Label: "Cole", Language: "en-US", Gender: "male"},
}

// Voices returns the static voice catalog.
func Voices() []Voice {
	return voices
}
