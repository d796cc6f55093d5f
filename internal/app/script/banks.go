package script

import "github.com/mwindeman/djradio/internal/domain/station"

// bank holds the phrase sets for one station tone.
type bank struct {
	greetings   []string
	fillers     []string
	transitions []string
	stationIDs  []string // %s is replaced with the station label
	funFacts    []string
	jingles     []string // %s is replaced with the station label
	outros      []string
	humanizers  []string
}

// banks maps each tone to its phrase bank.
var banks = map[station.Tone]bank{
	station.ToneEnergetic: {
		greetings:   []string{"Goedemorgen allemaal!", "Hé, wat goed dat je er bent!", "Daar zijn we weer!"},
		fillers:     []string{"Het gaat hard vandaag.", "We knallen gewoon door.", "Geen tijd te verliezen."},
		transitions: []string{"Door met de muziek!", "Hier komt de volgende!", "Gas erop!"},
		stationIDs:  []string{"Je luistert naar %s, nonstop de beste hits!", "%s, altijd aan!"},
		funFacts:    []string{"Wist je dat de langste gitaarsolo ooit ruim een uur duurde?", "Wist je dat vinyl alweer populairder is dan cd's?"},
		jingles:     []string{"%s. Meer hits, meer energie."},
		outros:      []string{"Dat was het weer, tot de volgende keer!"},
		humanizers:  []string{"Nou,", "Hé,", "Oké,"},
	},
	station.ToneChill: {
		greetings:   []string{"Hallo daar.", "Fijn dat je luistert."},
		fillers:     []string{"Neem het er even van.", "Leun lekker achterover."},
		transitions: []string{"We gaan rustig verder.", "Hier is er nog een."},
		stationIDs:  []string{"Dit is %s, rustig aan.", "%s, muziek om bij weg te dromen."},
		funFacts:    []string{"Wist je dat langzame muziek je hartslag echt kan verlagen?"},
		jingles:     []string{"%s. Adem in, adem uit."},
		outros:      []string{"Dank voor het luisteren, rust zacht."},
		humanizers:  []string{},
	},
	station.ToneWarm: {
		greetings:   []string{"Welkom terug, fijn dat je er weer bent.", "Goedendag, wat gezellig."},
		fillers:     []string{"We maken er weer wat moois van samen.", "Het is goed toeven hier."},
		transitions: []string{"Luister maar lekker mee.", "Daar gaan we weer."},
		stationIDs:  []string{"Je bent bij %s, muziek als thuiskomen.", "%s, voor elk moment van de dag."},
		funFacts:    []string{"Wist je dat samen zingen aantoonbaar gelukkiger maakt?", "Wist je dat de eerste radio-uitzending van Nederland uit 1919 stamt?"},
		jingles:     []string{"%s. Muziek als thuiskomen."},
		outros:      []string{"Bedankt voor je gezelschap, tot snel."},
		humanizers:  []string{"Nou,", "Zeg,"},
	},
	station.ToneSmooth: {
		greetings:   []string{"Goedenavond.", "Mooi dat je aangeschoven bent."},
		fillers:     []string{"De avond is nog jong.", "Alles op z'n tijd."},
		transitions: []string{"We glijden door naar de volgende.", "Hier komt iets moois."},
		stationIDs:  []string{"Dit is %s, de zachte kant van de nacht.", "%s, stijlvol verder."},
		funFacts:    []string{"Wist je dat saxofonist Adolphe Sax zijn instrument in 1846 patenteerde?"},
		jingles:     []string{"%s. Smaakvol, de klok rond."},
		outros:      []string{"Tot een volgende avond."},
		humanizers:  []string{},
	},
	station.ToneEdgy: {
		greetings:   []string{"Yo, daar zijn we weer.", "Wakker worden, het gaat los."},
		fillers:     []string{"Geen gepolijst gedoe hier.", "Rauw en ongefilterd."},
		transitions: []string{"Volgende plaat, knallen.", "Door, geen gezeur."},
		stationIDs:  []string{"Je zit bij %s, en dat hoor je.", "%s. Anders dan de rest."},
		funFacts:    []string{"Wist je dat de eerste punksingle in drie uur is opgenomen?"},
		jingles:     []string{"%s. Luid en duidelijk."},
		outros:      []string{"Klaar voor vandaag. Later."},
		humanizers:  []string{"Hé,", "Luister,"},
	},
}

// bankFor returns the phrase bank for a tone, defaulting to warm.
func bankFor(tone station.Tone) bank {
	if b, ok := banks[tone]; ok {
		return b
	}
	return banks[station.ToneWarm]
}
