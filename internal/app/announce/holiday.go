package announce

import "time"

// Holiday is a detected holiday with a themed line the script generator can
// weave into intro and between segments.
type Holiday struct {
	Name string
	Line string
}

// fixedHolidays are month/day keyed holidays.
var fixedHolidays = map[[2]int]Holiday{
	{1, 1}:   {Name: "Nieuwjaar", Line: "Gelukkig nieuwjaar! Op naar een jaar vol goede muziek."},
	{2, 14}:  {Name: "Valentijnsdag", Line: "Fijne Valentijnsdag, deze is voor alle geliefden die meeluisteren."},
	{4, 27}:  {Name: "Koningsdag", Line: "Fijne Koningsdag! De hele dag oranje hits."},
	{10, 31}: {Name: "Halloween", Line: "Griezelig goede muziek vanavond, fijne Halloween."},
	{12, 5}:  {Name: "Sinterklaas", Line: "Fijne pakjesavond allemaal!"},
	{12, 25}: {Name: "Eerste Kerstdag", Line: "Vrolijk kerstfeest! Geniet van de warmte en de muziek."},
	{12, 26}: {Name: "Tweede Kerstdag", Line: "Nog steeds kerst, nog steeds goede muziek."},
	{12, 31}: {Name: "Oudjaar", Line: "De laatste dag van het jaar, we tellen samen af."},
}

// DetectHoliday reports the holiday on the given date, if any. Fixed-date
// holidays are checked first, then the Easter-relative ones.
func DetectHoliday(t time.Time) (Holiday, bool) {
	if h, ok := fixedHolidays[[2]int{int(t.Month()), t.Day()}]; ok {
		return h, true
	}

	// The offset compares calendar dates, so both instants are pinned to
	// midnight UTC regardless of the caller's zone.
	easter := easterSunday(t.Year())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	easterRelative := map[int]Holiday{
		-2: {Name: "Goede Vrijdag", Line: "Een ingetogen Goede Vrijdag gewenst."},
		0:  {Name: "Eerste Paasdag", Line: "Vrolijk Pasen allemaal!"},
		1:  {Name: "Tweede Paasdag", Line: "Fijne Tweede Paasdag, lekker lang weekend."},
		39: {Name: "Hemelvaartsdag", Line: "Fijne Hemelvaartsdag!"},
		49: {Name: "Eerste Pinksterdag", Line: "Fijn pinksterweekend!"},
	}
	offset := int(day.Sub(easter).Hours() / 24)
	if h, ok := easterRelative[offset]; ok {
		return h, true
	}

	return Holiday{}, false
}

// easterSunday computes Easter Sunday for a year using the anonymous
// Gregorian computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
