package query

import "strings"

// Gazetteer is a static list of recognized city names, used when no
// prepositional pattern yields a candidate. Built once at startup, read-only
// afterwards.
type Gazetteer struct {
	cities []string
}

// defaultCities covers the places the system is most commonly asked about.
var defaultCities = []string{
	"hyderabad",
	"bangalore",
	"bengaluru",
	"delhi",
	"mumbai",
	"chennai",
	"kolkata",
	"pune",
	"london",
	"paris",
	"berlin",
	"tokyo",
	"new york",
}

func NewGazetteer(cities ...string) *Gazetteer {
	lowered := make([]string, 0, len(cities))
	for _, c := range cities {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			lowered = append(lowered, c)
		}
	}
	return &Gazetteer{cities: lowered}
}

func DefaultGazetteer() *Gazetteer {
	return NewGazetteer(defaultCities...)
}

// Lookup scans normalized text for a known city and returns it in lowercase.
// When several cities appear, the one mentioned last wins, matching the
// prepositional tie-break.
func (g *Gazetteer) Lookup(normalized string) (string, bool) {
	// Space padding keeps matches on whole words, so "londonderry" does not
	// count as "london". Normalized text is single-space separated.
	padded := " " + normalized + " "
	best, bestIdx := "", -1
	for _, city := range g.cities {
		idx := strings.LastIndex(padded, " "+city+" ")
		if idx < 0 {
			continue
		}
		// Prefer the later mention; on equal position prefer the longer name
		// so "new york" beats a hypothetical "york".
		if idx > bestIdx || (idx == bestIdx && len(city) > len(best)) {
			best, bestIdx = city, idx
		}
	}
	return best, bestIdx >= 0
}
