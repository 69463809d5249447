package matcher

import (
	"regexp"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	// strikeRe captures a dollar strike with optional thousands separators,
	// e.g. "$97,500" or "$97500.00".
	strikeRe = regexp.MustCompile(`\$(\d+(?:,\d{3})*(?:\.\d{2})?)`)
	// timeRe captures the settlement time-of-day immediately followed by the
	// UTC marker, e.g. "15:00 UTC".
	timeRe = regexp.MustCompile(`(\d{1,2}:\d{2})\s*UTC`)
)

// parsedTitle is the strike and settlement slot extracted from a market title.
type parsedTitle struct {
	strike decimal.Decimal
	slot   string
}

// maxParsedTitles bounds the memoization map. Titles repeat across polling
// cycles but churn as hourly markets roll over, so the map is reset rather
// than evicted entry-by-entry when full; one cycle refills the working set.
const maxParsedTitles = 200

// titleParser extracts (strike, time slot) from market titles and memoizes
// results per distinct title string.
type titleParser struct {
	mu    sync.Mutex
	cache map[string]parseEntry
}

type parseEntry struct {
	parsed parsedTitle
	ok     bool
}

func newTitleParser() *titleParser {
	return &titleParser{cache: make(map[string]parseEntry)}
}

// parse returns the strike and time slot encoded in title, or false when the
// title does not yield both fields. Unparsable titles are memoized too; they
// are the common case for markets outside the hourly series.
func (p *titleParser) parse(title string) (parsedTitle, bool) {
	p.mu.Lock()
	if e, ok := p.cache[title]; ok {
		p.mu.Unlock()
		return e.parsed, e.ok
	}
	p.mu.Unlock()

	parsed, ok := parseTitle(title)

	p.mu.Lock()
	if len(p.cache) >= maxParsedTitles {
		p.cache = make(map[string]parseEntry)
	}
	p.cache[title] = parseEntry{parsed: parsed, ok: ok}
	p.mu.Unlock()

	return parsed, ok
}

func parseTitle(title string) (parsedTitle, bool) {
	strikeMatch := strikeRe.FindStringSubmatch(title)
	timeMatch := timeRe.FindStringSubmatch(title)
	if strikeMatch == nil || timeMatch == nil {
		return parsedTitle{}, false
	}

	strike, err := decimal.NewFromString(strings.ReplaceAll(strikeMatch[1], ",", ""))
	if err != nil {
		return parsedTitle{}, false
	}

	return parsedTitle{strike: strike, slot: timeMatch[1]}, true
}
