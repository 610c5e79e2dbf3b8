// Package amount mines a transcribed utterance for a monetary quantity.
//
// Patterns run most-specific first: a number anchored to spending words and a
// currency token beats a plain number-currency pair, which beats a bare
// integer. The first tier that matches wins; no match at all is a normal
// outcome (the user fills the amount in by hand), never an error.
package amount

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultMin and DefaultMax bound the plausibility window. Values
	// outside it are treated as noise (a year, a phone number fragment)
	// and extraction moves on to the next tier.
	DefaultMin = 0.01
	DefaultMax = 1_000_000
)

const currency = `(?:rupees?|rs\.?|dollars?|bucks?|usd|pesos?|euros?|\$|€|₹)`

// tier policies: context-anchored tiers take the first in-window match (the
// anchor already signals intent); the bare-integer fallback takes the largest
// in-window match, the amount usually being the most salient number in a
// short utterance. Known to misfire on multi-number utterances; see tests.
type policy int

const (
	firstMatch policy = iota
	largestMatch
)

type tier struct {
	re     *regexp.Regexp
	policy policy
}

var tiers = []tier{
	// "spent 50 dollars", "paid 2,500 rupees for ..."
	{regexp.MustCompile(`(?:for|paid|spent|cost|worth|price|bought)\s+([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*` + currency), firstMatch},
	// "50 dollars", "2,500 rs"
	{regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*` + currency), firstMatch},
	// "rupees 100", "$ 25.50"
	{regexp.MustCompile(currency + `\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`), firstMatch},
	// comma-grouped: "1,500", "12,345.67"
	{regexp.MustCompile(`\b([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?)\b`), firstMatch},
	// decimals: "25.50"
	{regexp.MustCompile(`\b([0-9]+\.[0-9]{1,2})\b`), firstMatch},
	// bare integers of plausible magnitude
	{regexp.MustCompile(`\b([1-9][0-9]{0,6})\b`), largestMatch},
}

// Extractor applies the pattern tiers with a configurable plausibility window.
type Extractor struct {
	min float64
	max float64
}

func NewExtractor(min, max float64) *Extractor {
	if min <= 0 {
		min = DefaultMin
	}
	if max <= min {
		max = DefaultMax
	}
	return &Extractor{min: min, max: max}
}

// Extract returns the first plausible amount found in priority order. The
// bool is false when no tier produced an in-window value.
func (e *Extractor) Extract(text string) (*float64, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	lower := strings.ToLower(text)

	for _, t := range tiers {
		matches := t.re.FindAllStringSubmatch(lower, -1)
		if len(matches) == 0 {
			continue
		}
		var best *float64
		for _, m := range matches {
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil || v < e.min || v > e.max {
				continue
			}
			switch t.policy {
			case firstMatch:
				val := v
				return &val, true
			case largestMatch:
				if best == nil || v > *best {
					val := v
					best = &val
				}
			}
		}
		if best != nil {
			return best, true
		}
		// every match in this tier was out of window; fall through
	}
	return nil, false
}
