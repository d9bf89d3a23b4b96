// Package normalizer reduces raw matched security names, in particular full
// ETF legal names, to their canonical short form. Truncation is an ordered
// pipeline of string transforms keyed by which brand matched: each rule
// operates on the output of the previous one, so order is load-bearing.
package normalizer

import (
	"regexp"
	"strings"
)

// transform is one step of a truncation pipeline: everything the pattern
// matches is replaced (usually deleted).
type transform struct {
	re   *regexp.Regexp
	repl string
}

// aceLegalName truncates 한국투자 ACE full legal names: drop the regulatory
// tail, the "(주식)" asset-class marker, and anything from the fund-type
// keywords onward.
var aceLegalName = []transform{
	{re: regexp.MustCompile(`증권상장지수투자신탁.*$`)},
	{re: regexp.MustCompile(`\(주식\).*$`)},
	{re: regexp.MustCompile(`ETF.*$`)},
	{re: regexp.MustCompile(`지수투자신탁.*$`)},
}

// tigerLegalName truncates 미래에셋 TIGER full legal names: additionally
// strips the asset-manager prefix before the shared tail rules.
var tigerLegalName = []transform{
	{re: regexp.MustCompile(`미래에셋\s*`)},
	{re: regexp.MustCompile(`증권상장지수투자신탁.*$`)},
	{re: regexp.MustCompile(`\(주식\).*$`)},
	{re: regexp.MustCompile(`ETF.*$`)},
	{re: regexp.MustCompile(`투자신탁.*$`)},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// dowJonesCanonical is forced whenever a truncated TIGER name still carries
// the 다우존스 index keyword; the remaining legal-name fragments vary between
// notification formats but all mean the same fund.
const dowJonesCanonical = "TIGER 미국배당다우존스"

// Normalize maps a raw matched security name to its canonical short form.
// Names without a known long-form marker pass through with only whitespace
// cleanup.
func Normalize(name string) string {
	name = strings.TrimSpace(name)

	switch {
	case strings.Contains(name, "한국투자 ACE"):
		name = applyAll(name, aceLegalName)
	case strings.Contains(name, "미래에셋 TIGER") || strings.Contains(name, "TIGER"):
		name = applyAll(name, tigerLegalName)
		if strings.Contains(name, "다우존스") {
			return dowJonesCanonical
		}
	}

	return strings.TrimSpace(whitespaceRun.ReplaceAllString(name, " "))
}

func applyAll(name string, pipeline []transform) string {
	for _, t := range pipeline {
		name = t.re.ReplaceAllString(name, t.repl)
	}
	return name
}
