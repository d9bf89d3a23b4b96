package extractor

import "regexp"

// rule pairs a compiled pattern with an optional handler that turns its
// submatches into the extracted value. Rules in a cascade are hand-ordered
// from most specific to most general; the first rule that matches wins and
// iteration stops. Precision over recall: no attempt is made to find a
// "better" match after the first hit.
type rule struct {
	re     *regexp.Regexp
	handle func(m []string) string
}

// firstMatch runs an ordered rule cascade against text and returns the first
// rule's extracted value. Without a handler, the first capture group wins,
// falling back to the whole match for group-less literal patterns.
func firstMatch(text string, rules []rule) (string, bool) {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if r.handle != nil {
			return r.handle(m), true
		}
		if len(m) > 1 && m[1] != "" {
			return m[1], true
		}
		return m[0], true
	}
	return "", false
}

// amountRule is a cascade entry for monetary patterns. Patterns whose source
// text carries a dollar marker ($, USD, 달러) force the currency to USD.
type amountRule struct {
	re  *regexp.Regexp
	usd bool
}

// dateRule is a cascade entry for literal date shapes. Captures are
// year/month/day unless mdy is set (MM/DD/YYYY ordering).
type dateRule struct {
	re  *regexp.Regexp
	mdy bool
}
