package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Brokerage name: bracket-delimited institution names first, then known
// institution literals in descending specificity.
var brokerageRules = []rule{
	{re: regexp.MustCompile(`\[([^\]]*증권[^\]]*)\]`)},
	{re: regexp.MustCompile(`\[([^\]]*투자[^\]]*)\]`)},
	{re: regexp.MustCompile(`미래에셋증권|미래에셋`)},
	{re: regexp.MustCompile(`신한투자증권|신한투자`)},
	{re: regexp.MustCompile(`키움증권|키움`)},
	{re: regexp.MustCompile(`삼성증권|삼성투자`)},
	{re: regexp.MustCompile(`NH투자증권|NH증권`)},
	{re: regexp.MustCompile(`한국투자증권|한투증권|한투`)},
	{re: regexp.MustCompile(`대신증권`)},
	{re: regexp.MustCompile(`하나금융투자|하나증권`)},
	{re: regexp.MustCompile(`KB증권`)},
	{re: regexp.MustCompile(`토스증권`)},
	{re: regexp.MustCompile(`카카오페이증권`)},
	{re: regexp.MustCompile(`유안타증권`)},
	{re: regexp.MustCompile(`교보증권`)},
	{re: regexp.MustCompile(`IBK투자증권`)},
	{re: regexp.MustCompile(`현대차증권`)},
}

var bracketStripper = strings.NewReplacer("[", "", "]", "")

func extractBrokerage(text string) (string, bool) {
	name, ok := firstMatch(text, brokerageRules)
	if !ok {
		return "", false
	}
	return bracketStripper.Replace(name), true
}

// securityCodeName matches a security-code token (letter + digits) followed by
// a full name anchored by an ETF/trust-fund suffix keyword. It runs before all
// other security rules, and before account-number extraction considers the
// text, because the code token superficially resembles a masked account
// number and must win that collision.
var securityCodeName = regexp.MustCompile(`([A-Z]\d+)\s+([가-힣A-Za-z0-9\s&()]+(?:ETF|투자신탁|지수투자신탁)(?:\([가-힣]+\))?)`)

// Security name cascade: full ETF legal-name patterns (suffix-anchored), then
// brand-prefixed short names, then well-known single stocks, then a foreign
// ticker fallback, then the weakest positional heuristics. The brand short
// patterns deliberately use a literal space class so a capture never leaks
// past the end of its line.
var securityRules = []rule{
	{re: securityCodeName, handle: func(m []string) string { return m[2] }},
	{re: regexp.MustCompile(`(한국투자\s*ACE\s*[가-힣A-Za-z0-9&\s()]+(?:ETF|투자신탁|지수투자신탁))`)},
	{re: regexp.MustCompile(`(미래에셋\s*TIGER\s*[가-힣A-Za-z0-9&\s()]+(?:ETF|투자신탁))`)},
	{re: regexp.MustCompile(`(TIGER\s*[가-힣A-Za-z0-9&\s()]+(?:ETF|투자신탁|지수투자신탁))`)},
	{re: regexp.MustCompile(`(미래에셋\s*[가-힣A-Za-z0-9&\s()]+(?:ETF|투자신탁))`)},
	{re: regexp.MustCompile(`(SOL ?[가-힣A-Za-z0-9 ]+)`)},
	{re: regexp.MustCompile(`(TIGER ?[가-힣A-Za-z0-9& ]+)`)},
	{re: regexp.MustCompile(`(KODEX ?[가-힣A-Za-z0-9 ]+)`)},
	{re: regexp.MustCompile(`(ACE ?[가-힣A-Za-z0-9 ]+)`)},
	{re: regexp.MustCompile(`(ARIRANG ?[가-힣A-Za-z0-9 ]+)`)},
	{re: regexp.MustCompile(`(삼성전자|LG화학|SK하이닉스|현대차|기아|포스코|NAVER|카카오|네이버)`)},
	{re: regexp.MustCompile(`([A-Z]{2,5})\s*배당`)},
	{re: regexp.MustCompile(`\n([가-힣A-Za-z0-9 &]+)\n.*?배당금`)},
	{re: regexp.MustCompile(`계좌\s*[0-9\-*]+\s*\n([가-힣A-Za-z0-9 &]+)`)},
}

func extractSecurity(text string) (string, bool) {
	name, ok := firstMatch(text, securityRules)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(name), true
}

// Amount + currency cascade: KRW-suffixed numeric shapes first, then dollar
// shapes. Thousands separators are stripped before parsing; a dollar-marked
// winning pattern forces USD.
var amountRules = []amountRule{
	{re: regexp.MustCompile(`(\d{1,3}(?:,\d{3})*)\s*원`)},
	{re: regexp.MustCompile(`(\d+,?\d*)\s*원\s*.*?배당금`)},
	{re: regexp.MustCompile(`배당금.*?(\d{1,3}(?:,\d{3})*)\s*원`)},
	{re: regexp.MustCompile(`배정금액\s*[:：]\s*(\d{1,3}(?:,\d{3})*)\s*원`)},
	{re: regexp.MustCompile(`입금.*?(\d{1,3}(?:,\d{3})*)\s*원`)},
	{re: regexp.MustCompile(`(\d{1,3}(?:,\d{3})*)\s*원\s*\(세전\)`)},
	{re: regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), usd: true},
	{re: regexp.MustCompile(`(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*USD`), usd: true},
	{re: regexp.MustCompile(`(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*달러`), usd: true},
}

func extractAmount(text string) (float64, Currency, bool) {
	return matchAmount(text, amountRules)
}

func matchAmount(text string, rules []amountRule) (float64, Currency, bool) {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		currency := CurrencyKRW
		if r.usd {
			currency = CurrencyUSD
		}
		return value, currency, true
	}
	return 0, CurrencyKRW, false
}

// Payment date cascade: four literal shapes, single-digit components
// zero-padded. An assembly that is not a real calendar date (month 13, Feb 30)
// counts as no match for that rule. No match at all leaves the caller's
// default (the injected "today").
var paymentDateRules = []dateRule{
	{re: regexp.MustCompile(`(\d{4})\.(\d{1,2})\.(\d{1,2})`)},
	{re: regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)},
	{re: regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)},
	{re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`), mdy: true},
}

func extractDate(text string) (string, bool) {
	for _, r := range paymentDateRules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year, month, day := m[1], m[2], m[3]
		if r.mdy {
			year, month, day = m[3], m[1], m[2]
		}
		mo, _ := strconv.Atoi(month)
		d, _ := strconv.Atoi(day)
		candidate := fmt.Sprintf("%s-%02d-%02d", year, mo, d)
		if _, err := time.Parse(dateLayout, candidate); err != nil {
			continue
		}
		return candidate, true
	}
	return "", false
}

// Masked account number cascade: known institution masking shapes, longest
// suffix first so a three-digit tail is never truncated to two, then a bare
// long-digit run. Security-code tokens (letter + digits) never reach this
// cascade; the security-name extractor consumes them with priority.
var accountNumberRules = []rule{
	{re: regexp.MustCompile(`(\d{3}-\d{2}-\*{4}\d{3})`)},
	{re: regexp.MustCompile(`(\d{3}-\d{2}-\*{4}\d{2})`)},
	{re: regexp.MustCompile(`(\d{3}-\d{2}\*{2}-\*{2}\d{2}-\d)`)},
	{re: regexp.MustCompile(`(\d{10,15})`)},
}

func extractAccountNumber(text string) (string, bool) {
	return firstMatch(text, accountNumberRules)
}
