package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/dividend-tracker/internal/domain/dividend/normalizer"
)

// Statement context for the transaction-listing format: the institution whose
// app produces these screenshots and the account class it books dividends
// into. Every line item from one blob shares this context.
const (
	StatementBrokerage   = "토스증권"
	StatementAccountType = AccountGeneral
)

var dividendKeyword = regexp.MustCompile(`배당|분배금|ETF`)

// creditMarker requires a leading + before a digit: credited cash, as the
// statement renders deposits.
var creditMarker = regexp.MustCompile(`\+\s*[$]?\d`)

// lineExclusions disqualify a line outright: FX conversions, withdrawals,
// buys, sells, KRW↔USD conversion arrows, debits, and OCR color-label
// artifacts leaking out of the app UI.
var lineExclusions = []*regexp.Regexp{
	regexp.MustCompile(`환전`),
	regexp.MustCompile(`출금`),
	regexp.MustCompile(`구매|매수`),
	regexp.MustCompile(`판매|매도`),
	regexp.MustCompile(`(?:원|KRW)\s*(?:→|↔)\s*(?:달러|USD)|(?:달러|USD)\s*(?:→|↔)\s*(?:원|KRW)`),
	regexp.MustCompile(`(?:^|\s)-\s*\d`),
	regexp.MustCompile(`파란색|blue`),
}

// statementSecurityRules is the brand cascade scoped to names that actually
// appear on these statements; the positional heuristics of the notification
// cascade would misfire on tabular OCR output.
var statementSecurityRules = []rule{
	{re: regexp.MustCompile(`(TIGER ?[가-힣A-Za-z0-9& ]+)`)},
	{re: regexp.MustCompile(`(SOL ?[가-힣A-Za-z0-9 ]+)`)},
	{re: regexp.MustCompile(`(KODEX ?[가-힣A-Za-z0-9 ]+)`)},
	{re: regexp.MustCompile(`(ACE ?[가-힣A-Za-z0-9 ]+)`)},
	{re: regexp.MustCompile(`(ARIRANG ?[가-힣A-Za-z0-9 ]+)`)},
	{re: regexp.MustCompile(`(삼성전자|LG화학|SK하이닉스|현대차|기아|포스코|NAVER|카카오|네이버)`)},
	{re: regexp.MustCompile(`([A-Z]{2,5})\s*배당`)},
}

// creditAmountRules only accept amounts behind the + credit marker.
var creditAmountRules = []amountRule{
	{re: regexp.MustCompile(`\+\s*(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*달러`), usd: true},
	{re: regexp.MustCompile(`\+\s*\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d+)?)`), usd: true},
	{re: regexp.MustCompile(`\+\s*(\d{1,3}(?:,\d{3})*)\s*원`)},
}

// Day-of-month shapes on the statement: "16일 (수)", bare "16일". A bare month
// token anywhere in the combined text supplies the month; the injected date
// supplies year and any missing component.
var dayRules = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})일\s*\([가-힣]\)`),
	regexp.MustCompile(`(\d{1,2})일`),
}

var monthToken = regexp.MustCompile(`(\d{1,2})월`)

// ExtractLineItems parses an OCR'd transaction-history blob into zero or more
// credited dividend line items. Each line is screened for a dividend keyword,
// a credit marker, and the absence of exclusion keywords; qualifying lines
// are parsed together with the following line because OCR output splits
// fields across lines. Lines missing a security name or a positive amount
// are dropped without error.
func ExtractLineItems(text string, now time.Time) []LineItem {
	lines := strings.Split(text, "\n")
	var items []LineItem
	for i, line := range lines {
		if !isCandidateLine(line) {
			continue
		}
		combined := line
		if i+1 < len(lines) {
			combined = line + " " + lines[i+1]
		}
		if item, ok := parseLineItem(combined, now); ok {
			items = append(items, item)
		}
	}
	return items
}

func isCandidateLine(line string) bool {
	if !dividendKeyword.MatchString(line) || !creditMarker.MatchString(line) {
		return false
	}
	for _, re := range lineExclusions {
		if re.MatchString(line) {
			return false
		}
	}
	return true
}

func parseLineItem(combined string, now time.Time) (LineItem, bool) {
	name, ok := firstMatch(combined, statementSecurityRules)
	if !ok {
		return LineItem{}, false
	}
	name = normalizer.Normalize(strings.TrimSpace(name))
	if name == "" {
		return LineItem{}, false
	}

	amount, currency, ok := matchAmount(combined, creditAmountRules)
	if !ok || amount <= 0 {
		return LineItem{}, false
	}

	return LineItem{
		SecurityName: name,
		Amount:       amount,
		Currency:     currency,
		Date:         lineItemDate(combined, now),
	}, true
}

func lineItemDate(combined string, now time.Time) string {
	if date, ok := extractDate(combined); ok {
		return date
	}

	day := 0
	for _, re := range dayRules {
		if m := re.FindStringSubmatch(combined); m != nil {
			day, _ = strconv.Atoi(m[1])
			break
		}
	}
	if day < 1 || day > 31 {
		return now.Format(dateLayout)
	}

	month := int(now.Month())
	if m := monthToken.FindStringSubmatch(combined); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v >= 1 && v <= 12 {
			month = v
		}
	}
	candidate := fmt.Sprintf("%04d-%02d-%02d", now.Year(), month, day)
	if _, err := time.Parse(dateLayout, candidate); err != nil {
		return now.Format(dateLayout)
	}
	return candidate
}
