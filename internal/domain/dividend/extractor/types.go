// Package extractor converts unstructured Korean brokerage notification text
// into structured dividend records. It is pure computation over the input
// string: no I/O, no shared state, and the reference date is injected so
// repeated calls with the same input and date are deterministic.
package extractor

// Currency is the settlement currency of a dividend payment.
type Currency string

const (
	CurrencyKRW Currency = "KRW"
	CurrencyUSD Currency = "USD"
)

// AccountType is the tax-treatment category of the receiving account.
type AccountType string

const (
	AccountRetirementPension AccountType = "퇴직연금"
	AccountPersonalPension   AccountType = "개인연금"
	AccountGeneral           AccountType = "일반계좌"
)

// Result is the structured output of a single-notification extraction.
// Absence of a match is not an error: unmatched fields hold their documented
// defaults (empty string, nil amount, the injected "today", KRW, 일반계좌).
type Result struct {
	BrokerageName string      `json:"brokerage_name"`
	SecurityName  string      `json:"security_name"`
	Amount        *float64    `json:"dividend_amount"`
	PaymentDate   string      `json:"payment_date"` // YYYY-MM-DD
	Currency      Currency    `json:"currency"`
	AccountNumber string      `json:"account_number"`
	AccountType   AccountType `json:"account_type"`
	Confidence    float64     `json:"confidence"`
}

// LineItem is one credited dividend extracted from a multi-line transaction
// statement. A line yields an item only when both a security name and a
// positive amount matched; anything else is dropped silently.
type LineItem struct {
	SecurityName string   `json:"security_name"`
	Amount       float64  `json:"amount"`
	Currency     Currency `json:"currency"`
	Date         string   `json:"date"` // YYYY-MM-DD
}

const dateLayout = "2006-01-02"
