package extractor

import (
	"time"

	"github.com/FACorreiaa/dividend-tracker/internal/domain/dividend/normalizer"
)

// ExtractNotification parses a single SMS-style brokerage notification into a
// structured result. Field extractors run independently over the full text;
// the account-type classifier runs last because it depends on the extracted
// currency and account number. now supplies the default payment date when no
// date pattern matches.
func ExtractNotification(text string, now time.Time) Result {
	res := Result{
		PaymentDate: now.Format(dateLayout),
		Currency:    CurrencyKRW,
		AccountType: AccountGeneral,
	}

	if name, ok := extractBrokerage(text); ok {
		res.BrokerageName = name
	}
	if name, ok := extractSecurity(text); ok {
		res.SecurityName = normalizer.Normalize(name)
	}
	if amount, currency, ok := extractAmount(text); ok {
		res.Amount = &amount
		res.Currency = currency
	}
	dateExtracted := false
	if date, ok := extractDate(text); ok {
		res.PaymentDate = date
		dateExtracted = true
	}
	if number, ok := extractAccountNumber(text); ok {
		res.AccountNumber = number
	}

	res.AccountType = classifyAccountType(text, res.AccountNumber, res.Currency)
	res.Confidence = scoreConfidence(res, dateExtracted)
	return res
}
