package extractor

import "regexp"

// accountNumberTypeRules are hardcoded special cases tied to real account
// number suffixes. Suffix digits are a more reliable signal than free-text
// keywords for a closed, personally-known set of accounts, so these run
// before any keyword scanning.
var accountNumberTypeRules = []struct {
	re  *regexp.Regexp
	typ AccountType
}{
	{regexp.MustCompile(`010-67\*\*-\*\*68-0`), AccountGeneral},
	{regexp.MustCompile(`010-67\*\*-\*\*68-[12]`), AccountPersonalPension},
	// 133-46-****62 is a legacy 연금(구) account.
	{regexp.MustCompile(`133-46-\*{4}62`), AccountPersonalPension},
}

// keywordTypeRules scan the full text for account-type keyword groups,
// first match wins.
var keywordTypeRules = []struct {
	re  *regexp.Regexp
	typ AccountType
}{
	{regexp.MustCompile(`퇴직연금|개인형\s*IRP|IRP`), AccountRetirementPension},
	{regexp.MustCompile(`연금\(신\)|연금\(구\)|KB연금|연금계좌`), AccountPersonalPension},
	{regexp.MustCompile(`일반계좌|종합.*주식|직투|위탁`), AccountGeneral},
}

// classifyAccountType resolves the account type through a prioritized
// cascade: USD settlements always book into a general brokerage account and
// short-circuit everything else, then account-number special cases, then
// textual keywords, then the general-account default.
func classifyAccountType(text, accountNumber string, currency Currency) AccountType {
	if currency == CurrencyUSD {
		return AccountGeneral
	}
	if accountNumber != "" {
		for _, r := range accountNumberTypeRules {
			if r.re.MatchString(accountNumber) {
				return r.typ
			}
		}
	}
	for _, r := range keywordTypeRules {
		if r.re.MatchString(text) {
			return r.typ
		}
	}
	return AccountGeneral
}
