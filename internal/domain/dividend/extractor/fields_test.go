package extractor

import "testing"

func TestExtractBrokerage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"[미래에셋증권] 권리 입금 안내", "미래에셋증권", true},
		{"[신한투자증권] 배당금 입금", "신한투자증권", true},
		{"키움 계좌로 입금되었습니다", "키움", true},
		{"토스증권 7월 거래내역", "토스증권", true},
		{"오늘 점심 약속", "", false},
	}

	for _, tc := range tests {
		got, ok := extractBrokerage(tc.input)
		if ok != tc.ok || got != tc.expected {
			t.Errorf("extractBrokerage(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		input    string
		amount   float64
		currency Currency
		ok       bool
	}{
		{"12,650원 배당금입금 처리되었습니다", 12650, CurrencyKRW, true},
		{"배정금액 : 11,798원(세전)", 11798, CurrencyKRW, true},
		{"배당금 1,200원이 입금되었습니다", 1200, CurrencyKRW, true},
		{"$5.14 입금", 5.14, CurrencyUSD, true},
		{"5.14 USD 입금", 5.14, CurrencyUSD, true},
		{"23.50 달러 입금", 23.5, CurrencyUSD, true},
		{"1,000,000원", 1000000, CurrencyKRW, true},
		{"금액 없음", 0, CurrencyKRW, false},
	}

	for _, tc := range tests {
		amount, currency, ok := extractAmount(tc.input)
		if ok != tc.ok {
			t.Errorf("extractAmount(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if amount != tc.amount || currency != tc.currency {
			t.Errorf("extractAmount(%q) = (%v, %s), want (%v, %s)", tc.input, amount, currency, tc.amount, tc.currency)
		}
	}
}

func TestExtractAmount_KRWWinsOverLaterDollar(t *testing.T) {
	// The KRW shapes sit earlier in the cascade; a text carrying both
	// markers resolves to the first winner.
	amount, currency, ok := extractAmount("1,200원 ($0.90) 입금")
	if !ok || amount != 1200 || currency != CurrencyKRW {
		t.Errorf("got (%v, %s, %v), want (1200, KRW, true)", amount, currency, ok)
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"2025.07.16 배당금입금", "2025-07-16", true},
		{"2024-03-15 입금", "2024-03-15", true},
		{"2024년 3월 5일 지급", "2024-03-05", true},
		{"3/5/2024 paid", "2024-03-05", true},
		{"2025.7.1", "2025-07-01", true},
		{"날짜 없음", "", false},
		{"2024.13.45 입금", "", false},
		{"2024-02-30 입금", "", false},
		{"2024.13.45 지급일 2025-07-15", "2025-07-15", true},
	}

	for _, tc := range tests {
		got, ok := extractDate(tc.input)
		if ok != tc.ok || got != tc.expected {
			t.Errorf("extractDate(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestExtractAccountNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"계좌 312-53-****480", "312-53-****480", true},
		{"계좌 133-46-****62", "133-46-****62", true},
		{"010-67**-**68-1", "010-67**-**68-1", true},
		{"계좌번호 123456789012", "123456789012", true},
		{"계좌 정보 없음", "", false},
	}

	for _, tc := range tests {
		got, ok := extractAccountNumber(tc.input)
		if ok != tc.ok || got != tc.expected {
			t.Errorf("extractAccountNumber(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestExtractAccountNumber_IgnoresSecurityCode(t *testing.T) {
	// A458730 is a security-code token, not an account number.
	got, ok := extractAccountNumber("A458730 미래에셋 TIGER 미국배당다우존스 ETF분배금입금")
	if ok {
		t.Errorf("expected no account number, got %q", got)
	}
}

func TestExtractSecurity_CodeTokenPrecedesName(t *testing.T) {
	text := "A458730 미래에셋 TIGER 미국배당다우존스증권상장지수투자신탁(주식) ETF분배금입금"
	got, ok := extractSecurity(text)
	if !ok {
		t.Fatal("expected a security match")
	}
	// The capture is the name after the code token, never the code itself.
	if got == "A458730" {
		t.Fatalf("captured the security code instead of the name")
	}
	if want := "미래에셋 TIGER 미국배당다우존스증권상장지수투자신탁(주식) ETF"; got != want {
		t.Errorf("extractSecurity = %q, want %q", got, want)
	}
}

func TestExtractSecurity_BrandAndStockNames(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SOL 미국배당미국채혼합50\n12,650원", "SOL 미국배당미국채혼합50"},
		{"삼성전자 배당금 1,200원", "삼성전자"},
		{"SCHD 배당 입금", "SCHD"},
		{"KODEX 배당성장 분배금", "KODEX 배당성장 분배금"},
	}

	for _, tc := range tests {
		got, ok := extractSecurity(tc.input)
		if !ok || got != tc.expected {
			t.Errorf("extractSecurity(%q) = (%q, %v), want %q", tc.input, got, ok, tc.expected)
		}
	}
}
