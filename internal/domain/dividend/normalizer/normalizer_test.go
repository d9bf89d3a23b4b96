package normalizer

import "testing"

func TestNormalize_TigerLegalName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Full legal name collapses to the canonical short form.
		{"미래에셋 TIGER 미국배당다우존스증권상장지수투자신탁(주식)", "TIGER 미국배당다우존스"},
		// Already-short Dow Jones names are forced to the same label.
		{"TIGER 미국배당다우존스 ETF", "TIGER 미국배당다우존스"},
		{"미래에셋 TIGER 미국배당다우존스", "TIGER 미국배당다우존스"},
		// Non-Dow-Jones TIGER funds keep their truncated name.
		{"TIGER 미국S&P500증권상장지수투자신탁(주식)", "TIGER 미국S&P500"},
		{"TIGER 200 ETF분배금입금", "TIGER 200"},
	}

	for _, tc := range tests {
		got := Normalize(tc.input)
		if got != tc.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestNormalize_AceLegalName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// ACE names keep the asset-manager prefix; only the legal tail goes.
		{"한국투자 ACE 미국배당다우존스증권상장지수투자신탁(주식)", "한국투자 ACE 미국배당다우존스"},
		{"한국투자 ACE 미국나스닥100지수투자신탁", "한국투자 ACE 미국나스닥100"},
		{"한국투자 ACE 미국30년국채액티브(주식) ETF", "한국투자 ACE 미국30년국채액티브"},
	}

	for _, tc := range tests {
		got := Normalize(tc.input)
		if got != tc.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestNormalize_Passthrough(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"삼성전자", "삼성전자"},
		{"  SOL  미국배당미국채혼합50  ", "SOL 미국배당미국채혼합50"},
		{"KODEX 배당성장", "KODEX 배당성장"},
		{"SCHD", "SCHD"},
		{"", ""},
	}

	for _, tc := range tests {
		got := Normalize(tc.input)
		if got != tc.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
