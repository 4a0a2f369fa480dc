package reconcile

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

func TestParseQuoteDate_TimeOfDay_MeansToday(t *testing.T) {
	got, err := ParseQuoteDate("14:30", testNow)
	if err != nil {
		t.Fatalf("ParseQuoteDate() error = %v, want nil", err)
	}
	if got != "2024-03-05" {
		t.Errorf("ParseQuoteDate(\"14:30\") = %q, want 2024-03-05", got)
	}
}

func TestParseQuoteDate_DayMonthYear(t *testing.T) {
	got, err := ParseQuoteDate("05/03/2024", testNow)
	if err != nil {
		t.Fatalf("ParseQuoteDate() error = %v, want nil", err)
	}
	if got != "2024-03-05" {
		t.Errorf("ParseQuoteDate(\"05/03/2024\") = %q, want 2024-03-05", got)
	}
}

func TestParseQuoteDate_FractionalTimestamp(t *testing.T) {
	got, err := ParseQuoteDate("2024-03-05 14:30:00.123456", testNow)
	if err != nil {
		t.Fatalf("ParseQuoteDate() error = %v, want nil", err)
	}
	if got != "2024-03-05" {
		t.Errorf("ParseQuoteDate(timestamp) = %q, want 2024-03-05", got)
	}
}

func TestParseQuoteDate_Empty_YieldsEmpty(t *testing.T) {
	got, err := ParseQuoteDate("", testNow)
	if err != nil {
		t.Fatalf("ParseQuoteDate(\"\") error = %v, want nil", err)
	}
	if got != "" {
		t.Errorf("ParseQuoteDate(\"\") = %q, want empty", got)
	}
}

func TestParseQuoteDate_SingleDigitFields(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9:05", "2024-03-05"},
		{"5/3/2024", "2024-03-05"},
		{"2024-3-5 9:5:1.1", "2024-03-05"},
	}

	for _, tc := range cases {
		got, err := ParseQuoteDate(tc.in, testNow)
		if err != nil {
			t.Errorf("ParseQuoteDate(%q) error = %v, want nil", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseQuoteDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseQuoteDate_UnrecognizedShape_ReturnsError(t *testing.T) {
	if _, err := ParseQuoteDate("yesterday", testNow); err == nil {
		t.Error("ParseQuoteDate(\"yesterday\") error = nil, want error")
	}
}
