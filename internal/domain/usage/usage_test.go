package usage

import (
	"testing"
	"time"
)

func TestNewReport(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	r := NewReport(PeriodMonth, start, end, 38, 384200, 1000000, 615800)

	if r.Period() != PeriodMonth {
		t.Errorf("Period() = %q", r.Period())
	}
	if !r.PeriodStart().Equal(start) || !r.PeriodEnd().Equal(end) {
		t.Errorf("unexpected window %v - %v", r.PeriodStart(), r.PeriodEnd())
	}
	if r.Requests() != 38 || r.Tokens() != 384200 {
		t.Errorf("unexpected usage %d requests / %d tokens", r.Requests(), r.Tokens())
	}
	if r.Limit() != 1000000 || r.Remaining() != 615800 || r.Exhausted() {
		t.Errorf("unexpected budget %d / %d / %v", r.Limit(), r.Remaining(), r.Exhausted())
	}
}

func TestReport_Exhausted(t *testing.T) {
	if !NewReport(PeriodDay, time.Time{}, time.Time{}, 1, 1000, 1000, 0).Exhausted() {
		t.Error("spent budget should be exhausted")
	}
	if NewReport(PeriodDay, time.Time{}, time.Time{}, 1, 1000, 0, -1).Exhausted() {
		t.Error("unlimited budget is never exhausted")
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
		ok   bool
	}{
		{"", PeriodMonth, true},
		{"month", PeriodMonth, true},
		{"day", PeriodDay, true},
		{"total", "", false},
		{"DAY", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePeriod(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePeriod(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
