package usage

import (
	"context"
	"testing"
	"time"

	domusage "github.com/kailas-cloud/cinefind/internal/domain/usage"
)

// --- Mock ---

type mockBudgetReader struct {
	dailyLimit       int64
	monthlyLimit     int64
	dailyUsed        int64
	monthlyUsed      int64
	remainingDaily   int64
	remainingMonthly int64
	dailyRequests    int64
	monthlyRequests  int64
}

func (m *mockBudgetReader) DailyLimit() int64       { return m.dailyLimit }
func (m *mockBudgetReader) MonthlyLimit() int64     { return m.monthlyLimit }
func (m *mockBudgetReader) DailyUsed() int64        { return m.dailyUsed }
func (m *mockBudgetReader) MonthlyUsed() int64      { return m.monthlyUsed }
func (m *mockBudgetReader) RemainingDaily() int64   { return m.remainingDaily }
func (m *mockBudgetReader) RemainingMonthly() int64 { return m.remainingMonthly }
func (m *mockBudgetReader) DailyRequests() int64    { return m.dailyRequests }
func (m *mockBudgetReader) MonthlyRequests() int64  { return m.monthlyRequests }

func fixedService(br BudgetReader) *Service {
	svc := New(br)
	svc.now = func() time.Time { return time.Date(2026, time.March, 14, 15, 4, 5, 0, time.UTC) }
	return svc
}

// --- Tests ---

func TestGetReport_DailyPeriod(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit:       10000,
		dailyUsed:        3000,
		remainingDaily:   7000,
		dailyRequests:    4,
		monthlyLimit:     100000,
		monthlyUsed:      50000,
		remainingMonthly: 50000,
	}
	r := fixedService(br).GetReport(context.Background(), domusage.PeriodDay)

	if r.Period() != domusage.PeriodDay {
		t.Errorf("expected period %q, got %q", domusage.PeriodDay, r.Period())
	}
	wantStart := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	if !r.PeriodStart().Equal(wantStart) {
		t.Errorf("expected period start %v, got %v", wantStart, r.PeriodStart())
	}
	if !r.PeriodEnd().Equal(wantStart.Add(24 * time.Hour)) {
		t.Errorf("unexpected period end %v", r.PeriodEnd())
	}
	if r.Limit() != 10000 || r.Remaining() != 7000 || r.Exhausted() {
		t.Errorf("unexpected budget %d / %d / %v", r.Limit(), r.Remaining(), r.Exhausted())
	}
	if r.Tokens() != 3000 || r.Requests() != 4 {
		t.Errorf("unexpected usage %d tokens / %d requests", r.Tokens(), r.Requests())
	}
}

func TestGetReport_MonthlyPeriod(t *testing.T) {
	br := &mockBudgetReader{
		monthlyLimit:     100000,
		monthlyUsed:      100000,
		remainingMonthly: 0,
		monthlyRequests:  12,
	}
	r := fixedService(br).GetReport(context.Background(), domusage.PeriodMonth)

	if !r.PeriodStart().Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected period start %v", r.PeriodStart())
	}
	if !r.PeriodEnd().Equal(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected period end %v", r.PeriodEnd())
	}
	if !r.Exhausted() {
		t.Error("budget should be exhausted")
	}
	if r.Requests() != 12 || r.Tokens() != 100000 {
		t.Errorf("unexpected usage %d requests / %d tokens", r.Requests(), r.Tokens())
	}
}

func TestGetReport_UnknownPeriodIsMonth(t *testing.T) {
	r := fixedService(&mockBudgetReader{}).GetReport(context.Background(), domusage.Period("total"))
	if r.Period() != domusage.PeriodMonth {
		t.Errorf("expected month, got %q", r.Period())
	}
}

func TestGetReport_NilBudget(t *testing.T) {
	r := fixedService(nil).GetReport(context.Background(), domusage.PeriodDay)

	if r.Limit() != 0 || r.Remaining() != -1 || r.Tokens() != 0 || r.Requests() != 0 {
		t.Errorf("expected unlimited empty report, got %+v", r)
	}
	if r.Exhausted() {
		t.Error("unlimited budget must not be exhausted")
	}
}
