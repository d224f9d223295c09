package budget

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain"
	"github.com/kailas-cloud/cinefind/internal/metrics"
)

func TestTracker_RejectWhenExceeded(t *testing.T) {
	bt := NewTracker("test", 100, 0, ActionReject, zap.NewNop())

	bt.Record(100)

	err := bt.Check(context.Background())
	if !errors.Is(err, domain.ErrBudgetExhausted) {
		t.Fatalf("expected domain.ErrBudgetExhausted, got %v", err)
	}
}

func TestTracker_WarnWhenExceeded(t *testing.T) {
	bt := NewTracker("test-warn", 100, 0, ActionWarn, zap.NewNop())
	before := testutil.ToFloat64(metrics.LLMBudgetExceeded.WithLabelValues("test-warn", "warn"))

	bt.Record(200)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for warn action, got %v", err)
	}
	after := testutil.ToFloat64(metrics.LLMBudgetExceeded.WithLabelValues("test-warn", "warn"))
	if after-before != 1 {
		t.Errorf("expected exceeded counter +1, got %v", after-before)
	}
}

func TestTracker_MonthlyReject(t *testing.T) {
	bt := NewTracker("test", 0, 500, ActionReject, zap.NewNop())

	bt.Record(500)

	if err := bt.Check(context.Background()); !errors.Is(err, domain.ErrBudgetExhausted) {
		t.Fatalf("expected domain.ErrBudgetExhausted for monthly limit, got %v", err)
	}
}

func TestTracker_UnlimitedWhenZero(t *testing.T) {
	bt := NewTracker("test", 0, 0, ActionReject, nil)

	bt.Record(999999999)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for unlimited budget, got %v", err)
	}
	if bt.RemainingDaily() != -1 || bt.RemainingMonthly() != -1 {
		t.Errorf("expected -1 for unlimited, got %d / %d", bt.RemainingDaily(), bt.RemainingMonthly())
	}
}

func TestTracker_Remaining(t *testing.T) {
	bt := NewTracker("test-remaining", 1000, 10000, ActionWarn, zap.NewNop())

	bt.Record(300)
	bt.Record(1)

	if got := bt.RemainingDaily(); got != 699 {
		t.Errorf("expected daily remaining 699, got %d", got)
	}
	if got := bt.RemainingMonthly(); got != 9699 {
		t.Errorf("expected monthly remaining 9699, got %d", got)
	}
	if bt.DailyRequests() != 2 || bt.MonthlyRequests() != 2 {
		t.Errorf("expected 2 requests, got %d / %d", bt.DailyRequests(), bt.MonthlyRequests())
	}
	if got := testutil.ToFloat64(metrics.LLMBudgetRemaining.WithLabelValues("test-remaining", "day")); got != 699 {
		t.Errorf("expected remaining gauge 699, got %v", got)
	}

	bt.Record(5000)
	if got := bt.RemainingDaily(); got != 0 {
		t.Errorf("overspent budget must report 0, got %d", got)
	}
}

func TestTracker_BelowLimitAllows(t *testing.T) {
	bt := NewTracker("test", 1000, 10000, ActionReject, zap.NewNop())

	bt.Record(500)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error when below limit, got %v", err)
	}
}

func TestTracker_DayRollover(t *testing.T) {
	bt := NewTracker("test", 100, 1000, ActionReject, zap.NewNop())
	clock := time.Date(2026, time.March, 14, 23, 0, 0, 0, time.UTC)
	bt.now = func() time.Time { return clock }
	bt.lastDayReset = truncateToDay(clock)
	bt.lastMonthReset = truncateToMonth(clock)

	bt.Record(100)
	if err := bt.Check(context.Background()); err == nil {
		t.Fatal("expected daily budget to be spent")
	}

	clock = clock.Add(2 * time.Hour) // next day, same month
	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected daily reset, got %v", err)
	}
	if bt.DailyUsed() != 0 || bt.MonthlyUsed() != 100 {
		t.Errorf("expected daily 0 and monthly 100, got %d / %d", bt.DailyUsed(), bt.MonthlyUsed())
	}

	clock = time.Date(2026, time.April, 1, 0, 30, 0, 0, time.UTC)
	if bt.MonthlyUsed() != 0 || bt.MonthlyRequests() != 0 {
		t.Errorf("expected monthly reset, got %d tokens / %d requests", bt.MonthlyUsed(), bt.MonthlyRequests())
	}
}

func TestTracker_ConcurrentRecord(t *testing.T) {
	bt := NewTracker("test", 0, 0, ActionWarn, zap.NewNop())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bt.Record(2)
			_ = bt.Check(context.Background())
		}()
	}
	wg.Wait()

	if bt.DailyUsed() != 100 || bt.DailyRequests() != 50 {
		t.Errorf("expected 100 tokens over 50 requests, got %d / %d", bt.DailyUsed(), bt.DailyRequests())
	}
}

func TestParseAction(t *testing.T) {
	if ParseAction("reject") != ActionReject {
		t.Error("expected reject")
	}
	for _, s := range []string{"", "warn", "REJECT", "block"} {
		if ParseAction(s) != ActionWarn {
			t.Errorf("ParseAction(%q) should warn", s)
		}
	}
}
