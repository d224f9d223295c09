// Package budget caps the tokens the language-interpretation service may consume per day and month.
package budget

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain"
	"github.com/kailas-cloud/cinefind/internal/metrics"
)

// Action defines behavior when the token budget is spent.
type Action string

const (
	// ActionWarn logs a warning but allows the request.
	ActionWarn Action = "warn"
	// ActionReject blocks the request; searches then run on fallback parameters.
	ActionReject Action = "reject"
)

// ParseAction returns the action named by s. Anything but "reject" warns.
func ParseAction(s string) Action {
	if Action(s) == ActionReject {
		return ActionReject
	}
	return ActionWarn
}

// Tracker is an in-memory token budget. Counters roll over at UTC day and month boundaries
// and start from zero on every process start.
type Tracker struct {
	mu              sync.Mutex
	dailyUsed       int64
	monthlyUsed     int64
	dailyRequests   int64
	monthlyRequests int64
	dailyLimit      int64
	monthlyLimit    int64
	action          Action
	model           string
	lastDayReset    time.Time
	lastMonthReset  time.Time
	now             func() time.Time
	logger          *zap.Logger
}

// NewTracker creates a tracker. A zero limit is unlimited.
func NewTracker(model string, dailyLimit, monthlyLimit int64, action Action, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
		action:       action,
		model:        model,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
	now := t.now()
	t.lastDayReset = truncateToDay(now)
	t.lastMonthReset = truncateToMonth(now)
	t.publish()
	return t
}

// Check verifies the budget allows a new request. Returns an error wrapping
// domain.ErrBudgetExhausted only when the action is reject.
func (t *Tracker) Check(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resetIfNeeded()

	dailyExceeded := t.dailyLimit > 0 && t.dailyUsed >= t.dailyLimit
	monthlyExceeded := t.monthlyLimit > 0 && t.monthlyUsed >= t.monthlyLimit
	if !dailyExceeded && !monthlyExceeded {
		return nil
	}

	metrics.LLMBudgetExceeded.WithLabelValues(t.model, string(t.action)).Inc()
	if t.action == ActionReject {
		return fmt.Errorf("%w: daily %d/%d, monthly %d/%d", domain.ErrBudgetExhausted,
			t.dailyUsed, t.dailyLimit, t.monthlyUsed, t.monthlyLimit)
	}

	t.logger.Warn("Token budget exceeded",
		zap.String("model", t.model),
		zap.Int64("daily_used", t.dailyUsed),
		zap.Int64("daily_limit", t.dailyLimit),
		zap.Int64("monthly_used", t.monthlyUsed),
		zap.Int64("monthly_limit", t.monthlyLimit),
	)
	return nil
}

// Record registers one completed request and the tokens it consumed.
func (t *Tracker) Record(tokens int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resetIfNeeded()
	t.dailyUsed += tokens
	t.monthlyUsed += tokens
	t.dailyRequests++
	t.monthlyRequests++
	t.publish()
}

// RemainingDaily returns tokens left in the daily budget (-1 if unlimited).
func (t *Tracker) RemainingDaily() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNeeded()
	return remaining(t.dailyLimit, t.dailyUsed)
}

// RemainingMonthly returns tokens left in the monthly budget (-1 if unlimited).
func (t *Tracker) RemainingMonthly() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNeeded()
	return remaining(t.monthlyLimit, t.monthlyUsed)
}

// DailyLimit returns the daily token cap.
func (t *Tracker) DailyLimit() int64 { return t.dailyLimit }

// MonthlyLimit returns the monthly token cap.
func (t *Tracker) MonthlyLimit() int64 { return t.monthlyLimit }

// DailyUsed returns tokens consumed today.
func (t *Tracker) DailyUsed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNeeded()
	return t.dailyUsed
}

// MonthlyUsed returns tokens consumed this month.
func (t *Tracker) MonthlyUsed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNeeded()
	return t.monthlyUsed
}

// DailyRequests returns requests recorded today.
func (t *Tracker) DailyRequests() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNeeded()
	return t.dailyRequests
}

// MonthlyRequests returns requests recorded this month.
func (t *Tracker) MonthlyRequests() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNeeded()
	return t.monthlyRequests
}

// resetIfNeeded zeroes counters when the day or month rolls over. Caller holds mu.
func (t *Tracker) resetIfNeeded() {
	now := t.now()
	today := truncateToDay(now)
	thisMonth := truncateToMonth(now)

	if today.After(t.lastDayReset) {
		t.dailyUsed, t.dailyRequests = 0, 0
		t.lastDayReset = today
	}
	if thisMonth.After(t.lastMonthReset) {
		t.monthlyUsed, t.monthlyRequests = 0, 0
		t.lastMonthReset = thisMonth
	}
}

// publish exports what is left of each capped window. Caller holds mu.
func (t *Tracker) publish() {
	if t.dailyLimit > 0 {
		metrics.LLMBudgetRemaining.WithLabelValues(t.model, "day").Set(float64(remaining(t.dailyLimit, t.dailyUsed)))
	}
	if t.monthlyLimit > 0 {
		metrics.LLMBudgetRemaining.WithLabelValues(t.model, "month").Set(float64(remaining(t.monthlyLimit, t.monthlyUsed)))
	}
}

func remaining(limit, used int64) int64 {
	if limit == 0 {
		return -1 // unlimited
	}
	if used >= limit {
		return 0
	}
	return limit - used
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
