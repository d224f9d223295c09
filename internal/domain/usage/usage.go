// Package usage describes interpreter token consumption over a budget window.
package usage

import "time"

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// ParsePeriod returns the period named by s. Empty defaults to month.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case "", PeriodMonth:
		return PeriodMonth, true
	case PeriodDay:
		return PeriodDay, true
	default:
		return "", false
	}
}

// Report is an interpreter usage snapshot for one budget window.
type Report struct {
	period      Period
	periodStart time.Time
	periodEnd   time.Time
	requests    int64
	tokens      int64
	limit       int64
	remaining   int64
}

// NewReport creates a usage report. A zero limit means unlimited.
func NewReport(period Period, start, end time.Time, requests, tokens, limit, remaining int64) Report {
	return Report{
		period:      period,
		periodStart: start,
		periodEnd:   end,
		requests:    requests,
		tokens:      tokens,
		limit:       limit,
		remaining:   remaining,
	}
}

// Period returns the aggregation granularity.
func (r Report) Period() Period { return r.period }

// PeriodStart returns the window start.
func (r Report) PeriodStart() time.Time { return r.periodStart }

// PeriodEnd returns the window end, which is also when the budget resets.
func (r Report) PeriodEnd() time.Time { return r.periodEnd }

// Requests returns the completed interpreter calls in the window.
func (r Report) Requests() int64 { return r.requests }

// Tokens returns the tokens consumed in the window.
func (r Report) Tokens() int64 { return r.tokens }

// Limit returns the token cap, 0 when unlimited.
func (r Report) Limit() int64 { return r.limit }

// Remaining returns tokens left, -1 when unlimited.
func (r Report) Remaining() int64 { return r.remaining }

// Exhausted reports whether a capped budget is spent.
func (r Report) Exhausted() bool { return r.limit > 0 && r.remaining <= 0 }
