package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/cinefind/internal/domain/usage"
)

// Service handles usage reporting.
type Service struct {
	br  BudgetReader
	now func() time.Time
}

// New creates a Service. br can be nil (no budget configured).
func New(br BudgetReader) *Service {
	return &Service{br: br, now: func() time.Time { return time.Now().UTC() }}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now()
	var start, end time.Time
	var requests, used, limit int64
	remaining := int64(-1)

	switch period {
	case domusage.PeriodDay:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = start.Add(24 * time.Hour)
		if s.br != nil {
			requests, used = s.br.DailyRequests(), s.br.DailyUsed()
			limit, remaining = s.br.DailyLimit(), s.br.RemainingDaily()
		}
	default:
		period = domusage.PeriodMonth
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
		if s.br != nil {
			requests, used = s.br.MonthlyRequests(), s.br.MonthlyUsed()
			limit, remaining = s.br.MonthlyLimit(), s.br.RemainingMonthly()
		}
	}

	return domusage.NewReport(period, start, end, requests, used, limit, remaining)
}
