package chi

import (
	"net/http"

	domusage "github.com/kailas-cloud/cinefind/internal/domain/usage"
)

// UsageResponse is the GET /api/usage body. Timestamps are Unix milliseconds.
type UsageResponse struct {
	Period      string      `json:"period"`
	PeriodStart int64       `json:"period_start"`
	PeriodEnd   int64       `json:"period_end"`
	Requests    int64       `json:"requests"`
	Tokens      int64       `json:"tokens"`
	Budget      UsageBudget `json:"budget"`
}

// UsageBudget describes the token cap of the reported window.
type UsageBudget struct {
	TokensLimit     int64 `json:"tokens_limit"`
	TokensRemaining int64 `json:"tokens_remaining"`
	IsExhausted     bool  `json:"is_exhausted"`
	ResetsAt        int64 `json:"resets_at"`
}

// GetUsage handles GET /api/usage?period=day|month.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period, ok := domusage.ParsePeriod(r.URL.Query().Get("period"))
	if !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest, msgInvalidRequest)
		return
	}

	report := s.usage.GetReport(r.Context(), period)
	writeJSON(w, http.StatusOK, UsageResponse{
		Period:      string(report.Period()),
		PeriodStart: report.PeriodStart().UnixMilli(),
		PeriodEnd:   report.PeriodEnd().UnixMilli(),
		Requests:    report.Requests(),
		Tokens:      report.Tokens(),
		Budget: UsageBudget{
			TokensLimit:     report.Limit(),
			TokensRemaining: report.Remaining(),
			IsExhausted:     report.Exhausted(),
			ResetsAt:        report.PeriodEnd().UnixMilli(),
		},
	})
}
