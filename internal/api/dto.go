package api

import (
	"github.com/vovakirdan/chaos-economy/internal/economy"
	"github.com/vovakirdan/chaos-economy/internal/session"
	"github.com/vovakirdan/chaos-economy/internal/storage"
)

// CreateSessionRequest is the optional body of POST /sessions.
type CreateSessionRequest struct {
	Seed int64 `json:"seed"` // 0 = time-based
}

// RoundRequest carries one period's consumption.
type RoundRequest struct {
	Consumption *int `json:"consumption"` // Whole, non-negative amount
}

// RoundResponse pairs a resolved round with the session after it.
type RoundResponse struct {
	Round   economy.ResolverResult `json:"round"`
	Session session.Snapshot       `json:"session"`
}

// ResultsResponse lists the longest-surviving games.
type ResultsResponse struct {
	Results []storage.ResultEntry `json:"results"`
}

// PublicPeriod is a period table row without the price columns.
// CPI and inflation compound into the minimum spend, so neither is served.
type PublicPeriod struct {
	Period    int     `json:"period"`
	Wage      float64 `json:"wage"`
	GDPIndex  float64 `json:"gdp_index"`
	GrowthPct float64 `json:"growth_pct"`
}

// TableResponse is the public view of the loaded period table.
type TableResponse struct {
	Version string         `json:"version"`
	Periods []PublicPeriod `json:"periods"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toTableResponse(t *economy.Table) TableResponse {
	records := t.Records()
	periods := make([]PublicPeriod, len(records))
	for i, r := range records {
		periods[i] = PublicPeriod{
			Period:    r.Period,
			Wage:      r.Wage,
			GDPIndex:  r.GDPIndex,
			GrowthPct: r.GrowthPct,
		}
	}
	return TableResponse{Version: t.Version(), Periods: periods}
}
