package journal

import "trade-journal-go/internal/models"

// Stats is an aggregate view over a set of trades.
type Stats struct {
	TotalTrades     int            `json:"total_trades"`
	Wins            int            `json:"wins"`
	Losses          int            `json:"losses"`
	Breakevens      int            `json:"breakevens"`
	WinRate         float64        `json:"win_rate"`
	GrossProfit     float64        `json:"gross_profit"`
	TotalCommission float64        `json:"total_commission"`
	NetProfit       float64        `json:"net_profit"`
	BySession       map[string]int `json:"by_session"`
}

// ComputeStats aggregates win rate, money totals and session counts.
func ComputeStats(trades []models.Trade) Stats {
	stats := Stats{BySession: make(map[string]int)}

	for _, t := range trades {
		stats.TotalTrades++
		switch t.Status {
		case models.StatusWin:
			stats.Wins++
		case models.StatusLoss:
			stats.Losses++
		default:
			stats.Breakevens++
		}
		stats.GrossProfit += t.GrossProfit
		stats.TotalCommission += t.TotalCommission
		stats.NetProfit += t.NetProfit
		if t.Session != "" {
			stats.BySession[t.Session]++
		}
	}

	if stats.TotalTrades > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.TotalTrades)
	}
	return stats
}
