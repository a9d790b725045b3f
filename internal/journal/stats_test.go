package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trade-journal-go/internal/models"
)

func TestComputeStats(t *testing.T) {
	trades := []models.Trade{
		{Status: models.StatusWin, GrossProfit: 900, TotalCommission: 10, NetProfit: 890, Session: SessionNY},
		{Status: models.StatusLoss, GrossProfit: -250, TotalCommission: 5, NetProfit: -255, Session: SessionNY},
		{Status: models.StatusWin, GrossProfit: 100, TotalCommission: 2, NetProfit: 98, Session: SessionLondon},
		{Status: models.StatusBreakeven, GrossProfit: 0, TotalCommission: 0, NetProfit: 0, Session: SessionAsia},
	}

	stats := ComputeStats(trades)

	assert.Equal(t, 4, stats.TotalTrades)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 1, stats.Breakevens)
	assert.InDelta(t, 0.5, stats.WinRate, 1e-9)
	assert.InDelta(t, 750, stats.GrossProfit, 1e-9)
	assert.InDelta(t, 17, stats.TotalCommission, 1e-9)
	assert.InDelta(t, 733, stats.NetProfit, 1e-9)
	assert.Equal(t, 2, stats.BySession[SessionNY])
	assert.Equal(t, 1, stats.BySession[SessionLondon])
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Zero(t, stats.TotalTrades)
	assert.Zero(t, stats.WinRate)
}
