package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trade-journal-go/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestValuateProfitAndLoss(t *testing.T) {
	testCases := []struct {
		name          string
		input         ValuationInput
		expectedGross float64
		expectedComm  float64
		expectedNet   float64
		expectedState models.Status
	}{
		{
			name: "Long win on ES",
			input: ValuationInput{
				Asset:         "ES",
				Direction:     models.DirectionLong,
				EntryPrice:    4501,
				ExitPrice:     4510,
				Quantity:      2,
				AccountIsReal: true,
			},
			expectedGross: 900, // (4510-4501) * 2 * 50
			expectedComm:  10,  // 5 * 2
			expectedNet:   890,
			expectedState: models.StatusWin,
		},
		{
			name: "Short win mirrors the sign",
			input: ValuationInput{
				Asset:         "ES",
				Direction:     models.DirectionShort,
				EntryPrice:    4510,
				ExitPrice:     4501,
				Quantity:      2,
				AccountIsReal: true,
			},
			expectedGross: 900,
			expectedComm:  10,
			expectedNet:   890,
			expectedState: models.StatusWin,
		},
		{
			name: "Long loss",
			input: ValuationInput{
				Asset:         "ES",
				Direction:     models.DirectionLong,
				EntryPrice:    4510,
				ExitPrice:     4505,
				Quantity:      1,
				AccountIsReal: true,
			},
			expectedGross: -250,
			expectedComm:  5,
			expectedNet:   -255,
			expectedState: models.StatusLoss,
		},
		{
			name: "Demo account pays no commission",
			input: ValuationInput{
				Asset:         "ES",
				Direction:     models.DirectionLong,
				EntryPrice:    4501,
				ExitPrice:     4510,
				Quantity:      2,
				AccountIsReal: false,
			},
			expectedGross: 900,
			expectedComm:  0,
			expectedNet:   900,
			expectedState: models.StatusWin,
		},
		{
			name: "Breakeven is exactly zero on a demo account",
			input: ValuationInput{
				Asset:         "NQ",
				Direction:     models.DirectionLong,
				EntryPrice:    17500,
				ExitPrice:     17500,
				Quantity:      1,
				AccountIsReal: false,
			},
			expectedGross: 0,
			expectedComm:  0,
			expectedNet:   0,
			expectedState: models.StatusBreakeven,
		},
		{
			name: "Flat price on a real account is a loss, not breakeven",
			input: ValuationInput{
				Asset:         "NQ",
				Direction:     models.DirectionLong,
				EntryPrice:    17500,
				ExitPrice:     17500,
				Quantity:      1,
				AccountIsReal: true,
			},
			expectedGross: 0,
			expectedComm:  5,
			expectedNet:   -5,
			expectedState: models.StatusLoss,
		},
		{
			name: "Micro contract gets the discounted rate",
			input: ValuationInput{
				Asset:         "MES",
				Direction:     models.DirectionLong,
				EntryPrice:    4500,
				ExitPrice:     4501,
				Quantity:      3,
				AccountIsReal: true,
			},
			expectedGross: 15, // 1 point * 3 * 5
			expectedComm:  3,  // 1 * 3
			expectedNet:   12,
			expectedState: models.StatusWin,
		},
		{
			name: "Explicit fill commission beats the rate table",
			input: ValuationInput{
				Asset:         "ES",
				Direction:     models.DirectionLong,
				EntryPrice:    4501,
				ExitPrice:     4510,
				Quantity:      2,
				AccountIsReal: true,
				Commission:    floatPtr(7.40),
			},
			expectedGross: 900,
			expectedComm:  7.40,
			expectedNet:   892.60,
			expectedState: models.StatusWin,
		},
		{
			name: "Unknown symbol falls back to default metadata",
			input: ValuationInput{
				Asset:         "XYZ",
				Direction:     models.DirectionLong,
				EntryPrice:    100,
				ExitPrice:     105,
				Quantity:      10,
				AccountIsReal: false,
			},
			expectedGross: 50, // multiplier 1
			expectedComm:  0,
			expectedNet:   50,
			expectedState: models.StatusWin,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Valuate(tc.input)
			assert.InDelta(t, tc.expectedGross, result.GrossProfit, 1e-9)
			assert.InDelta(t, tc.expectedComm, result.TotalCommission, 1e-9)
			assert.InDelta(t, tc.expectedNet, result.NetProfit, 1e-9)
			assert.Equal(t, tc.expectedState, result.Status)
		})
	}
}

func TestValuateRiskMetrics(t *testing.T) {
	t.Run("Valid stop below a long entry", func(t *testing.T) {
		result := Valuate(ValuationInput{
			Asset:      "ES",
			Direction:  models.DirectionLong,
			EntryPrice: 4500,
			ExitPrice:  4520,
			Quantity:   2,
			StopLoss:   floatPtr(4490),
		})
		assert.NotNil(t, result.RiskAmount)
		assert.InDelta(t, 1000, *result.RiskAmount, 1e-9) // 10 points * 2 * 50
		assert.NotNil(t, result.RewardRiskRatio)
		assert.InDelta(t, 2.0, *result.RewardRiskRatio, 1e-9)
	})

	t.Run("Valid stop above a short entry", func(t *testing.T) {
		result := Valuate(ValuationInput{
			Asset:      "ES",
			Direction:  models.DirectionShort,
			EntryPrice: 4500,
			ExitPrice:  4485,
			Quantity:   1,
			StopLoss:   floatPtr(4505),
		})
		assert.NotNil(t, result.RiskAmount)
		assert.InDelta(t, 250, *result.RiskAmount, 1e-9)
		assert.NotNil(t, result.RewardRiskRatio)
		assert.InDelta(t, 3.0, *result.RewardRiskRatio, 1e-9)
	})

	t.Run("Stop on the wrong side surfaces a negative risk", func(t *testing.T) {
		result := Valuate(ValuationInput{
			Asset:      "ES",
			Direction:  models.DirectionLong,
			EntryPrice: 4500,
			ExitPrice:  4520,
			Quantity:   2,
			StopLoss:   floatPtr(4510), // above entry on a long
		})
		assert.NotNil(t, result.RiskAmount)
		assert.InDelta(t, -1000, *result.RiskAmount, 1e-9) // not clamped
		assert.Nil(t, result.RewardRiskRatio)              // undefined
	})

	t.Run("No stop means no risk metrics", func(t *testing.T) {
		result := Valuate(ValuationInput{
			Asset:      "ES",
			Direction:  models.DirectionLong,
			EntryPrice: 4500,
			ExitPrice:  4520,
			Quantity:   2,
		})
		assert.Nil(t, result.RiskAmount)
		assert.Nil(t, result.RewardRiskRatio)
	})
}

func TestValuateTicksTraveled(t *testing.T) {
	result := Valuate(ValuationInput{
		Asset:      "ES",
		Direction:  models.DirectionLong,
		EntryPrice: 4500,
		ExitPrice:  4502.5,
		Quantity:   1,
	})
	assert.InDelta(t, 2.5, result.PointsTraveled, 1e-9)
	assert.InDelta(t, 10, result.TicksTraveled, 1e-9) // tick size 0.25
}

func TestRevalue(t *testing.T) {
	trade := &models.Trade{
		Asset:      "ES",
		Direction:  models.DirectionLong,
		EntryPrice: 4500,
		ExitPrice:  4510,
		Quantity:   1,
		// Stale derived fields from before the edit.
		GrossProfit: -1,
		NetProfit:   -1,
		Status:      models.StatusLoss,
	}

	Revalue(trade, true)

	assert.InDelta(t, 500, trade.GrossProfit, 1e-9)
	assert.InDelta(t, 5, trade.TotalCommission, 1e-9)
	assert.InDelta(t, 495, trade.NetProfit, 1e-9)
	assert.Equal(t, models.StatusWin, trade.Status)
}

func TestFormatDuration(t *testing.T) {
	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		exit     time.Time
		expected string
	}{
		{"Minutes only", base.Add(45 * time.Minute), "45m"},
		{"Hours and minutes", base.Add(90 * time.Minute), "1h 30m"},
		{"Days and hours", base.Add(52 * time.Hour), "2d 4h"},
		{"Zero", base, "0m"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatDuration(base, tc.exit))
		})
	}
}
