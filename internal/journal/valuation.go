package journal

import (
	"fmt"
	"math"
	"time"

	"trade-journal-go/internal/instrument"
	"trade-journal-go/internal/models"
)

// ValuationInput carries everything needed to value one trade. It is used
// both by batch reconstruction and by the interactive single-trade path, so
// the two can never disagree on rates or rounding.
type ValuationInput struct {
	Asset         string           `json:"asset"`
	Direction     models.Direction `json:"direction"`
	EntryPrice    float64          `json:"entry_price"`
	ExitPrice     float64          `json:"exit_price"`
	Quantity      float64          `json:"quantity"`
	StopLoss      *float64         `json:"stop_loss,omitempty"`
	AccountIsReal bool             `json:"account_is_real"`

	// Commission overrides the resolver's rate-derived commission when the
	// import carried explicit per-fill commissions. Nil means derive.
	Commission *float64 `json:"commission,omitempty"`
}

// ValuationResult is the derived money and risk view of one trade.
// RiskAmount and RewardRiskRatio are nil when no stop-loss is supplied;
// RewardRiskRatio is additionally nil when the stop sits on the wrong side
// of entry (risk per contract non-positive). A negative RiskAmount is
// deliberate in that case so an inconsistent stop is visible, not clamped.
type ValuationResult struct {
	GrossProfit     float64       `json:"gross_profit"`
	TotalCommission float64       `json:"total_commission"`
	NetProfit       float64       `json:"net_profit"`
	Status          models.Status `json:"status"`
	PointsTraveled  float64       `json:"points_traveled"`
	TicksTraveled   float64       `json:"ticks_traveled"`
	RiskAmount      *float64      `json:"risk_amount,omitempty"`
	RewardRiskRatio *float64      `json:"reward_risk_ratio,omitempty"`
}

// Valuate computes gross/net P&L, commission, status and risk metrics for a
// trade. All instrument constants come from the shared resolver; this is
// the only place commission and multiplier tables are consulted.
func Valuate(in ValuationInput) ValuationResult {
	meta := instrument.Resolve(in.Asset)

	points := in.ExitPrice - in.EntryPrice
	if in.Direction == models.DirectionShort {
		points = in.EntryPrice - in.ExitPrice
	}
	gross := points * in.Quantity * meta.Multiplier

	var commission float64
	if in.AccountIsReal {
		if in.Commission != nil {
			commission = *in.Commission
		} else {
			commission = meta.CommissionRate * in.Quantity
		}
	}

	net := gross - commission

	result := ValuationResult{
		GrossProfit:     gross,
		TotalCommission: commission,
		NetProfit:       net,
		Status:          classify(net),
		PointsTraveled:  points,
	}
	if meta.TickSize > 0 {
		result.TicksTraveled = points / meta.TickSize
	}

	if in.StopLoss != nil {
		riskPerContract := in.EntryPrice - *in.StopLoss
		if in.Direction == models.DirectionShort {
			riskPerContract = *in.StopLoss - in.EntryPrice
		}

		riskAmount := riskPerContract * in.Quantity * meta.Multiplier
		result.RiskAmount = &riskAmount

		// Ratio is undefined for a stop on the wrong side of entry.
		if riskPerContract > 0 {
			ratio := math.Abs(in.ExitPrice-in.EntryPrice) / riskPerContract
			result.RewardRiskRatio = &ratio
		}
	}

	return result
}

// classify derives win/loss/breakeven from the sign of net profit. This is
// an exact comparison: breakeven means exactly zero, unlike the flatness
// epsilon used during reconstruction.
func classify(netProfit float64) models.Status {
	switch {
	case netProfit > 0:
		return models.StatusWin
	case netProfit < 0:
		return models.StatusLoss
	default:
		return models.StatusBreakeven
	}
}

// Revalue recomputes a trade's derived fields after a user edit. Edits
// change prices, stop or quantity; gross, commission, net and status must
// come back through the calculator, never be written directly.
func Revalue(t *models.Trade, accountIsReal bool) {
	result := Valuate(ValuationInput{
		Asset:         t.Asset,
		Direction:     t.Direction,
		EntryPrice:    t.EntryPrice,
		ExitPrice:     t.ExitPrice,
		Quantity:      t.Quantity,
		StopLoss:      t.StopLoss,
		AccountIsReal: accountIsReal,
	})
	t.GrossProfit = result.GrossProfit
	t.TotalCommission = result.TotalCommission
	t.NetProfit = result.NetProfit
	t.Status = result.Status
}

// FormatDuration renders the time a trade was held, bucketed for display:
// "2d 4h" beyond a day, "3h 15m" beyond an hour, otherwise minutes.
func FormatDuration(entry, exit time.Time) string {
	d := exit.Sub(entry)
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
