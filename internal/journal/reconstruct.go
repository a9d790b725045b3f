// Package journal is the execution-to-trade reconstruction and valuation
// engine. It consolidates raw broker fills into flat-to-flat round trips
// and derives P&L, commission and risk metrics for them.
package journal

import (
	"math"
	"sort"
	"time"

	"trade-journal-go/internal/instrument"
	"trade-journal-go/internal/models"
)

// flatEpsilon is the absolute tolerance for "position is flat". Summed
// fractional fill quantities do not land on exactly zero.
const flatEpsilon = 0.0001

// Options controls one reconstruction run.
type Options struct {
	// AccountIsReal gates commission: paper accounts always see zero.
	AccountIsReal bool

	// StrictOvershoot splits a closing fill that exceeds the remaining open
	// quantity: the covering portion completes the cycle and the remainder
	// opens a new cycle in the opposite direction. When false the entire
	// fill is absorbed into the closing cycle's exit leg, which is what the
	// original implementation did.
	StrictOvershoot bool

	// Location is the timezone used for session classification. Nil means
	// time.Local.
	Location *time.Location
}

// Summary is the result of one reconstruction: completed trades in entry
// timestamp descending order, plus a count of instruments left with a
// residual open position. Residuals produce no trade and no error; the
// engine only reports closed round trips.
type Summary struct {
	Trades        []models.Trade
	OpenPositions int
}

// cycleState accumulates one open flat-to-flat cycle.
type cycleState struct {
	direction   models.Direction
	entryTime   time.Time
	lastTime    time.Time
	netPosition float64
	entryQty    float64
	entryCost   float64
	exitQty     float64
	exitRevenue float64
	commission  float64
}

// instrumentState is the explicit fold accumulator for one instrument's
// fill sequence: the cycle in progress, if any, and the trades completed
// so far.
type instrumentState struct {
	open   *cycleState
	trades []models.Trade
}

// Reconstruct consolidates an unordered batch of fills into completed round
// trips. Fills are stably sorted by timestamp (ties keep input order — the
// cycle detection is sequential and sensitive to fill order within one
// instant), grouped by instrument, and folded independently per instrument.
func Reconstruct(executions []models.Execution, opts Options) Summary {
	sorted := make([]models.Execution, len(executions))
	copy(sorted, executions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	// Group by instrument, keeping first-seen order for determinism.
	groups := make(map[string][]models.Execution)
	var order []string
	for _, exec := range sorted {
		if _, ok := groups[exec.Instrument]; !ok {
			order = append(order, exec.Instrument)
		}
		groups[exec.Instrument] = append(groups[exec.Instrument], exec)
	}

	summary := Summary{}
	for _, symbol := range order {
		state := instrumentState{}
		for _, fill := range groups[symbol] {
			state = applyFill(state, fill, opts)
		}
		summary.Trades = append(summary.Trades, state.trades...)
		if state.open != nil {
			summary.OpenPositions++
		}
	}

	sort.SliceStable(summary.Trades, func(i, j int) bool {
		return summary.Trades[i].EntryTimestamp.After(summary.Trades[j].EntryTimestamp)
	})
	return summary
}

// applyFill is the state transition of the fold: one fill in, the next
// accumulator state out. A fill arriving on a flat position opens a cycle;
// a fill returning the position to flat completes one.
func applyFill(state instrumentState, fill models.Execution, opts Options) instrumentState {
	if state.open == nil {
		direction := models.DirectionLong
		if fill.Side == models.SideSell {
			direction = models.DirectionShort
		}
		state.open = &cycleState{
			direction: direction,
			entryTime: fill.Timestamp,
		}
	}

	cycle := state.open

	if opts.StrictOvershoot && isExitLeg(cycle.direction, fill.Side) {
		remaining := math.Abs(cycle.netPosition)
		if fill.Quantity > remaining+flatEpsilon {
			// Split: cover the open quantity, then restart the remainder as
			// the opening fill of a new opposite-direction cycle.
			closing := fill
			closing.Quantity = remaining
			closing.Commission = fill.Commission * (remaining / fill.Quantity)

			leftover := fill
			leftover.Quantity = fill.Quantity - remaining
			leftover.Commission = fill.Commission - closing.Commission

			state = applyFill(state, closing, opts)
			return applyFill(state, leftover, opts)
		}
	}

	cycle.netPosition += fill.SignedQuantity()
	cycle.commission += fill.Commission
	cycle.lastTime = fill.Timestamp

	if isExitLeg(cycle.direction, fill.Side) {
		cycle.exitQty += fill.Quantity
		cycle.exitRevenue += fill.Price * fill.Quantity
	} else {
		cycle.entryQty += fill.Quantity
		cycle.entryCost += fill.Price * fill.Quantity
	}

	if math.Abs(cycle.netPosition) < flatEpsilon {
		if trade, ok := completeCycle(fill.Instrument, cycle, opts); ok {
			state.trades = append(state.trades, trade)
		}
		state.open = nil
	}
	return state
}

// isExitLeg reports whether a fill's side opposes the direction that opened
// the cycle: sells exit a long, buys exit a short.
func isExitLeg(direction models.Direction, side models.Side) bool {
	if direction == models.DirectionLong {
		return side == models.SideSell
	}
	return side == models.SideBuy
}

// completeCycle turns a closed cycle into a Trade. Entry and exit prices
// are quantity-weighted averages; valuation goes through the shared
// calculator so batch and interactive results cannot diverge.
func completeCycle(symbol string, cycle *cycleState, opts Options) (models.Trade, bool) {
	if cycle.entryQty < flatEpsilon || cycle.exitQty < flatEpsilon {
		return models.Trade{}, false
	}

	avgEntry := cycle.entryCost / cycle.entryQty
	avgExit := cycle.exitRevenue / cycle.exitQty

	input := ValuationInput{
		Asset:         instrument.Root(symbol),
		Direction:     cycle.direction,
		EntryPrice:    avgEntry,
		ExitPrice:     avgExit,
		Quantity:      cycle.entryQty,
		AccountIsReal: opts.AccountIsReal,
	}
	// Broker-reported commissions, when present, beat the rate table.
	if cycle.commission > 0 {
		input.Commission = &cycle.commission
	}
	result := Valuate(input)

	return models.Trade{
		Asset:           input.Asset,
		Direction:       cycle.direction,
		EntryTimestamp:  cycle.entryTime,
		ExitTimestamp:   cycle.lastTime,
		EntryPrice:      avgEntry,
		ExitPrice:       avgExit,
		Quantity:        cycle.entryQty,
		GrossProfit:     result.GrossProfit,
		TotalCommission: result.TotalCommission,
		NetProfit:       result.NetProfit,
		Status:          result.Status,
		Session:         ClassifySession(cycle.entryTime, opts.Location),
	}, true
}
