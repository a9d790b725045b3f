package models

import (
	"time"

	"gorm.io/gorm"
)

// Direction of a round-trip trade, set by the side of the fill that opened
// the cycle.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Status classifies a trade by the sign of its net profit.
type Status string

const (
	StatusWin       Status = "win"
	StatusLoss      Status = "loss"
	StatusBreakeven Status = "breakeven"
)

// Trade is one completed flat-to-flat round trip. It is created atomically
// when a position cycle returns to flat and is immutable afterwards except
// through explicit user edits, which must go back through the valuation
// calculator rather than overwriting derived fields.
type Trade struct {
	gorm.Model
	AccountID       uint      `json:"account_id"`
	Asset           string    `json:"asset"` // normalized instrument root, e.g. "ES"
	Direction       Direction `json:"direction"`
	EntryTimestamp  time.Time `json:"entry_timestamp"`
	ExitTimestamp   time.Time `json:"exit_timestamp"`
	EntryPrice      float64   `json:"entry_price"` // quantity-weighted average
	ExitPrice       float64   `json:"exit_price"`  // quantity-weighted average
	Quantity        float64   `json:"quantity"`    // contracts built during the entry leg
	GrossProfit     float64   `json:"gross_profit"`
	TotalCommission float64   `json:"total_commission"`
	NetProfit       float64   `json:"net_profit"`
	Status          Status    `json:"status"`
	Session         string    `json:"session"`
	StopLoss        *float64  `json:"stop_loss,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Emotions        string    `json:"emotions,omitempty"`
	Rating          int       `json:"rating,omitempty"`
	Screenshots     string    `json:"screenshots,omitempty"` // newline-separated URLs
}
