package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trade-journal-go/internal/models"
)

// NewDatabase creates a new database connection and performs auto-migration.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Account{}, &models.Trade{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}

// TradeStore persists reconstructed trades. The engine itself never touches
// storage; it hands completed trades here as opaque records.
type TradeStore struct {
	db *gorm.DB
}

// NewTradeStore creates a new TradeStore.
func NewTradeStore(db *gorm.DB) *TradeStore {
	return &TradeStore{db: db}
}

// EnsureAccount returns the account with the given name, creating it with
// the supplied real flag if it does not exist yet.
func (s *TradeStore) EnsureAccount(name string, real bool) (*models.Account, error) {
	var account models.Account
	err := s.db.Where("name = ?", name).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		account = models.Account{Name: name, Real: real}
		if err := s.db.Create(&account).Error; err != nil {
			return nil, fmt.Errorf("failed to create account %q: %w", name, err)
		}
		return &account, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account %q: %w", name, err)
	}
	return &account, nil
}

// SaveTrades stores a batch of reconstructed trades atomically: either the
// whole import lands or none of it does.
func (s *TradeStore) SaveTrades(accountID uint, trades []models.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range trades {
			trades[i].AccountID = accountID
			if err := tx.Create(&trades[i]).Error; err != nil {
				return fmt.Errorf("failed to save trade on %s: %w", trades[i].Asset, err)
			}
		}
		return nil
	})
}

// ListTrades returns all trades for an account, entry timestamp descending.
func (s *TradeStore) ListTrades(accountID uint) ([]models.Trade, error) {
	var trades []models.Trade
	err := s.db.Where("account_id = ?", accountID).
		Order("entry_timestamp desc").
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

// GetTrade fetches one trade by id.
func (s *TradeStore) GetTrade(id uint) (*models.Trade, error) {
	var trade models.Trade
	if err := s.db.First(&trade, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get trade %d: %w", id, err)
	}
	return &trade, nil
}

// UpdateTrade persists an edited trade. Callers must have re-run the
// valuation calculator on it first; this method only writes.
func (s *TradeStore) UpdateTrade(trade *models.Trade) error {
	if err := s.db.Save(trade).Error; err != nil {
		return fmt.Errorf("failed to update trade %d: %w", trade.ID, err)
	}
	return nil
}

// DeleteTrade removes a trade by id.
func (s *TradeStore) DeleteTrade(id uint) error {
	if err := s.db.Delete(&models.Trade{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete trade %d: %w", id, err)
	}
	return nil
}
