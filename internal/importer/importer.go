// Package importer orchestrates one execution import: parse the raw export,
// reconstruct round trips, persist them, and optionally push a backup.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"trade-journal-go/internal/backup"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/parser"
)

// Importer wires the parsing and reconstruction engine to its collaborators.
type Importer struct {
	logger   *zap.Logger
	cfg      *config.Config
	store    *database.TradeStore
	backup   backup.ClientInterface
	location *time.Location
}

// Report summarizes one import for the user: how many round trips were
// consolidated, which rows were skipped, and how many instruments were left
// with a residual open position (those produce no trade).
type Report struct {
	TradesImported int
	Warnings       []string
	OpenPositions  int
}

// Message renders the user-facing outcome line.
func (r Report) Message() string {
	msg := fmt.Sprintf("imported %d consolidated trade(s)", r.TradesImported)
	if len(r.Warnings) > 0 {
		msg += fmt.Sprintf(", %d row(s) skipped", len(r.Warnings))
	}
	if r.OpenPositions > 0 {
		msg += fmt.Sprintf(", %d open position(s) not imported", r.OpenPositions)
	}
	return msg
}

// NewImporter creates a new Importer. The backup client may be nil when
// backups are disabled.
func NewImporter(logger *zap.Logger, cfg *config.Config, store *database.TradeStore, backupClient backup.ClientInterface) (*Importer, error) {
	location := time.Local
	if cfg.Import.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Import.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid import timezone %q: %w", cfg.Import.Timezone, err)
		}
		location = loc
	}

	return &Importer{
		logger:   logger,
		cfg:      cfg,
		store:    store,
		backup:   backupClient,
		location: location,
	}, nil
}

// ImportFile runs a full import from a broker export file.
func (im *Importer) ImportFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()
	return im.Import(ctx, f)
}

// Import parses executions from r, reconstructs completed round trips and
// stores them atomically under the configured account.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*Report, error) {
	account, err := im.store.EnsureAccount(im.cfg.Account.Name, im.cfg.Account.Real)
	if err != nil {
		return nil, err
	}

	parsed, err := parser.Parse(r, im.location)
	if err != nil {
		if errors.Is(err, parser.ErrNoValidRows) {
			return nil, fmt.Errorf("no valid rows found")
		}
		return nil, err
	}

	for _, warning := range parsed.Warnings {
		im.logger.Warn("Skipped row during import", zap.String("reason", warning))
	}

	summary := journal.Reconstruct(parsed.Executions, journal.Options{
		AccountIsReal:   account.Real,
		StrictOvershoot: im.cfg.Import.StrictOvershoot,
		Location:        im.location,
	})

	im.logger.Info("Reconstruction complete",
		zap.Int("executions", len(parsed.Executions)),
		zap.Int("trades", len(summary.Trades)),
		zap.Int("open_positions", summary.OpenPositions))

	if err := im.store.SaveTrades(account.ID, summary.Trades); err != nil {
		return nil, err
	}

	if im.backup != nil && im.cfg.Backup.Enabled && len(summary.Trades) > 0 {
		if _, err := im.backup.PushTrades(ctx, summary.Trades); err != nil {
			// Backup failure must not undo a successful import.
			im.logger.Error("Backup push failed", zap.Error(err))
		}
	}

	return &Report{
		TradesImported: len(summary.Trades),
		Warnings:       parsed.Warnings,
		OpenPositions:  summary.OpenPositions,
	}, nil
}

// EditTrade applies a user edit to a stored trade and re-runs the valuation
// calculator before persisting, so derived fields can never drift from the
// edited prices.
func (im *Importer) EditTrade(trade *models.Trade) error {
	journal.Revalue(trade, im.cfg.Account.Real)
	return im.store.UpdateTrade(trade)
}
