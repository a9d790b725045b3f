package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"trade-journal-go/internal/backup"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
	"trade-journal-go/internal/importer"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: journal <command> [args]

Commands:
  import <file>   import a broker execution export (CSV)
  list            list stored trades, most recent entry first
  stats           show aggregate statistics
  backup          push all stored trades to the backup service`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		panic(fmt.Sprintf("could not load config: %v", err))
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	store := database.NewTradeStore(db)

	var backupClient backup.ClientInterface
	if cfg.Backup.Enabled {
		backupClient = backup.NewClient(&cfg.Backup, log)
	}

	// Cancel on SIGINT/SIGTERM so a slow backup push can be interrupted.
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		cancel()
	}()

	switch os.Args[1] {
	case "import":
		if len(os.Args) < 3 {
			usage()
		}
		runImport(ctx, log, &cfg, store, backupClient, os.Args[2])
	case "list":
		runList(log, &cfg, store)
	case "stats":
		runStats(log, &cfg, store)
	case "backup":
		runBackup(ctx, log, &cfg, store, backupClient)
	default:
		usage()
	}
}

func runImport(ctx context.Context, log *zap.Logger, cfg *config.Config, store *database.TradeStore, backupClient backup.ClientInterface, path string) {
	im, err := importer.NewImporter(log, cfg, store, backupClient)
	if err != nil {
		log.Fatal("Failed to initialize importer", zap.Error(err))
	}

	report, err := im.ImportFile(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(report.Message())
	for _, warning := range report.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}
}

func runList(log *zap.Logger, cfg *config.Config, store *database.TradeStore) {
	account, err := store.EnsureAccount(cfg.Account.Name, cfg.Account.Real)
	if err != nil {
		log.Fatal("Failed to load account", zap.Error(err))
	}
	trades, err := store.ListTrades(account.ID)
	if err != nil {
		log.Fatal("Failed to list trades", zap.Error(err))
	}

	if len(trades) == 0 {
		fmt.Println("no trades recorded")
		return
	}

	for _, t := range trades {
		fmt.Printf("#%-4d %-5s %-5s qty %-5.4g %9.2f -> %-9.2f %-7s net %9.2f  %s  %s\n",
			t.ID, t.Asset, t.Direction, t.Quantity,
			t.EntryPrice, t.ExitPrice, t.Status, t.NetProfit,
			t.Session, journal.FormatDuration(t.EntryTimestamp, t.ExitTimestamp))
	}
}

func runStats(log *zap.Logger, cfg *config.Config, store *database.TradeStore) {
	account, err := store.EnsureAccount(cfg.Account.Name, cfg.Account.Real)
	if err != nil {
		log.Fatal("Failed to load account", zap.Error(err))
	}
	trades, err := store.ListTrades(account.ID)
	if err != nil {
		log.Fatal("Failed to list trades", zap.Error(err))
	}

	stats := journal.ComputeStats(trades)
	fmt.Printf("trades:      %d (%d wins / %d losses / %d breakeven)\n",
		stats.TotalTrades, stats.Wins, stats.Losses, stats.Breakevens)
	fmt.Printf("win rate:    %.1f%%\n", stats.WinRate*100)
	fmt.Printf("gross P&L:   %.2f\n", stats.GrossProfit)
	fmt.Printf("commission:  %.2f\n", stats.TotalCommission)
	fmt.Printf("net P&L:     %.2f\n", stats.NetProfit)
	for session, count := range stats.BySession {
		fmt.Printf("  %-8s %d\n", session, count)
	}
}

func runBackup(ctx context.Context, log *zap.Logger, cfg *config.Config, store *database.TradeStore, backupClient backup.ClientInterface) {
	if backupClient == nil {
		fmt.Fprintln(os.Stderr, "backup is disabled in configuration")
		os.Exit(1)
	}
	account, err := store.EnsureAccount(cfg.Account.Name, cfg.Account.Real)
	if err != nil {
		log.Fatal("Failed to load account", zap.Error(err))
	}
	trades, err := store.ListTrades(account.ID)
	if err != nil {
		log.Fatal("Failed to list trades", zap.Error(err))
	}

	resp, err := backupClient.PushTrades(ctx, trades)
	if err != nil {
		log.Fatal("Backup push failed", zap.Error(err))
	}
	fmt.Printf("backed up %d trade(s)\n", resp.Accepted)
}
