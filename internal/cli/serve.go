package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/flashmentor-network/flashmentor/internal/api"
	"github.com/flashmentor-network/flashmentor/internal/app/coordinator"
	"github.com/flashmentor-network/flashmentor/internal/app/directory"
	"github.com/flashmentor-network/flashmentor/internal/app/ledger"
	"github.com/flashmentor-network/flashmentor/internal/app/matcher"
	"github.com/flashmentor-network/flashmentor/internal/daemon"
	"github.com/flashmentor-network/flashmentor/internal/domain"
	"github.com/flashmentor-network/flashmentor/internal/infra/memstore"
	"github.com/flashmentor-network/flashmentor/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Override the configured listen port")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Flash Mentor API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load(configPath)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.API.Port = port
	}

	// Ledger store
	var store domain.LedgerStore
	switch cfg.Ledger.Store {
	case "sqlite":
		db, err := sqlite.Open(cfg.Ledger.Path)
		if err != nil {
			return fmt.Errorf("open ledger store: %w", err)
		}
		defer db.Close()
		store = db
		log.Printf("ledger store: sqlite at %s", cfg.Ledger.Path)
	default:
		store = memstore.New()
		log.Printf("ledger store: in-memory (balances reset on restart)")
	}

	// Match strategy
	var strategy domain.MatchStrategy
	switch cfg.Matching.Strategy {
	case "weighted":
		strategy = matcher.NewWeighted(matcher.WeightedConfig{
			ResponseWeight: cfg.Matching.ResponseWeight,
			TagWeight:      cfg.Matching.TagWeight,
		})
	default:
		strategy = matcher.NewFirstEligible()
	}
	log.Printf("match strategy: %s", cfg.Matching.Strategy)

	// Services
	l := ledger.New(store, ledger.Config{InitialBalance: cfg.Ledger.InitialBalance})
	dir := directory.New()
	for _, seed := range cfg.Experts {
		dir.Upsert(seed.Profile())
	}
	coord := coordinator.New(l, dir, strategy, coordinator.Config{SessionCost: cfg.Ledger.SessionCost})

	srv := api.NewServer(coord, l, dir)
	if cfg.API.Metrics {
		srv.EnableMetrics()
	}

	httpSrv := &http.Server{
		Addr:    cfg.API.Addr(),
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("flash mentor server listening at http://%s", cfg.API.Addr())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
