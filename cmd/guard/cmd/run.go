package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onflow/inheritance-guard/access"
	"github.com/onflow/inheritance-guard/engine/rest"
	"github.com/onflow/inheritance-guard/guard"
	"github.com/onflow/inheritance-guard/model/vault"
	"github.com/onflow/inheritance-guard/module/metrics"
	"github.com/onflow/inheritance-guard/storage"
	bstorage "github.com/onflow/inheritance-guard/storage/badger"
)

func runGuard(*cobra.Command, []string) error {
	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log = log.Level(level).With().Timestamp().Logger()

	db, err := badger.Open(badger.DefaultOptions(flagDatadir).WithLogger(nil))
	if err != nil {
		return fmt.Errorf("could not open guard database: %w", err)
	}

	state := bstorage.NewGuardState(db)
	g, err := loadOrInitGuard(state)
	if err != nil {
		_ = db.Close()
		return err
	}

	backend := access.NewBackend(log, g, state)

	metricsServer := metrics.NewServer(log, flagMetricsPort)
	<-metricsServer.Ready()

	restServer := rest.NewServer(backend, flagListenAddr, log)
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", flagListenAddr).Msg("rest server started")
		err := restServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
	case err := <-serveErr:
		log.Error().Err(err).Msg("rest server failed")
	}

	var result *multierror.Error

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := restServer.Shutdown(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("could not stop rest server: %w", err))
	}
	<-metricsServer.Done()

	if err := state.Save(g.Snapshot()); err != nil {
		result = multierror.Append(result, fmt.Errorf("could not flush guard state: %w", err))
	}
	if err := db.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("could not close guard database: %w", err))
	}
	return result.ErrorOrNil()
}

// loadOrInitGuard restores the guard from the stored snapshot, or initializes
// it from the owner and beneficiary flags on first start.
func loadOrInitGuard(state storage.GuardState) (*guard.Guard, error) {
	opts := []guard.Option{
		guard.WithLogger(log),
		guard.WithMetrics(metrics.NewGuardCollector()),
		guard.WithTransferCapability(loggingTransfer(log)),
	}

	snapshot, err := state.Retrieve()
	if err == nil {
		log.Info().Msg("guard state restored from database")
		return guard.FromSnapshot(snapshot, opts...)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("could not load guard state: %w", err)
	}

	if flagOwner == "" {
		return nil, fmt.Errorf("no stored guard state: --owner is required on first start")
	}
	if len(flagBeneficiaries) == 0 {
		return nil, fmt.Errorf("no stored guard state: at least one beneficiary is required on first start")
	}
	window, err := time.ParseDuration(flagWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid inactivity window: %w", err)
	}

	owner := vault.HexToAddress(flagOwner)
	beneficiaries := make([]vault.Address, 0, len(flagBeneficiaries))
	for _, raw := range flagBeneficiaries {
		beneficiaries = append(beneficiaries, vault.HexToAddress(raw))
	}

	g, err := guard.New(owner, beneficiaries, window, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not initialize guard: %w", err)
	}
	err = state.Store(g.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("could not store initial guard state: %w", err)
	}
	return g, nil
}

// loggingTransfer stands in for the external asset transfer capability when
// the node runs without one wired in. It records the transfer and succeeds.
func loggingTransfer(log zerolog.Logger) guard.TransferCapability {
	return guard.TransferFunc(func(amount uint64, recipient vault.Address) error {
		log.Info().
			Uint64("amount", amount).
			Str("recipient", recipient.String()).
			Msg("asset transfer executed")
		return nil
	})
}
