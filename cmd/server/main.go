package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	router "github.com/dkeye/djrelay/internal/adapters/http"
	"github.com/dkeye/djrelay/internal/adapters/statspub"
	"github.com/dkeye/djrelay/internal/app"
	"github.com/dkeye/djrelay/internal/app/orch"
	"github.com/dkeye/djrelay/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "djrelay",
		Short:        "Presence and now-playing relay for broadcasters and their listeners",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags())
		},
	}
	cmd.Flags().String("config", "", "config file (default is config/config.$CONFIG_ENV.yaml)")
	cmd.Flags().Int("port", 8900, "listen port")
	cmd.Flags().String("mode", "release", "gin mode: release or debug")
	return cmd
}

func run(ctx context.Context, flags *pflag.FlagSet) error {
	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load(flags)
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return err
	}
	cfg.Log.Apply()

	stats := app.NewStats()
	rooms := app.NewRoomManager()
	o := &orch.Orchestrator{
		Registry: app.NewRegistry(),
		Rooms:    rooms,
		Stats:    stats,
		Policy:   app.PolicyFromString(cfg.Backpressure),
	}

	reporter := &app.Reporter{Stats: stats, Interval: cfg.Stats.Interval}
	if cfg.Redis.Address != "" {
		pub, err := statspub.NewRedisPublisher(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("stats publisher disabled")
		} else {
			defer pub.Close()
			reporter.Publisher = pub
			log.Info().Str("channel", cfg.Redis.Channel).Msg("publishing stats to redis")
		}
	}
	go reporter.Run(ctx)

	r := router.SetupRouter(ctx, cfg, o, stats, rooms)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("relay server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
		return err
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	reporter.Report(shutdownCtx)
	log.Info().Msg("Server exited gracefully")
	return nil
}
