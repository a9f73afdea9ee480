package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"countries/internal/api"
	"countries/internal/config"
	"countries/internal/engine"
	"countries/internal/logging"
	"countries/internal/rpc"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:          "countries-server",
		Short:        "Serve country reference data over SOAP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	bindFlags(cmd, v, &configPath)
	return cmd
}

func bindFlags(cmd *cobra.Command, v *viper.Viper, configPath *string) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(configPath, "config", "", "config file (yaml, json or toml)")
	f.String("addr", d.Server.Address, "address to listen on")
	f.String("log-level", d.Logging.Level, "debug, info, warn, error or off")
	f.String("seed-file", d.Data.SeedFile, "CSV file with country records (default: built-in records)")

	_ = v.BindPFlag("server.address", f.Lookup("addr"))
	_ = v.BindPFlag("logging.level", f.Lookup("log-level"))
	_ = v.BindPFlag("data.seed_file", f.Lookup("seed-file"))
}

func run(ctx context.Context, cfg *config.Config) error {
	// 1. Logger
	logger := logging.New(cfg.Logging.Level, nil)

	// 2. Store is complete before the listener opens
	t0 := time.Now()
	store, err := engine.Open(cfg.Data.SeedFile)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}
	logger.Infoj(log.JSON{"event": "store_ready", "countries": store.Len(), "elapsed": time.Since(t0).String()})

	// 3. Routing table
	router := rpc.NewRouter()
	api.NewCountryEndpoint(engine.NewService(store)).Register(router)

	// 4. Server
	server, err := api.NewServer(cfg.Server, router, store, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start() }()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
