package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resumate/internal/logging"
	"github.com/jonathan/resumate/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form and JSON API server",
	Long:  `Start an HTTP server that serves the bullet generation form at / and the JSON API at /api/v1/bullets.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to listen on (overrides HOST)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, closeClient, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeClient(); err != nil {
			logger.WithError(err).Warn("Failed to close LLM client")
		}
	}()

	clientCfg := cfg.ClientConfig()
	srv, err := server.New(cfg.Server, generator, server.Info{
		Provider: string(clientCfg.Provider),
		Model:    clientCfg.GetModel(),
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(cfg.Address())
	})
	g.Go(func() error {
		<-gctx.Done()
		// ctx is already done; give in-flight requests a fresh deadline
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
