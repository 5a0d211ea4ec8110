package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/suncar110/paycore/internal/config"
	"github.com/suncar110/paycore/internal/oauth"
	"github.com/suncar110/paycore/internal/observability"
	"github.com/suncar110/paycore/internal/transport"
)

var tokenTimeout int

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Acquire an OAuth access token with the configured client credentials",
	Long: `Acquire a bearer access token from the configured token endpoint
(oauth.EndPoint) using the ClientID and ClientSecret configuration keys,
and print it. Intended for smoke-testing a configuration.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().IntVar(&tokenTimeout, "timeout", 30, "timeout in seconds")
}

func runToken(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	store, err := loadStore(logger)
	if err != nil {
		return err
	}
	snap := store.Snapshot()

	metrics := observability.NewMetricsCollector()
	defer logMetrics(logger, metrics)

	tracing, err := newTracing()
	if err != nil {
		return err
	}
	defer func() {
		if err := tracing.Shutdown(context.Background()); err != nil {
			logger.Error("trace shutdown failed", slog.String("error", err.Error()))
		}
	}()

	client := transport.NewClient(transport.Config{
		Timeout:    snap.Seconds(config.KeyConnectionTimeout, 30*time.Second),
		MaxRetries: snap.Int(config.KeyRetry, 3),
	}, logger, transport.WithMetrics(metrics))

	tokenCred, err := oauth.NewTokenCredential(
		snap.Get(config.KeyClientID),
		snap.Get(config.KeyClientSecret),
		snap.Get(config.KeyTokenEndpoint),
		client,
		logger,
		oauth.WithMetrics(metrics),
		oauth.WithTracer(tracing.Tracer()),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(tokenTimeout)*time.Second)
	defer cancel()

	token, err := tokenCred.GetAccessToken(ctx)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
