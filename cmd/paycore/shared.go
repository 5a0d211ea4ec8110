package main

import (
	"log/slog"
	"os"

	"github.com/suncar110/paycore/internal/config"
	"github.com/suncar110/paycore/internal/observability"
)

var (
	configPath    string
	debugLog      bool
	traceEndpoint string
	traceProtocol string
	traceInsecure bool
)

// Exit codes shared by the subcommands.
const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitMissingCredential = 2
	ExitInvalidCredential = 3
)

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debugLog {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func loadStore(logger *slog.Logger) (*config.Store, error) {
	path := configPath
	if env := os.Getenv("PAYCORE_CONFIG"); env != "" {
		path = env
	}
	return config.NewStore(path, config.WithLogger(logger))
}

// newTracing builds the OTLP tracer setup when --trace-endpoint is set.
// Returns (nil, nil) when tracing is off; a nil setup yields no-op tracers.
func newTracing() (*observability.TracerSetup, error) {
	if traceEndpoint == "" {
		return nil, nil
	}
	return observability.NewTracerSetup(&observability.TracingConfig{
		Enabled:  true,
		Endpoint: traceEndpoint,
		Protocol: traceProtocol,
		Insecure: traceInsecure,
	})
}

// logMetrics reports the run's non-zero counters at debug level so --debug
// shows what the SDK recorded.
func logMetrics(logger *slog.Logger, m *observability.MetricsCollector) {
	families, err := m.Registry.Gather()
	if err != nil {
		logger.Debug("gathering metrics failed", slog.String("error", err.Error()))
		return
	}
	for _, fam := range families {
		var total float64
		for _, metric := range fam.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		if total > 0 {
			logger.Debug("metric",
				slog.String("name", fam.GetName()),
				slog.Float64("value", total))
		}
	}
}
