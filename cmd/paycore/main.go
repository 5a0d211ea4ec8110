// paycore — credential inspection CLI for the paycore SDK.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/spf13/cobra"

	"github.com/suncar110/paycore/internal/credential"
)

var rootCmd = &cobra.Command{
	Use:   "paycore",
	Short: "paycore — resolve and inspect SDK account credentials.",
	Long: `paycore resolves named account identities from a flat configuration
namespace (.properties or YAML) into typed credentials, the same way the
SDK does at call time. Use it to verify that an account record is
complete and to see which credential variant it produces.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(resolveCmd, tokenCmd, versionCmd)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "sdk_config.properties", "path to config file (.properties, .yml or .yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&traceEndpoint, "trace-endpoint", "", "OTLP collector endpoint; empty disables tracing")
	rootCmd.PersistentFlags().StringVar(&traceProtocol, "trace-protocol", "grpc", "OTLP protocol: grpc or http")
	rootCmd.PersistentFlags().BoolVar(&traceInsecure, "trace-insecure", false, "disable transport security on the OTLP exporter")
	_ = godotenv.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the resolution error taxonomy onto the documented exit
// codes. Mapping here, not inside RunE, keeps cobra's error plumbing and
// deferred cleanup intact.
func exitCode(err error) int {
	var missing *credential.MissingCredentialError
	var invalid *credential.InvalidCredentialError
	switch {
	case errors.As(err, &missing):
		return ExitMissingCredential
	case errors.As(err, &invalid):
		return ExitInvalidCredential
	}
	return ExitFailure
}
