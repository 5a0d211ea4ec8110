package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suncar110/paycore/internal/credential"
	"github.com/suncar110/paycore/internal/observability"
)

var resolveAccount string

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve an account into a typed credential",
	Long: `Resolve an account identity (a configured UserName) into its typed
credential and print the variant and its non-secret fields. Without
--account the default-account policy applies: a single declared account,
or the one named by the defaultAccount key.

Exit codes:
  0  resolved
  1  configuration failure
  2  no account selectable (unknown identity or no default)
  3  account record malformed`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveAccount, "account", "a", "", "identity (UserName) to resolve; empty = default account")
}

func runResolve(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	store, err := loadStore(logger)
	if err != nil {
		return err
	}

	metrics := observability.NewMetricsCollector()
	defer logMetrics(logger, metrics)

	manager := credential.NewManager(store,
		credential.WithLogger(logger),
		credential.WithMetrics(metrics))
	cred, err := manager.Resolve(resolveAccount)
	if err != nil {
		return err
	}

	username, _ := cred.Auth()
	fmt.Printf("kind:     %s\n", cred.Kind())
	fmt.Printf("username: %s\n", username)
	fmt.Printf("password: ********\n")
	switch c := cred.(type) {
	case credential.SignatureCredential:
		fmt.Printf("subject:  %s\n", c.Subject)
	case credential.CertificateCredential:
		fmt.Printf("certpath: %s\n", c.CertPath)
		fmt.Printf("certkey:  %s\n", c.CertKey)
		if c.Subject != "" {
			fmt.Printf("subject:  %s\n", c.Subject)
		}
	}
	return nil
}
