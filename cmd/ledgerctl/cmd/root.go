package cmd

import (
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/nexiumfounders/subsplit/pkg/api/apiconnect"
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Drive a subscription ledger server from the terminal",
	Long: `ledgerctl talks to a ledger server over Connect RPC.

It shows who owes whom for the selected month and records transfers,
payer overrides and period changes. Every change can be undone.

Examples:
  ledgerctl summary
  ledgerctl period 2025-09
  ledgerctl transfer omar faris 200
  ledgerctl key ctrl+z`,
	SilenceUsage: true,
}

var (
	serverURL string
	authToken string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", envOr("LEDGER_SERVER", "http://localhost:8080"), "ledger server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("LEDGER_TOKEN"), "bearer token from 'ledgerctl login'")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var httpClient = &http.Client{Timeout: 15 * time.Second}

func ledgerClient() apiconnect.LedgerServiceClient {
	return apiconnect.NewLedgerServiceClient(httpClient, serverURL)
}

func authClient() apiconnect.AuthServiceClient {
	return apiconnect.NewAuthServiceClient(httpClient, serverURL)
}

// newRequest wraps msg and attaches the bearer token when one is set.
func newRequest[T any](msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if authToken != "" {
		req.Header().Set("Authorization", "Bearer "+authToken)
	}
	return req
}
