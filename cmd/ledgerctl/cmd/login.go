package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexiumfounders/subsplit/internal/auth"
	"github.com/nexiumfounders/subsplit/pkg/api"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in as the operator and print a token",
	Long: `Log in as the operator and print a bearer token.

The password is read from the first line of stdin. Export the token as
LEDGER_TOKEN or pass it with --token.

Example:
  export LEDGER_TOKEN=$(echo "$PASSWORD" | ledgerctl login ops@example.com)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readLine(cmd)
		if err != nil {
			return err
		}
		resp, err := authClient().Login(cmd.Context(), newRequest(&api.LoginRequest{
			Email:    args[0],
			Password: password,
		}))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Msg.Token)
		fmt.Fprintf(cmd.ErrOrStderr(), "token expires %s\n", time.Unix(resp.Msg.ExpiresAt, 0).Format(time.RFC1123))
		return nil
	},
}

var hashCost int

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for OPERATOR_PASSWORD_HASH",
	Long:  `Read a password from the first line of stdin and print its bcrypt hash.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readLine(cmd)
		if err != nil {
			return err
		}
		hash, err := auth.HashPassword(password, hashCost)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func readLine(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(loginCmd, hashPasswordCmd)
	hashPasswordCmd.Flags().IntVar(&hashCost, "cost", bcrypt.DefaultCost, "bcrypt cost")
}
