package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Call the API ping endpoint with a signed request",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, logger, c, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		pong, err := c.Ping(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), pong)
		return nil
	},
}

var publicKeysCmd = &cobra.Command{
	Use:   "public-keys",
	Short: "Inspect public keys registered with Target365",
}

var serverKeyCmd = &cobra.Command{
	Use:   "server <name>",
	Short: "Show a Target365 server public key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, c, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		key, err := c.GetServerPublicKey(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printJSON(cmd, key)
	},
}

var clientKeysCmd = &cobra.Command{
	Use:   "list",
	Short: "List the client public keys of the account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, logger, c, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		keys, err := c.ListClientPublicKeys(cmd.Context())
		if err != nil {
			return err
		}

		return printJSON(cmd, keys)
	},
}

func init() {
	publicKeysCmd.AddCommand(serverKeyCmd)
	publicKeysCmd.AddCommand(clientKeysCmd)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
