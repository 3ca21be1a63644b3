package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/target365/sdk-for-go/cmd/target365/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "target365",
	Short: "Sign, verify and exercise Target365 API requests.",
	Long: `target365 is a command-line companion to the Target365 Go SDK. It generates
P-256 key pairs, signs and verifies HMAC authorization headers, calls the API
with a configured key and serves a callback endpoint that verifies inbound
signatures.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func init() {
	cmd.AddCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
