package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/target365/sdk-for-go/client"
	"github.com/target365/sdk-for-go/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the CLI configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init --out <config.yaml>",
	Short: "Write a config file with default values",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, _ := cmd.Flags().GetString("out")
		keyName, _ := cmd.Flags().GetString("key-name")
		keyFile, _ := cmd.Flags().GetString("private-key-file")

		cfg := config.Default()
		cfg.API.KeyName = keyName
		cfg.API.PrivateKeyFile = keyFile

		if err := config.Write(out, cfg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return nil
	},
}

var smsPartsCmd = &cobra.Command{
	Use:   "sms-parts <text>",
	Short: "Estimate how many SMS segments a text occupies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unicode, _ := cmd.Flags().GetBool("unicode")

		fmt.Fprintln(cmd.OutOrStdout(), client.SMSParts(args[0], unicode))
		return nil
	},
}

func init() {
	configInitCmd.Flags().String("out", "target365.yaml", "Path of the config file to write")
	configInitCmd.Flags().String("key-name", "", "Key name registered with Target365")
	configInitCmd.Flags().String("private-key-file", "", "Path to the PKCS8 private key")
	configCmd.AddCommand(configInitCmd)

	smsPartsCmd.Flags().Bool("unicode", false, "Count with unicode (UCS-2) segment sizes")
}
