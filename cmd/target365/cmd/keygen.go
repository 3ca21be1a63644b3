package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/target365/sdk-for-go/auth"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen --out <private.pem>",
	Short: "Generate a P-256 key pair for request signing",
	Long: `The keygen command writes a new PKCS8 P-256 private key to the given file and
prints the matching public key, which is registered with Target365 under the
key name used for signing.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, _ := cmd.Flags().GetString("out")

		key, err := auth.GenerateKey()
		if err != nil {
			return err
		}

		priv, err := auth.MarshalPrivateKey(key)
		if err != nil {
			return err
		}

		pub, err := auth.MarshalPublicKey(&key.PublicKey)
		if err != nil {
			return err
		}

		if err := os.WriteFile(out, priv, 0o600); err != nil {
			return fmt.Errorf("failed to write private key: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), string(pub))
		return nil
	},
}

func init() {
	keygenCmd.Flags().String("out", "", "File to write the private key to (required)")
	keygenCmd.MarkFlagRequired("out")
}
