package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/target365/sdk-for-go/auth"
)

var signCmd = &cobra.Command{
	Use:   "sign --method <method> --uri <url> [--body-file <file>]",
	Short: "Print an Authorization header for a request",
	Long: `The sign command signs a request with the configured private key and key name
and prints the resulting Authorization header value. The uri must be the
absolute URL of the request, including any query string.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		method, _ := cmd.Flags().GetString("method")
		uri, _ := cmd.Flags().GetString("uri")
		bodyFile, _ := cmd.Flags().GetString("body-file")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		privateKey, err := cfg.PrivateKeyText()
		if err != nil {
			return err
		}

		signer, err := auth.NewSignerFromText(privateKey)
		if err != nil {
			return err
		}

		body, err := readBody(bodyFile)
		if err != nil {
			return err
		}

		header, err := auth.SignHeader(signer, cfg.API.KeyName, method, uri, body)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), header)
		return nil
	},
}

func init() {
	addRequestFlags(signCmd.Flags())
	signCmd.MarkFlagRequired("method")
	signCmd.MarkFlagRequired("uri")
}

// addRequestFlags registers the flags that describe a signed request.
func addRequestFlags(fs *pflag.FlagSet) {
	fs.String("method", "", "HTTP method (required)")
	fs.String("uri", "", "Absolute request URL, including the query string (required)")
	fs.String("body-file", "", "File holding the request body; empty for no body")
}

func readBody(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	return string(data), nil
}
