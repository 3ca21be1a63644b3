package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errSignatureMismatch = errors.New("signature does not match")

var verifyCmd = &cobra.Command{
	Use:   "verify --method <method> --uri <url> --header <value> [--body-file <file>]",
	Short: "Verify a callback Authorization header against the Target365 server key",
	Long: `The verify command checks a callback signature the way a callback endpoint
would: the header is parsed, its timestamp checked against the configured
drift limits and the named server public key fetched from the API.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		method, _ := cmd.Flags().GetString("method")
		uri, _ := cmd.Flags().GetString("uri")
		header, _ := cmd.Flags().GetString("header")
		bodyFile, _ := cmd.Flags().GetString("body-file")

		_, logger, c, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		body, err := readBody(bodyFile)
		if err != nil {
			return err
		}

		ok, err := c.VerifySignature(cmd.Context(), method, uri, body, header)
		if err != nil {
			return err
		}

		if !ok {
			return errSignatureMismatch
		}

		fmt.Fprintln(cmd.OutOrStdout(), "signature valid")
		return nil
	},
}

func init() {
	addRequestFlags(verifyCmd.Flags())
	verifyCmd.Flags().String("header", "", "Authorization header value (required)")
	verifyCmd.MarkFlagRequired("method")
	verifyCmd.MarkFlagRequired("uri")
	verifyCmd.MarkFlagRequired("header")
}
