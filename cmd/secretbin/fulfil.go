package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	secretbin "github.com/secretbin/client-go"
)

var fulfilCmd = &cobra.Command{
	Use:   "fulfil <request-id> [text]",
	Short: "Provide the secret for someone's request",
	Long: `Fulfil an open secret request.

The secret text is taken from the argument, or from stdin when omitted.
When the request is end-to-end encrypted, the text is encrypted under
the requester's public key before it leaves this machine. Fulfilment is
one-shot: the request is consumed whether or not you got the text right.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFulfil,
}

func init() {
	rootCmd.AddCommand(fulfilCmd)
}

func runFulfil(cmd *cobra.Command, args []string) error {
	requestID := args[0]

	var text string
	if len(args) > 1 {
		text = args[1]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read secret from stdin: %w", err)
		}
		text = strings.TrimSuffix(string(data), "\n")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	lc := client.NewLifecycle()
	challenge, err := lc.RetrieveRequest(cmd.Context(), requestID)
	switch {
	case errors.Is(err, secretbin.ErrBurnt):
		return fmt.Errorf("this request was already fulfilled")
	case errors.Is(err, secretbin.ErrNotFound):
		return fmt.Errorf("no such request; it may have expired")
	case err != nil:
		return err
	}

	if err := lc.FulfilRequest(cmd.Context(), requestID, text); err != nil {
		return err
	}

	if challenge.PublicKeyPEM != "" {
		fmt.Println("Secret encrypted under the requester's key and delivered.")
	} else {
		fmt.Println("Secret delivered.")
	}
	color.Green("Done.")
	return nil
}
