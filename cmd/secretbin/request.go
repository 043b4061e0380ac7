package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	secretbin "github.com/secretbin/client-go"
)

var (
	requestEndToEnd bool
	requestExpiry   time.Duration
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Request a secret from someone else",
	Long: `Create a placeholder for a secret someone else will provide.

Two links are printed: send the fulfilment link to the person who has
the secret, keep the retrieval link for yourself. With --e2e a 4096-bit
RSA keypair is generated locally; the other party encrypts under the
public key and only this machine can decrypt the result.`,
	Args: cobra.NoArgs,
	RunE: runRequest,
}

func init() {
	requestCmd.Flags().BoolVar(&requestEndToEnd, "e2e", false, "end-to-end encrypt the fulfilled secret")
	requestCmd.Flags().DurationVarP(&requestExpiry, "expiry", "e", 24*time.Hour, "burn deadline")
	rootCmd.AddCommand(requestCmd)
}

func runRequest(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	opts := []secretbin.SecretOption{secretbin.WithExpiry(requestExpiry)}
	var spin *spinner.Spinner
	if requestEndToEnd {
		opts = append(opts, secretbin.WithEndToEnd())
		// 4096-bit keygen takes a few seconds.
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spin.Suffix = " generating keypair..."
		spin.Start()
	}

	handle, err := client.NewLifecycle().CreateRequest(cmd.Context(), opts...)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Printf("Send this to whoever has the secret:\n  %s\n\n", color.GreenString(handle.RequestLink))
	fmt.Printf("Keep this to retrieve it once fulfilled:\n  %s\n\n", color.CyanString(handle.SecretLink))
	fmt.Printf("Burns: %s\n", handle.BurnAt.Format(time.RFC1123))
	if handle.EndToEnd {
		fmt.Println("The private key is cached locally; retrieve from this machine.")
	}
	return nil
}
