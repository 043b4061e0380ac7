package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	secretbin "github.com/secretbin/client-go"
)

var retrievePassphrase string

var retrieveCmd = &cobra.Command{
	Use:   "retrieve <secret-id>",
	Short: "Retrieve (and burn) a one-time secret",
	Long: `Retrieve a one-time secret by id.

Retrieval is destructive: the secret burns server-side the moment it is
handed out, so there is exactly one chance to read it. End-to-end
encrypted secrets are decrypted with the private key cached when the
request was created on this machine.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().StringVarP(&retrievePassphrase, "passphrase", "p", "", "passphrase the secret was protected with")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	secretID := args[0]

	client, err := newClient()
	if err != nil {
		return err
	}

	var opts []secretbin.SecretOption
	if retrievePassphrase != "" {
		opts = append(opts, secretbin.WithPassphrase(retrievePassphrase))
	}

	secret, err := client.NewLifecycle().RetrieveSecret(cmd.Context(), secretID, opts...)
	switch {
	case errors.Is(err, secretbin.ErrBurnt):
		return fmt.Errorf("this secret was already retrieved and no longer exists")
	case errors.Is(err, secretbin.ErrNotFound):
		return fmt.Errorf("no such secret; it may have expired")
	case errors.Is(err, secretbin.ErrDecryptionFailed):
		return fmt.Errorf("decryption failed; the secret is now burnt either way")
	case err != nil:
		return err
	}

	text := secret.Text
	if secret.PKIEncrypted {
		text, err = client.DecryptWithStoredKey(secretID, secret.Text)
		if errors.Is(err, secretbin.ErrNoStoredKey) {
			return fmt.Errorf("this secret is end-to-end encrypted and no private key for it is cached on this machine")
		}
		if err != nil {
			return err
		}
	}

	fmt.Println(color.CyanString(text))
	return nil
}
