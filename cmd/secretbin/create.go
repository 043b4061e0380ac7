package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	secretbin "github.com/secretbin/client-go"
)

var (
	createPassphrase string
	createExpiry     time.Duration
	createRandom     bool
	createToEmail    string
	createFromEmail  string
	createToken      string
)

var createCmd = &cobra.Command{
	Use:   "create [text]",
	Short: "Store a one-time secret and print its share link",
	Long: `Store a one-time secret and print its share link.

The secret text is taken from the argument, or from stdin when omitted.
With --random a fresh random secret is generated and printed alongside
the link. With --passphrase the text is encrypted locally before it
leaves this machine; the recipient needs the same passphrase to read it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createPassphrase, "passphrase", "p", "", "encrypt client-side with this passphrase")
	createCmd.Flags().DurationVarP(&createExpiry, "expiry", "e", 24*time.Hour, "burn deadline")
	createCmd.Flags().BoolVar(&createRandom, "random", false, "generate a random secret instead of reading one")
	createCmd.Flags().StringVar(&createToEmail, "to", "", "email the share link to this address (needs --token)")
	createCmd.Flags().StringVar(&createFromEmail, "from", "", "sender shown in the delivery email")
	createCmd.Flags().StringVar(&createToken, "token", "", "verified token from 'secretbin verify'")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	text, err := resolveSecretText(args)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	opts := []secretbin.SecretOption{secretbin.WithExpiry(createExpiry)}
	if createPassphrase != "" {
		opts = append(opts, secretbin.WithPassphrase(createPassphrase))
	}
	if createToEmail != "" {
		opts = append(opts, secretbin.WithDelivery(createToEmail, createFromEmail, createToken))
	}

	handle, err := client.NewLifecycle().CreateSecret(cmd.Context(), text, opts...)
	if err != nil {
		return err
	}

	if createRandom {
		fmt.Printf("Secret:  %s\n", text)
	}
	fmt.Printf("Link:    %s\n", color.GreenString(handle.SecretLink))
	fmt.Printf("Burns:   %s\n", handle.BurnAt.Format(time.RFC1123))
	if createPassphrase != "" {
		fmt.Println("The recipient will need the passphrase to read it.")
	}
	if handle.EmailWarning != "" {
		color.Yellow("Warning: the secret was stored but email delivery failed: %s", handle.EmailWarning)
	}
	return nil
}

func resolveSecretText(args []string) (string, error) {
	if createRandom {
		if len(args) > 0 {
			return "", fmt.Errorf("--random and a text argument are mutually exclusive")
		}
		return secretbin.GenerateRandomSecret()
	}
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read secret from stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
