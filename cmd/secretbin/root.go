package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	secretbin "github.com/secretbin/client-go"
)

var (
	flagServer   string
	flagLinkBase string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "secretbin",
	Short: "Share one-time secrets",
	Long: `secretbin shares secrets that can be read exactly once.

A created secret burns on first retrieval or at its expiry deadline,
whichever comes first. Secrets can be passphrase-protected or, for
requests, end-to-end encrypted so the server only ever relays ciphertext.

Configuration is read from flags, then SECRETBIN_SERVER and
SECRETBIN_LINK_BASE in the environment or a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "API base URL (default $SECRETBIN_SERVER or https://secretbin.net)")
	rootCmd.PersistentFlags().StringVar(&flagLinkBase, "link-base", "", "public base URL for share links (default $SECRETBIN_LINK_BASE)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newClient builds the SDK client from flags and environment.
func newClient() (*secretbin.Client, error) {
	logger := zap.NewNop()
	if flagVerbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	opts := []secretbin.Option{secretbin.WithLogger(logger)}

	server := flagServer
	if server == "" {
		server = envOr("SECRETBIN_SERVER", "")
	}
	if server != "" {
		opts = append(opts, secretbin.WithBaseURL(server))
	}

	linkBase := flagLinkBase
	if linkBase == "" {
		linkBase = envOr("SECRETBIN_LINK_BASE", "")
	}
	if linkBase != "" {
		opts = append(opts, secretbin.WithLinkBaseURL(linkBase))
	}

	return secretbin.New(opts...)
}
