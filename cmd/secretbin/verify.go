package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var verifyFromEmail string

var verifyCmd = &cobra.Command{
	Use:   "verify <email>",
	Short: "Verify an email address for link delivery",
	Long: `Verify an email address so secretbin may deliver share links to it.

A one-time code is sent to the address; entering it here prints a
verified token for use with 'secretbin create --to ... --token ...'.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFromEmail, "from", "", "sender shown in the verification email")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	toEmail := args[0]

	client, err := newClient()
	if err != nil {
		return err
	}

	verification, err := client.RequestVerification(cmd.Context(), toEmail, verifyFromEmail)
	if err != nil {
		return err
	}

	fmt.Printf("A verification code was sent to %s.\n", toEmail)
	fmt.Print("Enter code: ")
	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read code: %w", err)
	}

	token, err := client.Verify(cmd.Context(), verification.VerifyID, strings.TrimSpace(code))
	if err != nil {
		return err
	}

	fmt.Printf("Verified token: %s\n", color.GreenString(token))
	return nil
}
