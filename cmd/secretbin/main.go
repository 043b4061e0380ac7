// Command secretbin is a command line client for the secretbin one-time
// secret service: share a secret, request one, fulfil a request, all without
// the plaintext ever being stored server-side in a readable form.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
