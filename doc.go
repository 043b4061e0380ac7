// Package secretbin provides a Go client SDK for secretbin, a one-time secret
// sharing service. Secrets are encrypted in the client before transmission,
// so the server only ever relays ciphertext, and every secret is destroyed
// after a single retrieval or at its expiry deadline.
//
// Two encryption modes are available on top of plain transport. Passphrase
// mode derives an AES key from a shared passphrase, for secrets handed to a
// specific person. End-to-end mode generates an RSA keypair when requesting a
// secret from someone else: the fulfiller encrypts under the public half and
// only the requester's machine holds the private half.
//
// Basic usage:
//
//	client, err := secretbin.New(secretbin.WithBaseURL("https://secretbin.example"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lc := client.NewLifecycle()
//	handle, err := lc.CreateSecret(ctx, "the launch codes",
//	    secretbin.WithPassphrase("horse-staple"),
//	    secretbin.WithExpiry(time.Hour))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Share this link:", handle.SecretLink)
package secretbin
