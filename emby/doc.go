// Package emby provides a client for triggering library refreshes on an Emby server.
//
// Emby exposes a legacy username/password login that hands out a session
// token. This package implements the handshake needed to obtain that token
// and the authorized refresh call that follows it.
//
// # Workflow
//
// A refresh runs three sequential requests, each depending on the previous one:
//
//  1. GET /Users/Public resolves the configured username to a user ID
//  2. POST /Users/AuthenticateByName exchanges the password digests for a token
//  3. POST /Library/Refresh asks the server to rescan its library
//
// Every request carries format=json and the fixed device identity headers.
// Tokens are never cached; each call to UpdateLibrary performs the full handshake.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := emby.NewClient("localhost", 8096, logger,
//		emby.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = client.UpdateLibrary(ctx, emby.Credentials{
//		Username: "user",
//		Password: "password",
//	})
//
// # Error Handling
//
// The package defines several error classes:
//
//   - ErrInvalidConfig: missing host, port, username or password
//   - ErrUserNotFound: no public user matches the username
//   - ErrTransport: network failure, unexpected status or malformed body
//   - ErrAuthentication: the server rejected the credentials (also ErrTransport)
//
// Use errors.Is to classify, or IsWorkflowError to tell runtime failures
// apart from setup defects:
//
//	if errors.Is(err, emby.ErrUserNotFound) {
//		// Check emby.username
//	}
package emby
