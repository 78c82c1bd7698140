// Package cli provides the interactive crownstore command-line client.
//
// It wires configuration, the local store, the reset-code delivery channel
// and the state engine, then runs a REPL over them. The prompt shows the
// logged-in customer and the cart size.
//
// Key features:
//   - Register / Login / Logout / password reset by emailed code
//   - Profile and favorites
//   - Cart editing and checkout
//   - Order history and the store overview
//   - Newsletter sign-up, listing and export
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command set.
package cli
