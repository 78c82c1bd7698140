// Package services implements the storefront engine: identity registry,
// authentication and sessions, password reset, cart, order ledger and
// subscriber registry.
//
// Every service reads its documents fresh from the store on each call and
// writes them back whole. Expected failures are returned as *common.Error
// sentinels (match with errors.Is, classify with common.KindOf); anything
// else is a storage failure wrapped with context.
//
// Time is taken from a per-service now function so expiry can be tested
// without sleeping. Expiry is evaluated lazily when a session or reset
// request is read; nothing runs in the background.
package services
