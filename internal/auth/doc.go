// Package auth issues and verifies session tokens and drives the Google
// OAuth login that resolves an email/name pair for a visitor.
package auth
