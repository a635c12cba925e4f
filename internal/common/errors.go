// Package common defines shared constants and sentinel errors used across
// PhotoKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Batch precondition errors. These abort a whole upload batch before
	// any item is attempted, and each one maps to a different user action.
	ErrorNoBotConfigured = errors.New("no bot configured")
	ErrorTokenMissing    = errors.New("bot token missing from vault")
	ErrorNetworkBlocked  = errors.New("wifi-only uploads enabled and no qualifying network")

	// Destination access errors: the token is valid but the bot cannot
	// address the configured channel (not a member, missing rights, or
	// a wrong channel id).
	ErrorChatUnreachable = errors.New("destination chat unreachable")
)
