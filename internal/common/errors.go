// Package common holds constants and sentinel errors shared by the client
// packages. Callers should match errors with errors.Is.
package common

import "errors"

var (
	// ErrMissingItemID is returned when an operation needs a server-assigned id.
	ErrMissingItemID = errors.New("item has no id")

	// ErrMalformedResponse means the body did not have the expected shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNoToken means the token endpoint answered without a usable token.
	ErrNoToken = errors.New("no token in response")
)
