package common

// Paths of the remote item service, relative to the configured base URL.
const (
	TokenPath = "/oauth/token"
	ItemsPath = "/api/items"
)

// Metadata keys used in the local metadata table.
const (
	MetaCredentialSalt   = "credentials.salt"
	MetaCredentialSealed = "credentials.sealed"
	MetaCredentialNonce  = "credentials.nonce"
)
