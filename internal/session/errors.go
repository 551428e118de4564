package session

import "errors"

// ErrCredentialNotFound indicates no stored credential exists for a
// service endpoint. Returned by repository lookups; Manager callers
// see the not-found condition as a boolean instead.
var ErrCredentialNotFound = errors.New("session: credential not found")
