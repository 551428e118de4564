package home

import "errors"

// ErrValidation indicates malformed construction input, such as a room
// with no id or name. This is a programming error in the caller, not a
// runtime condition, so construction fails synchronously.
var ErrValidation = errors.New("home: validation failed")
