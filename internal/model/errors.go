package model

import "errors"

// ErrInvalidClaim indicates a malformed claim (empty required fields).
// Callers should reject such claims before verification; the engine
// also guards against them.
var ErrInvalidClaim = errors.New("invalid claim")
