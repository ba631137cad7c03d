package domain

import "errors"

// ErrEmailNotFound distinguishes missing records from other storage
// failures so the transport layer can answer 404 instead of 500.
var ErrEmailNotFound = errors.New("email not found")
