// Package common defines shared sentinel errors used across taskboard
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (

	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthenticated = errors.New("invalid credentials")
	ErrorValidation      = errors.New("validation error")
)
