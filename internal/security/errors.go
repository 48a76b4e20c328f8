package security

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRequest is returned when a login body cannot be decoded.
	ErrMalformedRequest = errors.New("malformed login request")

	// ErrAuthentication is returned when credentials or a token are rejected.
	ErrAuthentication = errors.New("authentication failed")

	// ErrInvalidToken is returned by Codec.Decode for bad signatures, expired
	// tokens and anything that does not parse as a token. It satisfies
	// errors.Is(err, ErrAuthentication).
	ErrInvalidToken = fmt.Errorf("invalid token: %w", ErrAuthentication)

	// ErrEmptySubject is returned when asked to sign a token without a username.
	ErrEmptySubject = errors.New("token subject is empty")
)
