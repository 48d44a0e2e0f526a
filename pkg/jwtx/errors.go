package jwtx

import "errors"

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrUnknownKID = errors.New("jwtx: unknown kid")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)
