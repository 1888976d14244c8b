package auth

import "errors"

// Token verification failures, ordered by verification stage.
var (
	ErrInvalidFormat    = errors.New("invalid token format")
	ErrBadSignature     = errors.New("bad signature")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrTokenExpired     = errors.New("token expired")
)
