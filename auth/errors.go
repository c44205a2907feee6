package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so login failures never reveal which factor was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken means the token is malformed or the signature check failed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken means the signature was valid but the expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)
