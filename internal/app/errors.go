// Package app holds the view services behind the JSON API.
package app

import "errors"

var (
	// ErrNotFound marks a lookup for an id upstream does not know.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks a request missing a required argument.
	ErrInvalidInput = errors.New("invalid input")
)
