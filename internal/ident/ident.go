// Package ident generates the short URL-safe identifiers used as session
// keys. Callers treat the output as opaque.
package ident

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Length is the number of characters in a generated identifier. Ten
// characters over the 64-symbol nanoid alphabet keeps collisions negligible
// at the session volumes this service sees.
const Length = 10

// New returns a fresh URL-safe identifier (letters, digits, '-', '_').
func New() (string, error) {
	id, err := gonanoid.New(Length)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return id, nil
}
