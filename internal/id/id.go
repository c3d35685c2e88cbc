// Package id generates prefixed NanoID identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes.
const (
	PrefixUser  = "usr"
	PrefixToken = "tok"
)

// Generate returns prefix-nanoid, e.g. "usr-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// MustGenerate is Generate that panics when the system has no entropy.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}

// NewUserID returns a fresh user id.
func NewUserID() (string, error) {
	return Generate(PrefixUser)
}

// NewTokenID returns a fresh token id.
func NewTokenID() (string, error) {
	return Generate(PrefixToken)
}
