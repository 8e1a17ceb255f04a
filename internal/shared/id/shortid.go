// Package id generates the prefixed identifiers of tickets and messages,
// e.g. "tk_xK9mP2vL3nQa" and "msg_7fJ2kq0ZbW1c".
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the length of the random part of generated ids.
	DefaultLength = 12

	// MaxLength bounds the random part accepted by Validate.
	MaxLength = 64
)

const (
	PrefixTicket  = "tk"
	PrefixMessage = "msg"
)

var alphabetLen = big.NewInt(int64(len(alphabet)))

// random returns n cryptographically random base62 characters.
func random(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String(), nil
}

func generate(prefix string) (string, error) {
	body, err := random(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + body, nil
}

func NewTicketID() (string, error) {
	return generate(PrefixTicket)
}

func NewMessageID() (string, error) {
	return generate(PrefixMessage)
}

// Validate checks that s is prefix, an underscore, then 1 to MaxLength
// base62 characters.
func Validate(s, prefix string) error {
	body, ok := strings.CutPrefix(s, prefix+"_")
	if !ok {
		return fmt.Errorf("invalid id %q: expected prefix %s_", s, prefix)
	}
	if body == "" || len(body) > MaxLength {
		return fmt.Errorf("invalid id %q: bad length", s)
	}
	for i := 0; i < len(body); i++ {
		if strings.IndexByte(alphabet, body[i]) < 0 {
			return fmt.Errorf("invalid id %q: unexpected character %q", s, body[i])
		}
	}
	return nil
}

// ValidateTicketID checks that s looks like a ticket id.
func ValidateTicketID(s string) error {
	return Validate(s, PrefixTicket)
}

// ValidateMessageID checks that s looks like a message id.
func ValidateMessageID(s string) error {
	return Validate(s, PrefixMessage)
}
