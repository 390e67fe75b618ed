// Package subnet implements IPv4 netmask parsing and subnet arithmetic.
package subnet

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// AmbiguityPolicy controls how Normalize treats a dotted mask token that
// is itself a syntactically valid IPv4 address (e.g. "192.168.1.1").
type AmbiguityPolicy int

const (
	// RejectAmbiguous fails such tokens with ErrAmbiguousIP. Used when the
	// mask arrives on its own and could be a mistyped address.
	RejectAmbiguous AmbiguityPolicy = iota

	// AcceptAsLiteral passes such tokens through unchanged. Used when the
	// mask arrives paired with an IP, where position resolves the ambiguity.
	AcceptAsLiteral
)

// Normalize parses a raw mask token into a dotted-decimal netmask string.
// Accepted forms, in precedence order: a 0x-prefixed 32-bit hex value, a
// dotted four-octet mask, or a bare CIDR prefix length (0-32).
//
// Normalize validates octet ranges only; it does not require the bit
// pattern to be contiguous. PrefixLen enforces contiguity where a CIDR
// value is actually derived.
func Normalize(token string, policy AmbiguityPolicy) (string, error) {
	if strings.HasPrefix(token, "0x") || strings.HasPrefix(token, "0X") {
		v, err := strconv.ParseUint(token[2:], 16, 32)
		if err != nil {
			return "", errors.Wrapf(ErrInvalidFormat, "bad hex mask %q", token)
		}
		return FormatQuad(uint32(v)), nil
	}

	for _, r := range token {
		if unicode.IsLetter(r) {
			return "", errors.Wrapf(ErrInvalidFormat, "unexpected letter in %q", token)
		}
	}

	parts := strings.Split(token, ".")
	switch {
	case len(parts) == 4:
		if _, err := ParseQuad(token); err == nil {
			// A well-formed quad is indistinguishable from an IP address.
			if policy == RejectAmbiguous {
				return "", errors.Wrapf(ErrAmbiguousIP, "%s", token)
			}
			return token, nil
		}
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 || n > 255 {
				return "", errors.Wrapf(ErrInvalidFormat, "octet %q out of range", p)
			}
		}
		return token, nil

	case len(parts) == 1 && isDigits(token):
		n, err := strconv.Atoi(token)
		if err != nil || n > 32 {
			return "", errors.Wrapf(ErrInvalidFormat, "prefix length %q out of range", token)
		}
		return FormatQuad(MaskFromPrefix(n)), nil
	}

	return "", errors.Wrapf(ErrInvalidFormat, "%q", token)
}

// isDigits reports whether s is a non-empty run of ASCII digits. Signed
// tokens like "+5" are not prefix lengths.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MaskFromPrefix returns the netmask with n leading set bits, 0 <= n <= 32.
func MaskFromPrefix(n int) uint32 {
	if n <= 0 {
		return 0
	}
	return ^uint32(0) << (32 - uint(n))
}
