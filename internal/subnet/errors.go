package subnet

import "github.com/pkg/errors"

// Sentinel errors returned by the mask and network functions. Callers
// classify with errors.Is; wrapped variants carry the offending token.
var (
	// ErrInvalidFormat marks a malformed mask token: non-numeric parts,
	// wrong part count, out-of-range octet or prefix length, bad hex.
	ErrInvalidFormat = errors.New("invalid mask format")

	// ErrAmbiguousIP marks a dotted mask token that is itself a valid
	// IPv4 address and was supplied without an accompanying IP.
	ErrAmbiguousIP = errors.New("mask looks like an IP address")

	// ErrInvalidAddress marks an IP token that is not a valid IPv4 address.
	ErrInvalidAddress = errors.New("invalid IPv4 address")

	// ErrInvalidMask marks a netmask that is structurally valid but not a
	// contiguous run of set high bits.
	ErrInvalidMask = errors.New("invalid netmask")
)
