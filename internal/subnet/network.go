package subnet

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"net"

	"github.com/pkg/errors"
)

// Info describes an IPv4 subnet, optionally in the context of an address.
// Address-context fields (IP, Network, Broadcast, FirstUsable, LastUsable)
// are empty for a standalone mask description.
type Info struct {
	IP          string
	CIDR        int
	Netmask     string
	NetmaskHex  string
	Wildcard    string
	Network     string
	Broadcast   string
	UsableCount uint64
	FirstUsable string
	LastUsable  string
}

// HasHostRange reports whether the subnet has usable hosts distinct from
// its network and broadcast addresses. False for /31 and /32.
func (i Info) HasHostRange() bool {
	return i.CIDR < 31
}

// MaskInfo describes a netmask with no address context: prefix length,
// hex form, wildcard bits and usable host count.
func MaskInfo(mask string) (Info, error) {
	m, err := ParseQuad(mask)
	if err != nil {
		return Info{}, errors.Wrapf(ErrInvalidMask, "%s", mask)
	}
	cidr, err := PrefixLen(m)
	if err != nil {
		return Info{}, err
	}
	return Info{
		CIDR:        cidr,
		Netmask:     FormatQuad(m),
		NetmaskHex:  fmt.Sprintf("0x%08x", m),
		Wildcard:    FormatQuad(^m),
		UsableCount: usableHosts(cidr),
	}, nil
}

// NetworkInfo computes the subnet containing ip under the given mask
// token, which may be any form Normalize accepts. Host bits in ip are
// cleared rather than rejected.
func NetworkInfo(ip, mask string) (Info, error) {
	addr, err := ParseQuad(ip)
	if err != nil {
		return Info{}, errors.Wrapf(ErrInvalidAddress, "%s", ip)
	}
	normalized, err := Normalize(mask, AcceptAsLiteral)
	if err != nil {
		return Info{}, err
	}
	m, err := ParseQuad(normalized)
	if err != nil {
		return Info{}, errors.Wrapf(ErrInvalidMask, "%s", normalized)
	}
	cidr, err := PrefixLen(m)
	if err != nil {
		return Info{}, err
	}

	network := addr & m
	broadcast := network | ^m
	usable := usableHosts(cidr)

	info := Info{
		IP:          ip,
		CIDR:        cidr,
		Netmask:     FormatQuad(m),
		NetmaskHex:  fmt.Sprintf("0x%08x", m),
		Wildcard:    FormatQuad(^m),
		Network:     FormatQuad(network),
		Broadcast:   FormatQuad(broadcast),
		UsableCount: usable,
		FirstUsable: FormatQuad(network),
		LastUsable:  FormatQuad(broadcast),
	}
	// A /31 counts 2 usable addresses but they are the network and
	// broadcast themselves, so the narrowing applies only below /31.
	if cidr < 31 {
		info.FirstUsable = FormatQuad(network + 1)
		info.LastUsable = FormatQuad(broadcast - 1)
	}
	return info, nil
}

// PrefixLen returns the CIDR prefix length of mask, or ErrInvalidMask if
// the set bits are not a contiguous run from the top.
func PrefixLen(mask uint32) (int, error) {
	ones := bits.LeadingZeros32(^mask)
	if mask != MaskFromPrefix(ones) {
		return 0, errors.Wrapf(ErrInvalidMask, "%s has non-contiguous bits", FormatQuad(mask))
	}
	return ones, nil
}

// usableHosts counts addresses excluding network and broadcast, except
// for /31 and /32 where the whole block counts.
func usableHosts(cidr int) uint64 {
	total := uint64(1) << (32 - uint(cidr))
	if cidr < 31 {
		return total - 2
	}
	return total
}

// ParseQuad parses a dotted four-octet IPv4 string into its 32-bit value.
func ParseQuad(s string) (uint32, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return 0, errors.Errorf("not a dotted quad: %q", s)
	}
	v4 := ip.To4()
	if v4 == nil {
		return 0, errors.Errorf("not an IPv4 address: %q", s)
	}
	return binary.BigEndian.Uint32(v4), nil
}

// FormatQuad formats a 32-bit value as a dotted four-octet string.
func FormatQuad(v uint32) string {
	ip := make(net.IP, net.IPv4len)
	binary.BigEndian.PutUint32(ip, v)
	return ip.String()
}
