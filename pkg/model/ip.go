package model

import (
	"encoding/binary"
	"net/netip"
)

// Family tags which representation an IP holds.
type Family int

const (
	FamilyNone Family = iota
	FamilyIPv4
	FamilyIPv6
)

// IP is an address as the kernel prints it in /proc/net tables: either one
// 32-bit word (IPv4) or four 32-bit words (IPv6), each holding the raw
// in-memory bytes of the kernel's address in host byte order.
//
// Two IPs are equal (==) when both the family and the full storage match.
type IP struct {
	Family  Family
	Storage [4]uint32
}

func IPv4(raw uint32) IP {
	return IP{Family: FamilyIPv4, Storage: [4]uint32{raw}}
}

func IPv6(raw [4]uint32) IP {
	return IP{Family: FamilyIPv6, Storage: raw}
}

func (ip IP) IsV4() bool { return ip.Family == FamilyIPv4 }
func (ip IP) IsV6() bool { return ip.Family == FamilyIPv6 }

// NetIP converts to a netip.Addr. The zero IP converts to the invalid Addr.
func (ip IP) NetIP() netip.Addr {
	switch ip.Family {
	case FamilyIPv4:
		var b [4]byte
		binary.NativeEndian.PutUint32(b[:], ip.Storage[0])
		return netip.AddrFrom4(b)
	case FamilyIPv6:
		var b [16]byte
		for i, word := range ip.Storage {
			binary.NativeEndian.PutUint32(b[i*4:], word)
		}
		return netip.AddrFrom16(b)
	}
	return netip.Addr{}
}

func (ip IP) String() string {
	addr := ip.NetIP()
	if !addr.IsValid() {
		return ""
	}
	return addr.String()
}

// MarshalText renders the address in its usual notation so JSON output
// stays readable. The zero IP marshals as "".
func (ip IP) MarshalText() ([]byte, error) {
	return []byte(ip.String()), nil
}
