package procfs

import (
	"errors"

	"github.com/pranshuparmar/procfs/pkg/model"
)

// hexWordLen is the number of hex digits in one 32-bit address word.
const hexWordLen = 8

// ParseIPv4Address decodes the 8 hex digit form used by /proc/net/tcp and
// friends. The digits are the kernel's in-memory word, so on little-endian
// hosts "0100007F" is 127.0.0.1.
func ParseIPv4Address(token string) (model.IP, error) {
	if len(token) != hexWordLen {
		return model.IP{}, NewParseError("corrupted IPv4 address - bad length", token, nil)
	}
	raw, err := ParseInt[uint32](token, Hex)
	if err != nil {
		return model.IP{}, NewParseError("corrupted IPv4 address", token, err)
	}
	return model.IPv4(raw), nil
}

// ParseIPv6Address decodes the 32 hex digit form: four consecutive 32-bit
// words, kept in the order they are printed.
func ParseIPv6Address(token string) (model.IP, error) {
	var raw [4]uint32
	if len(token) != len(raw)*hexWordLen {
		return model.IP{}, NewParseError("corrupted IPv6 address - bad length", token, nil)
	}
	for i := range raw {
		word, err := ParseInt[uint32](token[i*hexWordLen:(i+1)*hexWordLen], Hex)
		if err != nil {
			return model.IP{}, NewParseError("corrupted IPv6 address", token, err)
		}
		raw[i] = word
	}
	return model.IPv6(raw), nil
}

// ParseAddress decodes an "address:port" pair such as "0100007F:0050". The
// address length picks the family; the port is hex.
func ParseAddress(token string) (model.IP, uint16, error) {
	const (
		tokIP = iota
		tokPort
		tokCount
	)

	tokens := Split(token, ':', true)
	if len(tokens) != tokCount {
		return model.IP{}, 0, NewParseError("corrupted net socket address - unexpected token count", token, nil)
	}

	var (
		addr model.IP
		err  error
	)
	switch len(tokens[tokIP]) {
	case hexWordLen:
		addr, err = ParseIPv4Address(tokens[tokIP])
	case 4 * hexWordLen:
		addr, err = ParseIPv6Address(tokens[tokIP])
	default:
		return model.IP{}, 0, NewParseError("corrupted net socket address - bad length", token, nil)
	}
	if err != nil {
		return model.IP{}, 0, err
	}

	port, err := ParseInt[uint16](tokens[tokPort], Hex)
	if err != nil {
		return model.IP{}, 0, NewParseError("corrupted net socket address - bad port", token, err)
	}
	return addr, port, nil
}

// ParseMemorySize decodes "<digits> <unit>" (e.g. "1024 kB") into the raw
// magnitude and the unit token. Converting the unit is left to the caller;
// see MemoryUnitMultiplier.
func ParseMemorySize(token string) (uint64, string, error) {
	const (
		tokSize = iota
		tokUnit
		tokCount
	)

	tokens := Fields(token)
	if len(tokens) != tokCount {
		return 0, "", NewParseError("corrupted memory size - unexpected token count", token, nil)
	}

	size, err := ParseInt[uint64](tokens[tokSize], Decimal)
	switch {
	case errors.Is(err, ErrOutOfRange):
		return 0, "", NewParseError("corrupted memory size - out of range", token, err)
	case err != nil:
		return 0, "", NewParseError("corrupted memory size - invalid argument", token, err)
	}
	return size, tokens[tokUnit], nil
}

// MemoryUnitMultiplier returns the byte count of one unit as the kernel
// spells it. The kernel's "kB" is 1024 bytes.
func MemoryUnitMultiplier(unit string) (uint64, error) {
	switch unit {
	case "B":
		return 1, nil
	case "kB", "KB":
		return 1 << 10, nil
	case "mB", "MB":
		return 1 << 20, nil
	case "gB", "GB":
		return 1 << 30, nil
	}
	return 0, NewParseError("unknown memory unit", unit, nil)
}
