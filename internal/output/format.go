package output

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/pranshuparmar/procfs/pkg/model"
)

// FormatBytes renders n with a binary unit, e.g. "1.5 KiB".
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatDuration rounds d to whole seconds, or to milliseconds below one
// second.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

// Endpoint joins an address and port, bracketing IPv6 addresses.
func Endpoint(ip model.IP, port uint16) string {
	return net.JoinHostPort(ip.String(), strconv.Itoa(int(port)))
}
