//go:build linux

package proc

import (
	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// ParseNetDeviceLine decodes one interface row of /proc/net/dev. The name is
// terminated by ':' and may touch the first counter.
func ParseNetDeviceLine(line string) (model.NetDevice, error) {
	var d model.NetDevice

	name, rest := procfs.SplitOnce(line, ':')
	d.Interface = procfs.Trim(name)
	if d.Interface == "" || len(rest) == 0 {
		return d, procfs.NewParseError("corrupted net device - missing interface", line, nil)
	}

	s := newFieldScanner("net device", line, procfs.Fields(rest))
	if !s.need(16) {
		return model.NetDevice{}, s.err
	}
	for i, dst := range []*uint64{
		&d.RxBytes, &d.RxPackets, &d.RxErrs, &d.RxDrop,
		&d.RxFifo, &d.RxFrame, &d.RxCompressed, &d.RxMulticast,
		&d.TxBytes, &d.TxPackets, &d.TxErrs, &d.TxDrop,
		&d.TxFifo, &d.TxColls, &d.TxCarrier, &d.TxCompressed,
	} {
		scanInt(s, dst, i, procfs.Decimal)
	}
	if s.err != nil {
		return model.NetDevice{}, s.err
	}
	return d, nil
}

// NetDevices reads /proc/net/dev.
func (fsys FS) NetDevices() ([]model.NetDevice, error) {
	var devs []model.NetDevice
	n := 0
	err := procfs.ReadLines(fsys.path("net", "dev"), func(line string) error {
		if n++; n <= 2 || procfs.Trim(line) == "" {
			return nil
		}
		d, err := ParseNetDeviceLine(line)
		if err != nil {
			return err
		}
		devs = append(devs, d)
		return nil
	})
	return devs, err
}

const (
	routeIface = iota
	routeDestination
	routeGateway
	routeFlags
	routeRefCnt
	routeUse
	routeMetric
	routeMask
	routeMTU
	routeWindow
	routeIRTT
)

// ParseNetRouteLine decodes one data row of /proc/net/route. Addresses are
// host-order hex words, like the socket tables.
func ParseNetRouteLine(line string) (model.NetRoute, error) {
	var r model.NetRoute

	s := newFieldScanner("net route", line, procfs.Fields(line))
	if !s.need(routeIRTT + 1) {
		return r, s.err
	}
	r.Iface = s.fields[routeIface]
	s.ipv4(&r.Destination, routeDestination)
	s.ipv4(&r.Gateway, routeGateway)
	scanInt(s, &r.Flags, routeFlags, procfs.Hex)
	scanInt(s, &r.RefCnt, routeRefCnt, procfs.Decimal)
	scanInt(s, &r.Use, routeUse, procfs.Decimal)
	scanInt(s, &r.Metric, routeMetric, procfs.Decimal)
	s.ipv4(&r.Mask, routeMask)
	scanInt(s, &r.MTU, routeMTU, procfs.Decimal)
	scanInt(s, &r.Window, routeWindow, procfs.Decimal)
	scanInt(s, &r.IRTT, routeIRTT, procfs.Decimal)
	if s.err != nil {
		return model.NetRoute{}, s.err
	}
	return r, nil
}

func (s *fieldScanner) ipv4(dst *model.IP, i int) {
	if !s.has(i) {
		return
	}
	ip, err := procfs.ParseIPv4Address(s.fields[i])
	if err != nil {
		s.fail(i, err)
		return
	}
	*dst = ip
}

// NetRoutes reads the IPv4 routing table.
func (fsys FS) NetRoutes() ([]model.NetRoute, error) {
	var routes []model.NetRoute
	err := fsys.readTable(fsys.path("net", "route"), func(line string) error {
		r, err := ParseNetRouteLine(line)
		if err != nil {
			return err
		}
		routes = append(routes, r)
		return nil
	})
	return routes, err
}
