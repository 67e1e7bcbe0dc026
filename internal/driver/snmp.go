// Package driver is the default collab.DriverHooks implementation: an
// SNMP-polled status callback (grounded on the teacher's
// internal/backend/snmp.go QuerySupplies) plus an identify stub. Real
// marking/rendering hardware integration is out of this core's scope
// (spec.md's Non-goals: "driver plug-in loading"); this package exists
// to give the dispatcher's Get-Printer-Attributes status refresh and
// Identify-Printer handlers something real to call.
package driver

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/Bhavna2020/ippcored/internal/model"
)

const (
	oidSysDescr      = ".1.3.6.1.2.1.1.1.0"
	oidHrPrinterStat = ".1.3.6.1.2.1.25.3.5.1.1.1"
	oidSupplyDescr   = ".1.3.6.1.2.1.43.11.1.1.6.1"
	oidSupplyMaxCap  = ".1.3.6.1.2.1.43.11.1.1.8.1"
	oidSupplyLevel   = ".1.3.6.1.2.1.43.11.1.1.9.1"
)

func newSNMPParams(host, port, community string, timeout time.Duration) *gosnmp.GoSNMP {
	params := &gosnmp.GoSNMP{
		Target:    host,
		Port:      161,
		Community: community,
		Version:   gosnmp.Version2c,
		Timeout:   timeout,
		Retries:   1,
	}
	if port != "" && port != "161" {
		if p, err := strconv.Atoi(port); err == nil {
			params.Port = uint16(p)
		}
	}
	return params
}

func hostPort(deviceURI string) (host, port string, ok bool) {
	u, err := url.Parse(deviceURI)
	if err != nil || u.Hostname() == "" {
		return "", "", false
	}
	return u.Hostname(), u.Port(), true
}

// snmpSnapshot is what one poll of a device yields.
type snmpSnapshot struct {
	sysDescr string
	inUse    bool
	supplies []model.Supply
}

func pollDevice(deviceURI, community string, timeout time.Duration) (snmpSnapshot, error) {
	host, port, ok := hostPort(deviceURI)
	if !ok {
		return snmpSnapshot{}, errInvalidDeviceURI
	}
	params := newSNMPParams(host, port, community, timeout)
	if err := params.Connect(); err != nil {
		return snmpSnapshot{}, err
	}
	defer params.Conn.Close()

	var snap snmpSnapshot
	if res, err := params.Get([]string{oidSysDescr, oidHrPrinterStat}); err == nil {
		for _, v := range res.Variables {
			switch v.Name {
			case oidSysDescr:
				if s, ok := v.Value.(string); ok {
					snap.sysDescr = s
				}
			case oidHrPrinterStat:
				if n, ok := toInt(v.Value); ok {
					snap.inUse = n == 4 // hrPrinterStatus(4) = printing
				}
			}
		}
	}

	descr := map[string]string{}
	maxCap := map[string]int{}
	level := map[string]int{}
	_ = params.BulkWalk(oidSupplyDescr, func(pdu gosnmp.SnmpPDU) error {
		if idx := suffix(pdu.Name, oidSupplyDescr); idx != "" {
			if s, ok := pdu.Value.(string); ok {
				descr[idx] = s
			}
		}
		return nil
	})
	_ = params.BulkWalk(oidSupplyMaxCap, func(pdu gosnmp.SnmpPDU) error {
		if idx := suffix(pdu.Name, oidSupplyMaxCap); idx != "" {
			if n, ok := toInt(pdu.Value); ok {
				maxCap[idx] = n
			}
		}
		return nil
	})
	_ = params.BulkWalk(oidSupplyLevel, func(pdu gosnmp.SnmpPDU) error {
		if idx := suffix(pdu.Name, oidSupplyLevel); idx != "" {
			if n, ok := toInt(pdu.Value); ok {
				level[idx] = n
			}
		}
		return nil
	})

	for idx, lvl := range level {
		desc := descr[idx]
		percent := 0
		if max, ok := maxCap[idx]; ok && max > 0 && lvl >= 0 {
			percent = (lvl * 100) / max
		}
		color, typ := classifySupply(desc)
		snap.supplies = append(snap.supplies, model.Supply{
			Description: desc,
			Color:       color,
			Type:        typ,
			Level:       percent,
			IsConsumed:  percent == 0,
		})
	}
	return snap, nil
}

func classifySupply(desc string) (model.SupplyColor, model.SupplyType) {
	d := strings.ToLower(desc)
	color := model.ColorUnknown
	switch {
	case strings.Contains(d, "black"):
		color = model.ColorBlack
	case strings.Contains(d, "cyan"):
		color = model.ColorCyan
	case strings.Contains(d, "magenta"):
		color = model.ColorMagenta
	case strings.Contains(d, "yellow"):
		color = model.ColorYellow
	case strings.Contains(d, "tri-color"), strings.Contains(d, "color"):
		color = model.ColorMultiple
	}
	typ := model.TypeUnknownSupply
	switch {
	case strings.Contains(d, "waste"):
		typ = model.TypeWaste
	case strings.Contains(d, "ink"):
		typ = model.TypeInk
	case strings.Contains(d, "toner"):
		typ = model.TypeToner
	}
	return color, typ
}

func suffix(name, base string) string {
	if strings.HasPrefix(name, base+".") {
		return strings.TrimPrefix(name, base+".")
	}
	return ""
}

func toInt(val any) (int, bool) {
	if val == nil {
		return 0, false
	}
	if bi := gosnmp.ToBigInt(val); bi != nil {
		return int(bi.Int64()), true
	}
	return 0, false
}
