package driver

import (
	"testing"
	"time"

	"github.com/Bhavna2020/ippcored/internal/model"
)

func TestStatusNoopWithoutRegisteredDevice(t *testing.T) {
	poller, err := NewSNMPStatusPoller("public", time.Second, 4)
	if err != nil {
		t.Fatalf("NewSNMPStatusPoller: %v", err)
	}
	p := &model.Printer{ID: 1, DeviceInUse: true}
	poller.Status(p)
	if !p.DeviceInUse {
		t.Fatal("Status should not touch a printer with no registered device")
	}
}

func TestStatusServesFreshCacheWithoutPolling(t *testing.T) {
	poller, err := NewSNMPStatusPoller("public", time.Second, 4)
	if err != nil {
		t.Fatalf("NewSNMPStatusPoller: %v", err)
	}
	poller.RegisterDevice(7, "snmp://192.0.2.1:161")
	poller.cache.Add(7, cacheEntry{
		snap: snmpSnapshot{
			sysDescr: "Example MFP",
			inUse:    true,
			supplies: []model.Supply{{Description: "Black Toner", Color: model.ColorBlack, Type: model.TypeToner, Level: 42}},
		},
		polledAt: time.Now(),
	})

	p := &model.Printer{ID: 7}
	poller.Status(p)

	if !p.DeviceInUse {
		t.Fatal("expected DeviceInUse to be set from cache")
	}
	if p.Driver.DeviceID != "Example MFP" {
		t.Fatalf("DeviceID = %q, want %q", p.Driver.DeviceID, "Example MFP")
	}
	if len(p.Supplies) != 1 || p.Supplies[0].Level != 42 {
		t.Fatalf("unexpected supplies: %+v", p.Supplies)
	}
}

func TestIdentifyRejectsUnsupportedAction(t *testing.T) {
	poller, err := NewSNMPStatusPoller("public", time.Second, 4)
	if err != nil {
		t.Fatalf("NewSNMPStatusPoller: %v", err)
	}
	p := &model.Printer{ID: 3, Driver: model.DriverData{IdentifySupported: model.IdentifyActionsFlash}}

	if err := poller.Identify(p, model.IdentifyActionsSound, "hello"); err == nil {
		t.Fatal("expected error for an identify action the driver never advertised")
	}
	if err := poller.Identify(p, model.IdentifyActionsFlash, "hello"); err != nil {
		t.Fatalf("Identify: %v", err)
	}
}

func TestClassifySupply(t *testing.T) {
	cases := []struct {
		desc      string
		wantColor model.SupplyColor
		wantType  model.SupplyType
	}{
		{"Black Toner Cartridge", model.ColorBlack, model.TypeToner},
		{"Cyan Ink", model.ColorCyan, model.TypeInk},
		{"Waste Toner Box", model.ColorUnknown, model.TypeWaste},
		{"Tri-color Cartridge", model.ColorMultiple, model.TypeUnknownSupply},
	}
	for _, c := range cases {
		color, typ := classifySupply(c.desc)
		if color != c.wantColor || typ != c.wantType {
			t.Errorf("classifySupply(%q) = (%v, %v), want (%v, %v)", c.desc, color, typ, c.wantColor, c.wantType)
		}
	}
}

func TestHostPortParsesSNMPURI(t *testing.T) {
	host, port, ok := hostPort("snmp://10.0.0.5:1161")
	if !ok || host != "10.0.0.5" || port != "1161" {
		t.Fatalf("hostPort = (%q, %q, %v)", host, port, ok)
	}
	if _, _, ok := hostPort("not a uri"); ok {
		t.Fatal("expected invalid uri to fail")
	}
}
