package discovery

import (
	"strings"
	"testing"

	"github.com/miekg/dns"

	"github.com/Bhavna2020/ippcored/internal/model"
)

func TestNormalizeHostName(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"printserver":   "printserver.local.",
		"host.example":  "host.example.",
		"host.example.": "host.example.",
	}
	for in, want := range cases {
		if got := normalizeHostName(in); got != want {
			t.Errorf("normalizeHostName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInstanceNamePrefersDNSSDName(t *testing.T) {
	p := model.Printer{Name: "officejet", DNSSDName: "Office Printer"}
	if got := instanceName(p); got != "Office Printer" {
		t.Fatalf("instanceName = %q, want %q", got, "Office Printer")
	}
	p2 := model.Printer{Name: "officejet"}
	if got := instanceName(p2); got != "officejet" {
		t.Fatalf("instanceName = %q, want %q", got, "officejet")
	}
	p3 := model.Printer{}
	if got := instanceName(p3); got != "Printer" {
		t.Fatalf("instanceName = %q, want %q", got, "Printer")
	}
}

func TestTxtRecordIncludesResourcePathAndUUID(t *testing.T) {
	p := model.Printer{
		UUID:         "1234-5678",
		ResourcePath: "/ipp/print/officejet",
		Location:     "3rd floor",
	}
	txt := txtRecord(p, 631, true)

	joined := strings.Join(txt, "\n")
	if !strings.Contains(joined, "rp=ipp/print/officejet") {
		t.Fatalf("expected rp entry, got %v", txt)
	}
	if !strings.Contains(joined, "UUID=1234-5678") {
		t.Fatalf("expected UUID entry, got %v", txt)
	}
	if !strings.Contains(joined, "adminurl=https://localhost:631/ipp/print/officejet") {
		t.Fatalf("expected https adminurl, got %v", txt)
	}
	if !strings.Contains(joined, "note=3rd floor") {
		t.Fatalf("expected note entry, got %v", txt)
	}
}

func TestZoneRecordsEmptyZoneReturnsNoRecords(t *testing.T) {
	z := &zone{}
	z.set(nil)
	q := dns.Question{Name: "_ipp._tcp.local.", Qtype: dns.TypePTR, Qclass: dns.ClassINET}
	if recs := z.Records(q); recs != nil {
		t.Fatalf("expected no records with an empty zone, got %v", recs)
	}
}
