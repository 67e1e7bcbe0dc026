package discovery

import (
	"sync"

	"github.com/hashicorp/mdns"
	"github.com/miekg/dns"
)

// zone is an mdns.Zone backed by a swappable slice of services, so a
// refresh can atomically replace the whole advertised set without
// racing an in-flight mDNS query. Grounded on the teacher's
// internal/server/dnssd_advertiser.go dnssdZone.
type zone struct {
	mu       sync.RWMutex
	services []*mdns.MDNSService
}

func (z *zone) set(services []*mdns.MDNSService) {
	z.mu.Lock()
	z.services = services
	z.mu.Unlock()
}

func (z *zone) Records(q dns.Question) []dns.RR {
	z.mu.RLock()
	services := append([]*mdns.MDNSService(nil), z.services...)
	z.mu.RUnlock()

	var out []dns.RR
	for _, svc := range services {
		if svc != nil {
			out = append(out, svc.Records(q)...)
		}
	}
	return out
}
