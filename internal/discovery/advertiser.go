package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/mdns"

	"github.com/Bhavna2020/ippcored/internal/model"
)

const refreshInterval = 10 * time.Second

// Advertiser broadcasts every accepting, non-stopped printer over mDNS
// as _ipp._tcp/_ipps._tcp, the way CUPS advertises shared queues.
// Best-effort: failures never block server startup, matching the
// teacher's "intentionally best effort" comment on DNSSDAdvertiser.
type Advertiser struct {
	hostName string
	port     int
	tls      bool
	snapshot func() []model.Printer

	zone   *zone
	server *mdns.Server

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds an Advertiser. hostName should be a bare or ".local."
// suffixed hostname; snapshot is called on every refresh tick to read
// the current printer set (cmd/ippserverd passes a closure over the
// printer Store's Snapshot).
func New(hostName string, port int, tlsEnabled bool, snapshot func() []model.Printer) (*Advertiser, error) {
	z := &zone{}
	server, err := mdns.NewServer(&mdns.Config{Zone: z, LogEmptyResponses: false})
	if err != nil {
		return nil, fmt.Errorf("discovery: new mdns server: %w", err)
	}
	return &Advertiser{
		hostName: normalizeHostName(hostName),
		port:     port,
		tls:      tlsEnabled,
		snapshot: snapshot,
		zone:     z,
		server:   server,
	}, nil
}

func normalizeHostName(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	if strings.Contains(h, ".") {
		if !strings.HasSuffix(h, ".") {
			h += "."
		}
		return h
	}
	return h + ".local."
}

// Start begins the periodic refresh loop; it returns immediately.
func (a *Advertiser) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.wg.Add(1)
	go a.loop(runCtx)
}

func (a *Advertiser) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
	if a.server != nil {
		_ = a.server.Shutdown()
	}
}

func (a *Advertiser) loop(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	a.refresh()
	for {
		select {
		case <-ticker.C:
			a.refresh()
		case <-ctx.Done():
			return
		}
	}
}

func (a *Advertiser) refresh() {
	printers := a.snapshot()
	services := make([]*mdns.MDNSService, 0, len(printers)*2)

	for _, p := range printers {
		if !p.AcceptingJobs || p.IsStopped {
			continue
		}
		instance := instanceName(p)
		txt := txtRecord(p, a.port, a.tls)

		if svc, err := mdns.NewMDNSService(instance, "_ipp._tcp", "local", a.hostName, a.port, nil, txt); err == nil {
			services = append(services, svc)
		}
		if a.tls {
			if svc, err := mdns.NewMDNSService(instance, "_ipps._tcp", "local", a.hostName, a.port, nil, txt); err == nil {
				services = append(services, svc)
			}
		}
	}
	a.zone.set(services)
}

func instanceName(p model.Printer) string {
	if strings.TrimSpace(p.DNSSDName) != "" {
		return p.DNSSDName
	}
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return "Printer"
}

func txtRecord(p model.Printer, port int, tlsEnabled bool) []string {
	scheme := "http"
	if tlsEnabled {
		scheme = "https"
	}
	txt := []string{
		"txtvers=1",
		"qtotal=1",
		fmt.Sprintf("rp=%s", strings.TrimPrefix(p.ResourcePath, "/")),
		fmt.Sprintf("adminurl=%s://localhost:%d%s", scheme, port, p.ResourcePath),
	}
	if p.UUID != "" {
		txt = append(txt, "UUID="+p.UUID)
	}
	if strings.TrimSpace(p.Location) != "" {
		txt = append(txt, "note="+strings.TrimSpace(p.Location))
	}
	txt = append(txt, "ty="+printerTypeName(p))
	return txt
}

func printerTypeName(p model.Printer) string {
	if strings.TrimSpace(p.Driver.DeviceID) != "" {
		return p.Driver.DeviceID
	}
	return "Unknown"
}
