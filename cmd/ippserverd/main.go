// Command ippserverd wires together the IPP core's collaborators into a
// running daemon: it loads configuration, opens the persistence layers,
// restores the printer's last checkpoint (if any), starts the SNMP
// status poller and mDNS advertiser, and serves IPP over HTTP/HTTPS
// until it receives a termination signal. Grounded on the teacher's
// main.go wiring sequence, with the CUPS-specific pieces (PPD loading,
// scheduler, certificate autogeneration, multi-printer listener
// splitting) removed per DESIGN.md.
package main

import (
	"context"
	"crypto/tls"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/Bhavna2020/ippcored/internal/auth"
	"github.com/Bhavna2020/ippcored/internal/config"
	"github.com/Bhavna2020/ippcored/internal/discovery"
	"github.com/Bhavna2020/ippcored/internal/dispatch"
	"github.com/Bhavna2020/ippcored/internal/driver"
	"github.com/Bhavna2020/ippcored/internal/jobmgr"
	"github.com/Bhavna2020/ippcored/internal/logging"
	"github.com/Bhavna2020/ippcored/internal/model"
	"github.com/Bhavna2020/ippcored/internal/persist"
	"github.com/Bhavna2020/ippcored/internal/printer"
	"github.com/Bhavna2020/ippcored/internal/system"
	"github.com/Bhavna2020/ippcored/internal/transport"
)

const defaultPrinterID int64 = 1

func main() {
	confPath := os.Getenv("IPPCORED_CONF")
	cfg, err := config.Load(confPath)
	if err != nil {
		log.Fatalf("ippserverd: load config: %v", err)
	}

	logging.Configure(cfg.ErrorLogPath, cfg.AccessLogPath, cfg.JobLogPath, cfg.MaxLogSize)
	log.SetOutput(logging.ErrorWriter())

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("ippserverd: create data dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		log.Fatalf("ippserverd: create db dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.JobDBPath), 0o755); err != nil {
		log.Fatalf("ippserverd: create job db dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.AuthDBPath), 0o755); err != nil {
		log.Fatalf("ippserverd: create auth db dir: %v", err)
	}
	if err := os.MkdirAll(cfg.SpoolDir, 0o755); err != nil {
		log.Fatalf("ippserverd: create spool dir: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checkpoints, err := persist.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("ippserverd: open checkpoint store: %v", err)
	}
	defer checkpoints.Close()

	authStore, err := auth.Open(ctx, cfg.AuthDBPath)
	if err != nil {
		log.Fatalf("ippserverd: open auth store: %v", err)
	}
	defer authStore.Close()
	if err := authStore.EnsureAdminUser(ctx, cfg.AdminUser, cfg.AdminPassword); err != nil {
		log.Fatalf("ippserverd: ensure admin user: %v", err)
	}

	initial := defaultPrinter(cfg)
	if saved, ok, err := checkpoints.Load(ctx, defaultPrinterID); err != nil {
		log.Printf("ippserverd: warning: load checkpoint: %v", err)
	} else if ok {
		initial = saved
	}
	store := printer.New(initial)

	statusPoller, err := driver.NewSNMPStatusPoller(cfg.SNMPCommunity, time.Duration(cfg.SNMPTimeoutMS)*time.Millisecond, 64)
	if err != nil {
		log.Fatalf("ippserverd: start snmp poller: %v", err)
	}
	if cfg.DeviceURI != "" {
		statusPoller.RegisterDevice(defaultPrinterID, cfg.DeviceURI)
	}

	jobs, err := jobmgr.Open(ctx, cfg.JobDBPath, cfg.SpoolDir, store, log.Default())
	if err != nil {
		log.Fatalf("ippserverd: open job manager: %v", err)
	}
	defer jobs.Close()

	sys := system.New(system.Config{
		TLSOnly:     cfg.TLSOnly,
		TLSDisabled: !cfg.TLSEnabled,
	})
	sys.SetAuthServiceConfigured(true)
	sys.OnConfigChanged = func(printerID int64) {
		if err := checkpoints.Save(ctx, store.Snapshot()); err != nil {
			log.Printf("ippserverd: warning: save checkpoint: %v", err)
		}
	}
	store.OnConfigChanged(func(p printer.Printer) { sys.ConfigChanged(p.ID) })

	d := &dispatch.Dispatcher{
		Store:  store,
		Jobs:   jobs,
		Driver: statusPoller,
		System: sys,
		Auth:   &auth.Authorizer{Store: authStore},
	}

	advertiser, err := discovery.New(cfg.DNSSDHostName, listenPort(cfg.ListenAddr), cfg.TLSEnabled, func() []model.Printer {
		return []model.Printer{store.Snapshot()}
	})
	if err != nil {
		log.Printf("ippserverd: warning: start dns-sd advertiser: %v", err)
	} else {
		advertiser.Start(ctx)
		defer advertiser.Close()
	}

	handler := &transport.Handler{
		Dispatcher:     d,
		Auth:           authStore,
		MaxRequestSize: cfg.MaxRequestSize,
		TLSEnabled:     cfg.TLSEnabled,
		Logger:         log.Default(),
	}

	httpSrv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      logging.HTTPAccessMiddleware(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalf("ippserverd: listen on %s: %v", cfg.ListenAddr, err)
	}
	if cfg.TLSEnabled {
		cert, err := tls.LoadX509KeyPair(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			log.Fatalf("ippserverd: load tls certificate: %v", err)
		}
		ln = tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})
	}

	go func() {
		log.Printf("ippserverd: %s listening on %s", cfg.ServerName, cfg.ListenAddr)
		if err := httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ippserverd: serve: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs

	sys.BeginShutdown()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpSrv.Shutdown(shutdownCtx)

	if err := checkpoints.Save(context.Background(), store.Snapshot()); err != nil {
		log.Printf("ippserverd: warning: save final checkpoint: %v", err)
	}
}

func defaultPrinter(cfg config.Config) model.Printer {
	return model.Printer{
		ID:            defaultPrinterID,
		Name:          cfg.ServerName,
		UUID:          uuid.NewString(),
		ResourcePath:  "/ipp/print",
		AcceptingJobs: true,
		State:         model.StateIdle,
		Driver: model.DriverData{
			ColorSupported: model.ColorModeColor | model.ColorModeMonochrome,
			SidesSupported: model.SidesOneSided,
			MediaSupported: []string{"na_letter_8.5x11in", "iso_a4_210x297mm"},
		},
	}
}

func listenPort(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 631
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 631
	}
	return port
}
