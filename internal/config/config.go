// Package config loads the daemon's INI-style configuration file using
// gopkg.in/ini.v1, the way ipp-usb's DevState loads its per-device state
// file, rather than reinventing the teacher's hand-rolled bufio parser:
// this spec's configuration surface is flat key/value, exactly what
// ini.v1 already covers.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Config holds everything cmd/ippserverd needs to wire up the daemon.
type Config struct {
	ListenAddr string

	TLSEnabled bool
	TLSOnly    bool
	TLSCert    string
	TLSKey     string

	DataDir    string
	DBPath     string
	JobDBPath  string
	AuthDBPath string
	SpoolDir   string

	ServerName    string
	DNSSDHostName string

	MaxRequestSize int64
	MaxLogSize     int64
	ErrorLogPath   string
	AccessLogPath  string
	JobLogPath     string

	AdminUser     string
	AdminPassword string

	DeviceURI     string
	SNMPCommunity string
	SNMPTimeoutMS int
}

// Default returns the configuration used when no file is present, or as
// the base that a loaded file's sections override.
func Default() Config {
	return Config{
		ListenAddr:     ":631",
		TLSEnabled:     true,
		TLSOnly:        false,
		TLSCert:        "data/conf/server.crt",
		TLSKey:         "data/conf/server.key",
		DataDir:        "data",
		DBPath:         "data/printer.db",
		JobDBPath:      "data/jobs.db",
		AuthDBPath:     "data/auth.db",
		SpoolDir:       "data/spool",
		ServerName:     "ippcored",
		DNSSDHostName:  "",
		MaxRequestSize: 200 << 20,
		MaxLogSize:     8 << 20,
		ErrorLogPath:   "data/log/error.log",
		AccessLogPath:  "data/log/access.log",
		JobLogPath:     "data/log/job.log",
		AdminUser:      "admin",
		AdminPassword:  "admin",
		SNMPCommunity:  "public",
		SNMPTimeoutMS:  2000,
	}
}

// Load reads path (an INI file) over Default() and returns the merged
// configuration. A missing file is not an error; Default() is returned
// unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	file, err := ini.LoadSources(ini.LoadOptions{Loose: true}, path)
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}

	if s, err := file.GetSection("server"); err == nil {
		cfg.ListenAddr = stringOr(s, "listen", cfg.ListenAddr)
		cfg.ServerName = stringOr(s, "name", cfg.ServerName)
		cfg.DNSSDHostName = stringOr(s, "dnssd-host-name", cfg.DNSSDHostName)
		cfg.DataDir = stringOr(s, "data-dir", cfg.DataDir)
		cfg.MaxRequestSize = int64Or(s, "max-request-size", cfg.MaxRequestSize)
	}

	if s, err := file.GetSection("tls"); err == nil {
		cfg.TLSEnabled = boolOr(s, "enabled", cfg.TLSEnabled)
		cfg.TLSOnly = boolOr(s, "only", cfg.TLSOnly)
		cfg.TLSCert = stringOr(s, "cert", cfg.TLSCert)
		cfg.TLSKey = stringOr(s, "key", cfg.TLSKey)
	}

	if s, err := file.GetSection("storage"); err == nil {
		cfg.DBPath = stringOr(s, "db-path", cfg.DBPath)
		cfg.JobDBPath = stringOr(s, "job-db-path", cfg.JobDBPath)
		cfg.AuthDBPath = stringOr(s, "auth-db-path", cfg.AuthDBPath)
		cfg.SpoolDir = stringOr(s, "spool-dir", cfg.SpoolDir)
	}

	if s, err := file.GetSection("logging"); err == nil {
		cfg.MaxLogSize = int64Or(s, "max-size", cfg.MaxLogSize)
		cfg.ErrorLogPath = stringOr(s, "error-log", cfg.ErrorLogPath)
		cfg.AccessLogPath = stringOr(s, "access-log", cfg.AccessLogPath)
		cfg.JobLogPath = stringOr(s, "job-log", cfg.JobLogPath)
	}

	if s, err := file.GetSection("auth"); err == nil {
		cfg.AdminUser = stringOr(s, "admin-user", cfg.AdminUser)
		cfg.AdminPassword = stringOr(s, "admin-password", cfg.AdminPassword)
	}

	if s, err := file.GetSection("device"); err == nil {
		cfg.DeviceURI = stringOr(s, "uri", cfg.DeviceURI)
		cfg.SNMPCommunity = stringOr(s, "snmp-community", cfg.SNMPCommunity)
		cfg.SNMPTimeoutMS = intOr(s, "snmp-timeout-ms", cfg.SNMPTimeoutMS)
	}

	if cfg.TLSOnly {
		cfg.TLSEnabled = true
	}
	return cfg, nil
}

func stringOr(s *ini.Section, key, fallback string) string {
	k, err := s.GetKey(key)
	if err != nil {
		return fallback
	}
	v := strings.TrimSpace(k.String())
	if v == "" {
		return fallback
	}
	return v
}

func boolOr(s *ini.Section, key string, fallback bool) bool {
	k, err := s.GetKey(key)
	if err != nil {
		return fallback
	}
	v, err := k.Bool()
	if err != nil {
		return fallback
	}
	return v
}

func intOr(s *ini.Section, key string, fallback int) int {
	k, err := s.GetKey(key)
	if err != nil {
		return fallback
	}
	v, err := k.Int()
	if err != nil {
		return fallback
	}
	return v
}

func int64Or(s *ini.Section, key string, fallback int64) int64 {
	k, err := s.GetKey(key)
	if err != nil {
		return fallback
	}
	v, err := k.Int64()
	if err != nil {
		return fallback
	}
	return v
}
