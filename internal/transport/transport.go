// Package transport is the HTTP collaborator: it decodes an inbound
// IPP request from an *http.Request, builds the collab.ClientEnvelope
// the dispatcher needs, and encodes the dispatcher's response back onto
// the wire. Grounded on the teacher's internal/server/http.go
// (content-type gating, MaxBytesReader) and ipp.go's handleIPPRequest
// (decode-then-dispatch-then-encode shape), stripped of everything that
// belongs to CUPS's web UI and legacy operation set.
package transport

import (
	"bytes"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/auth"
	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/dispatch"
)

const defaultIPPPort = 631

// Handler adapts http.Request/http.ResponseWriter to the dispatcher.
type Handler struct {
	Dispatcher *dispatch.Dispatcher
	// Auth, if set, is consulted to turn an HTTP Basic-Auth header into
	// ClientEnvelope.AuthenticatedUser. Nil means every request is
	// anonymous — fine for a system with no accounts configured.
	Auth *auth.Store
	// MaxRequestSize caps the decoded request body; 0 means unlimited.
	MaxRequestSize int64
	// TLSEnabled reports whether this listener terminates TLS itself,
	// for ClientEnvelope.TLS when r.TLS is nil behind a reverse proxy
	// that already terminated it.
	TLSEnabled bool
	Logger     *log.Logger
}

func (h *Handler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.Default()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !isIPPContentType(r) {
		http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
		return
	}
	if h.MaxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxRequestSize)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "error reading body", http.StatusBadRequest)
		return
	}
	buf := bytes.NewBuffer(body)

	var req goipp.Message
	if err := req.Decode(buf); err != nil {
		h.logger().Printf("transport: malformed ipp request from %s: %v", r.RemoteAddr, err)
		http.Error(w, "malformed ipp request", http.StatusBadRequest)
		return
	}

	client := h.clientEnvelope(r, buf)
	resp, status := h.Dispatcher.Dispatch(&req, client)
	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", goipp.ContentType)
	w.WriteHeader(http.StatusOK)
	if err := resp.Encode(w); err != nil {
		h.logger().Printf("transport: error encoding response to %s: %v", r.RemoteAddr, err)
	}
}

func isIPPContentType(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/ipp")
}

func (h *Handler) clientEnvelope(r *http.Request, body *bytes.Buffer) collab.ClientEnvelope {
	host, port := hostPort(r.Host, h.TLSEnabled)
	return collab.ClientEnvelope{
		AuthenticatedUser: h.authenticate(r),
		Host:              host,
		Port:              port,
		TLS:               r.TLS != nil || h.TLSEnabled,
		HasBody:           body.Len() > 0,
		Body:              body,
	}
}

// hostPort splits the request's Host header the way the dispatcher's
// URI builders expect: the address the client dialed, not the client's
// own remote address (the teacher's job-originating-host-name uses
// RemoteAddr for that, which is a distinct, unrelated field this spec
// doesn't surface).
func hostPort(reqHost string, tlsEnabled bool) (string, int) {
	reqHost = strings.TrimSpace(reqHost)
	if reqHost == "" {
		return "localhost", defaultIPPPort
	}
	if h, p, err := net.SplitHostPort(reqHost); err == nil {
		port, err := strconv.Atoi(p)
		if err != nil {
			port = defaultIPPPort
		}
		return h, port
	}
	return reqHost, defaultIPPPort
}

func (h *Handler) authenticate(r *http.Request) string {
	if h.Auth == nil {
		return ""
	}
	user, pass, ok := r.BasicAuth()
	if !ok || user == "" {
		return ""
	}
	if _, ok := h.Auth.VerifyPassword(r.Context(), user, pass); ok {
		return user
	}
	return ""
}
