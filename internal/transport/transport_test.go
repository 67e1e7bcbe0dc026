package transport

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/dispatch"
	"github.com/Bhavna2020/ippcored/internal/model"
	"github.com/Bhavna2020/ippcored/internal/printer"
)

type fakeJobs struct{}

func (fakeJobs) CreateJob(int64, collab.CreateJobParams) (*model.Job, error) { return nil, nil }
func (fakeJobs) CancelJob(*model.Job) error                                  { return nil }
func (fakeJobs) CancelAll(int64) error                                       { return nil }
func (fakeJobs) CopyDocumentData(collab.ClientEnvelope, *model.Job) error    { return nil }
func (fakeJobs) GetJob(int64) (*model.Job, bool)                             { return nil, false }

type fakeSystem struct{}

func (fakeSystem) IsShutdownPending() bool      { return false }
func (fakeSystem) AuthServiceConfigured() bool  { return false }
func (fakeSystem) TLSOnly() bool                { return false }
func (fakeSystem) TLSDisabled() bool            { return true }
func (fakeSystem) ConfigChanged(int64)          {}
func (fakeSystem) Resources() []collab.Resource { return nil }
func (fakeSystem) Now() time.Time               { return time.Now() }

func newTestHandler() *Handler {
	store := printer.New(model.Printer{
		ID:            1,
		Name:          "test",
		ResourcePath:  "/ipp/print",
		AcceptingJobs: true,
		State:         model.StateIdle,
	})
	d := &dispatch.Dispatcher{
		Store:  store,
		Jobs:   fakeJobs{},
		System: fakeSystem{},
	}
	return &Handler{Dispatcher: d}
}

func encodeGetPrinterAttributes(t *testing.T) []byte {
	t.Helper()
	req := goipp.NewRequest(goipp.DefaultVersion, goipp.OpGetPrinterAttributes, 1)
	req.Operation.Add(goipp.MakeAttribute("attributes-charset", goipp.TagCharset, goipp.String("utf-8")))
	req.Operation.Add(goipp.MakeAttribute("attributes-natural-language", goipp.TagLanguage, goipp.String("en")))
	req.Operation.Add(goipp.MakeAttribute("printer-uri", goipp.TagURI, goipp.String("ipp://localhost/ipp/print")))
	var buf bytes.Buffer
	if err := req.Encode(&buf); err != nil {
		t.Fatalf("encode request: %v", err)
	}
	return buf.Bytes()
}

func TestServeHTTPRejectsNonPost(t *testing.T) {
	h := newTestHandler()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ipp/print", nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestServeHTTPRejectsWrongContentType(t *testing.T) {
	h := newTestHandler()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ipp/print", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "text/plain")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnsupportedMediaType)
	}
}

func TestServeHTTPDispatchesValidRequest(t *testing.T) {
	h := newTestHandler()
	body := encodeGetPrinterAttributes(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ipp/print", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/ipp")
	req.Host = "printserver.example:631"
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); ct != goipp.ContentType {
		t.Fatalf("Content-Type = %q, want %q", ct, goipp.ContentType)
	}

	var resp goipp.Message
	if err := resp.Decode(rr.Body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if goipp.Status(resp.Code) != goipp.StatusOk {
		t.Fatalf("response status = %v, want StatusOk", goipp.Status(resp.Code))
	}
}

func TestHostPortParsesHostHeader(t *testing.T) {
	host, port := hostPort("printserver.example:631", false)
	if host != "printserver.example" || port != 631 {
		t.Fatalf("hostPort = (%q, %d)", host, port)
	}
	host, port = hostPort("", false)
	if host != "localhost" || port != defaultIPPPort {
		t.Fatalf("hostPort(empty) = (%q, %d)", host, port)
	}
}
