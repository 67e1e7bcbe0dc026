package logging

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Bhavna2020/ippcored/internal/model"
)

type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.size += n
	return n, err
}

// HTTPAccessMiddleware wraps next and writes one access-log line per
// request, apache-combined-log style.
func HTTPAccessMiddleware(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		remote := strings.TrimSpace(r.RemoteAddr)
		if host, _, err := net.SplitHostPort(remote); err == nil {
			remote = host
		}
		user := "-"
		if u, _, ok := r.BasicAuth(); ok && strings.TrimSpace(u) != "" {
			user = u
		}
		line := fmt.Sprintf("%s - %s [%s] \"%s %s %s\" %d %d %s",
			remote,
			user,
			start.Format("02/Jan/2006:15:04:05 -0700"),
			r.Method,
			r.URL.RequestURI(),
			r.Proto,
			status,
			rec.size,
			time.Since(start).Truncate(time.Millisecond),
		)
		Access(line)
	})
}

// JobLogLine formats a job state-transition log entry. size is the
// spooled document size in bytes, humanized for readability.
func JobLogLine(job model.Job, event string, size int64) string {
	name := strings.TrimSpace(job.Name)
	if name == "" {
		name = "Untitled"
	}
	user := strings.TrimSpace(job.Username)
	if user == "" {
		user = "-"
	}
	return fmt.Sprintf("%s printer=%d job=%d user=%s name=%q state=%d size=%s",
		event, job.PrinterID, job.ID, user, name, int(job.State), humanize.Bytes(uint64(maxInt64(size, 0))))
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
