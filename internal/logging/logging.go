// Package logging is the process-wide logging collaborator: a rotating
// error log, an apache-style HTTP access log, and a job state-transition
// log, each a line-oriented io.Writer behind a package-global guarded by
// a mutex. Grounded on the teacher's internal/logging package, with the
// page log it used for CUPS print accounting generalized into a job log
// that records spool/state events instead.
package logging

import (
	"io"
	"os"
	"sync"
)

type manager struct {
	errorLog  *RotatingFile
	accessLog *RotatingFile
	jobLog    *RotatingFile
}

var (
	globalMu sync.RWMutex
	global   = manager{}
)

// Configure sets the three log destinations. Any path may be "", "none",
// "off", "stderr", "-", or "stdout"; an empty path discards that log.
func Configure(errorPath, accessPath, jobPath string, maxSize int64) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global.errorLog = NewRotatingFile(errorPath, maxSize)
	global.accessLog = NewRotatingFile(accessPath, maxSize)
	global.jobLog = NewRotatingFile(jobPath, maxSize)
}

// ErrorWriter returns the configured error log, or os.Stderr if logging
// hasn't been configured or the error log is disabled.
func ErrorWriter() io.Writer {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if global.errorLog != nil && global.errorLog.Enabled() {
		return global.errorLog
	}
	return os.Stderr
}

// Access appends a pre-formatted line to the access log.
func Access(line string) {
	globalMu.RLock()
	logger := global.accessLog
	globalMu.RUnlock()
	if logger != nil {
		_ = logger.WriteLine(line)
	}
}

// Job appends a pre-formatted line to the job state-transition log.
func Job(line string) {
	globalMu.RLock()
	logger := global.jobLog
	globalMu.RUnlock()
	if logger != nil {
		_ = logger.WriteLine(line)
	}
}
