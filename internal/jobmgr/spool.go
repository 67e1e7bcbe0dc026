package jobmgr

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// spool is the document-data staging area. Adapted from the teacher's
// internal/spool.Spool: same job-id/timestamp naming scheme, generalized
// to accept a bare io.Reader rather than an *http.Request body.
type spool struct {
	dir string
}

func (s spool) ensure() error {
	return os.MkdirAll(s.dir, 0o755)
}

func (s spool) save(jobID int64, r io.Reader) (path string, size int64, err error) {
	if err := s.ensure(); err != nil {
		return "", 0, err
	}
	path = filepath.Join(s.dir, fmt.Sprintf("job-%d-%d", jobID, time.Now().UnixNano()))
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return "", 0, err
	}
	return path, n, nil
}
