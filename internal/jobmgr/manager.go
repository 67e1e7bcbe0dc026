package jobmgr

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/logging"
	"github.com/Bhavna2020/ippcored/internal/model"
)

// CompletedIndexer is the subset of *printer.Store the Manager needs to
// keep the printer's active/completed job indexes in sync, per §3's
// "moved to completed index by the Job Manager on terminal state" rule.
type CompletedIndexer interface {
	CompleteJob(jobID int64)
	SetProcessingJob(jobID int64)
}

// Manager is the default collab.JobManager: a durable sqlite log plus a
// document spool, with an in-memory cache serving the fields the
// dispatcher reads on every request without a database round trip.
type Manager struct {
	store  *sqlStore
	spool  spool
	index  CompletedIndexer
	logger *log.Logger

	mu   sync.Mutex
	jobs map[int64]*model.Job
}

// Open creates a Manager backed by a sqlite database at dbPath (use
// ":memory:" or "file::memory:?cache=shared" for tests) and a document
// spool rooted at spoolDir. index is typically the printer's *printer.Store;
// it's accepted as an interface so tests can supply a fake.
func Open(ctx context.Context, dbPath, spoolDir string, index CompletedIndexer, logger *log.Logger) (*Manager, error) {
	s, err := openStore(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		store:  s,
		spool:  spool{dir: spoolDir},
		index:  index,
		logger: logger,
		jobs:   map[int64]*model.Job{},
	}, nil
}

func (m *Manager) Close() error {
	return m.store.Close()
}

var _ collab.JobManager = (*Manager)(nil)

func (m *Manager) CreateJob(printerID int64, params collab.CreateJobParams) (*model.Job, error) {
	state := model.JobPending
	if params.Hold {
		state = model.JobHeld
	}
	id, submitted, err := m.store.insertJob(context.Background(), printerID, uuid.NewString(), params.Name, params.Username, params.Format, state)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	job := &model.Job{
		ID:           id,
		PrinterID:    printerID,
		State:        state,
		StateReasons: []string{"job-incoming"},
		Username:     params.Username,
		Name:         params.Name,
		SubmitTime:   submitted,
		Attrs:        params.RequestAttrs,
	}
	m.mu.Lock()
	m.jobs[id] = job
	m.mu.Unlock()
	m.logger.Printf("job %d: created for printer %d (user=%s format=%s)", id, printerID, params.Username, params.Format)
	logging.Job(logging.JobLogLine(*job, "created", 0))
	return job, nil
}

func (m *Manager) CancelJob(job *model.Job) error {
	return m.setState(job, model.JobCanceled, []string{"job-canceled-by-user"})
}

func (m *Manager) CancelAll(printerID int64) error {
	ids, err := m.store.listActiveByPrinter(context.Background(), printerID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		job, ok := m.GetJob(id)
		if !ok {
			continue
		}
		if err := m.CancelJob(job); err != nil {
			return err
		}
	}
	return nil
}

// CopyDocumentData spools the client's body to disk, then — since
// rendering the document is out of this core's scope — walks the job
// straight through PROCESSING to COMPLETED, the way a minimal but
// fully-working default implementation has to in order to ever retire a
// job from the active index.
func (m *Manager) CopyDocumentData(client collab.ClientEnvelope, job *model.Job) error {
	if !client.HasBody || client.Body == nil {
		return m.setState(job, model.JobCompleted, []string{"job-completed-successfully"})
	}

	path, size, err := m.spool.save(job.ID, client.Body)
	if err != nil {
		_ = m.setStateSize(job, model.JobAborted, []string{"document-access-error"}, 0)
		return fmt.Errorf("spool document for job %d: %w", job.ID, err)
	}
	m.logger.Printf("job %d: spooled %s to %s", job.ID, humanize.Bytes(uint64(size)), path)

	if m.index != nil {
		m.index.SetProcessingJob(job.ID)
	}
	if err := m.setStateSize(job, model.JobProcessing, []string{"job-printing"}, size); err != nil {
		return err
	}
	return m.setStateSize(job, model.JobCompleted, []string{"job-completed-successfully"}, size)
}

func (m *Manager) GetJob(id int64) (*model.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	return job, ok
}

func (m *Manager) setState(job *model.Job, state model.JobState, reasons []string) error {
	return m.setStateSize(job, state, reasons, 0)
}

func (m *Manager) setStateSize(job *model.Job, state model.JobState, reasons []string, size int64) error {
	if err := m.store.updateState(context.Background(), job.ID, state, reasons); err != nil {
		return fmt.Errorf("update job %d state: %w", job.ID, err)
	}
	m.mu.Lock()
	job.State = state
	job.StateReasons = reasons
	m.mu.Unlock()
	logging.Job(logging.JobLogLine(*job, reasons[0], size))
	if state.Terminal() && m.index != nil {
		m.index.CompleteJob(job.ID)
	}
	return nil
}
