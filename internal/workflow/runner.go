package workflow

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"nytaxi/internal/metrics"
)

// State of a run or task instance.
type State string

const (
	StateRunning        State = "running"
	StateSuccess        State = "success"
	StateFailed         State = "failed"
	StateUpstreamFailed State = "upstream_failed"
)

// TaskInstance records one task within a run.
type TaskInstance struct {
	TaskID string
	State  State
	Tries  int
	Result any
	Err    error
	Start  time.Time
	End    time.Time
}

// Run is one execution of a DAG.
type Run struct {
	ID    string
	DAGID string
	Conf  Conf
	State State
	Tasks []TaskInstance
	Start time.Time
	End   time.Time
}

// Result returns the value returned by taskID, if it succeeded.
func (r *Run) Result(taskID string) (any, bool) {
	for _, ti := range r.Tasks {
		if ti.TaskID == taskID && ti.State == StateSuccess {
			return ti.Result, true
		}
	}
	return nil, false
}

// Err returns the error of the first failed task, or nil.
func (r *Run) Err() error {
	for _, ti := range r.Tasks {
		if ti.State == StateFailed {
			return fmt.Errorf("run %s: task %s: %w", r.ID, ti.TaskID, ti.Err)
		}
	}
	return nil
}

// Runner executes DAG runs. It is safe for concurrent use.
type Runner struct {
	logOut io.Writer
	out    io.Writer

	// sleep waits between attempts; tests replace it.
	sleep func(ctx context.Context, d time.Duration) error
	newID func() string
}

// NewRunner returns a Runner logging to logOut and writing task output to
// out. Nil writers default to os.Stderr and os.Stdout.
func NewRunner(logOut, out io.Writer) *Runner {
	if logOut == nil {
		logOut = os.Stderr
	}
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		logOut: &lockedWriter{w: logOut},
		out:    &lockedWriter{w: out},
		sleep:  sleepContext,
		newID:  func() string { return uuid.New().String() },
	}
}

// Trigger runs dag once with conf. Task failures are recorded on the
// returned Run (State failed); the error is non-nil only for an invalid DAG.
func (r *Runner) Trigger(ctx context.Context, dag *DAG, conf Conf) (*Run, error) {
	if err := dag.Validate(); err != nil {
		return nil, err
	}
	if conf == nil {
		conf = Conf{}
	}

	run := &Run{
		ID:    r.newID(),
		DAGID: dag.ID,
		Conf:  conf,
		State: StateRunning,
		Start: time.Now(),
	}
	lg := log.New(r.logOut, fmt.Sprintf("run=%s dag=%s ", run.ID, dag.ID), log.LstdFlags|log.Lmsgprefix)
	lg.Printf("run started tasks=%d conf=%v", len(dag.Tasks), map[string]any(conf))

	failed := false
	for _, task := range dag.Tasks {
		if failed {
			run.Tasks = append(run.Tasks, TaskInstance{TaskID: task.ID, State: StateUpstreamFailed})
			continue
		}
		ti := r.runTask(ctx, lg, dag, run, task)
		if ti.State == StateFailed {
			failed = true
		}
		run.Tasks = append(run.Tasks, ti)
	}

	run.End = time.Now()
	run.State = StateSuccess
	if failed {
		run.State = StateFailed
	}
	lg.Printf("run finished state=%s elapsed=%s", run.State, run.End.Sub(run.Start).Truncate(time.Millisecond))
	return run, nil
}

func (r *Runner) runTask(ctx context.Context, lg *log.Logger, dag *DAG, run *Run, task Task) TaskInstance {
	ti := TaskInstance{TaskID: task.ID, Start: time.Now()}
	attempts := dag.Default.Retries + 1

	for try := 1; try <= attempts; try++ {
		ti.Tries = try
		tc := &TaskContext{
			RunID:  run.ID,
			DAGID:  dag.ID,
			TaskID: task.ID,
			Try:    try,
			Conf:   run.Conf,
			Log:    lg,
			Out:    r.out,
		}

		start := time.Now()
		res, err := callTask(ctx, task.Fn, tc)
		metrics.RecordStep(dag.ID, task.ID, err, time.Since(start))
		if err == nil {
			ti.State, ti.Result, ti.Err = StateSuccess, res, nil
			lg.Printf("task=%s try=%d/%d state=success result=%v", task.ID, try, attempts, res)
			break
		}

		ti.State, ti.Err = StateFailed, err
		lg.Printf("task=%s try=%d/%d state=failed err=%v", task.ID, try, attempts, err)
		if try == attempts {
			break
		}
		lg.Printf("task=%s retry_in=%s", task.ID, dag.Default.RetryDelay)
		if werr := r.sleep(ctx, dag.Default.RetryDelay); werr != nil {
			ti.Err = werr
			break
		}
	}

	ti.End = time.Now()
	return ti
}

// callTask runs fn, turning a panic into an error.
func callTask(ctx context.Context, fn TaskFunc, tc *TaskContext) (res any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()
	return fn(ctx, tc)
}

// RunRequest is one entry of a TriggerMany batch.
type RunRequest struct {
	DAG  *DAG
	Conf Conf
}

// TriggerMany runs independent DAG runs concurrently, at most limit at a
// time (limit <= 0 means unbounded). runs[i] belongs to reqs[i].
func (r *Runner) TriggerMany(ctx context.Context, reqs []RunRequest, limit int) ([]*Run, error) {
	runs := make([]*Run, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			run, err := r.Trigger(gctx, req.DAG, req.Conf)
			runs[i] = run
			return err
		})
	}
	return runs, g.Wait()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// lockedWriter serializes writes from concurrent runs.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
