// Package workflow is a minimal DAG runner: DAGs of ordered tasks triggered
// manually with a JSON conf, with per-task retries, a registry and an
// optional cron scheduler.
package workflow

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// DefaultArgs apply to every task of a DAG.
type DefaultArgs struct {
	Owner         string
	StartDate     time.Time
	DependsOnPast bool
	// Retries is the number of extra attempts after a failed one.
	Retries    int
	RetryDelay time.Duration
}

// DAG is a named, ordered list of tasks. Tasks run in declaration order.
type DAG struct {
	ID          string
	Description string
	// Schedule is a cron expression; empty means manual trigger only.
	Schedule string
	Catchup  bool
	Tags     []string
	Default  DefaultArgs
	Tasks    []Task
}

// TaskFunc is the body of a task. Its return value is stored on the run.
type TaskFunc func(ctx context.Context, tc *TaskContext) (any, error)

// Task is one step of a DAG.
type Task struct {
	ID string
	Fn TaskFunc
}

// TaskContext is handed to a running task.
type TaskContext struct {
	RunID  string
	DAGID  string
	TaskID string
	// Try is 1 for the first attempt.
	Try  int
	Conf Conf
	// Log writes to the run's log with the run prefix.
	Log *log.Logger
	// Out receives human-facing output (banners).
	Out io.Writer
}

// Validate checks the DAG is runnable.
func (d *DAG) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("workflow: dag id must not be empty")
	}
	if len(d.Tasks) == 0 {
		return fmt.Errorf("workflow: dag %s has no tasks", d.ID)
	}
	if d.Default.Retries < 0 {
		return fmt.Errorf("workflow: dag %s: retries must be >= 0", d.ID)
	}
	seen := make(map[string]struct{}, len(d.Tasks))
	for i, t := range d.Tasks {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("workflow: dag %s: task %d has no id", d.ID, i)
		}
		if t.Fn == nil {
			return fmt.Errorf("workflow: dag %s: task %s has no function", d.ID, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("workflow: dag %s: duplicate task id %s", d.ID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
