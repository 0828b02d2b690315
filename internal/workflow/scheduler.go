package workflow

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers registered DAGs that carry a cron Schedule. Scheduled
// runs get an empty conf. Catchup is not performed.
type Scheduler struct {
	reg    *Registry
	runner *Runner
	cron   *cron.Cron
}

// NewScheduler returns a Scheduler for the DAGs in reg.
func NewScheduler(reg *Registry, runner *Runner) *Scheduler {
	return &Scheduler{reg: reg, runner: runner, cron: cron.New()}
}

// Start adds a cron entry per scheduled DAG and starts the cron loop.
// It returns how many DAGs were scheduled. An invalid expression is an error
// and nothing is started.
func (s *Scheduler) Start(ctx context.Context) (int, error) {
	n := 0
	for _, d := range s.reg.List() {
		if d.Schedule == "" {
			continue
		}
		dag := d
		_, err := s.cron.AddFunc(dag.Schedule, func() {
			log.Printf("scheduler: triggering dag=%s", dag.ID)
			run, err := s.runner.Trigger(ctx, dag, Conf{})
			if err != nil {
				log.Printf("scheduler: dag=%s err=%v", dag.ID, err)
				return
			}
			log.Printf("scheduler: dag=%s run=%s state=%s", dag.ID, run.ID, run.State)
		})
		if err != nil {
			return 0, fmt.Errorf("workflow: dag %s: invalid schedule %q: %w", dag.ID, dag.Schedule, err)
		}
		n++
	}
	s.cron.Start()
	log.Printf("scheduler: scheduled %d dag(s)", n)
	return n, nil
}

// Stop stops the cron loop and waits for running triggers to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
