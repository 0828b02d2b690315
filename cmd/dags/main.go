// Command dags lists, triggers and schedules the workflow DAGs.
//
//	dags list
//	dags trigger <dag_id> [json conf]
//	dags batch <file>     one "<dag_id> [json conf]" per line, run concurrently
//	dags serve            run DAGs that have a cron schedule until interrupted
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"nytaxi/internal/config"
	"nytaxi/internal/dags"
	"nytaxi/internal/datasource/file"
	"nytaxi/internal/metrics/setup"
	"nytaxi/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	flush, err := setup.Install(cfg, "dags")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg, flag.Args(), os.Stdout, os.Stderr)
	stop()
	flush()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	reg, err := dags.Registry(dags.Settings{
		RowCountBaseURL: cfg.RowCountBaseURL,
		RowCountTimeout: cfg.RowCountTimeout,
	})
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	runner := workflow.NewRunner(stderr, stdout)

	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: dags [flags] list | trigger <dag_id> [conf] | batch <file> | serve")
		return 2
	}

	switch args[0] {
	case "list":
		for _, d := range reg.List() {
			schedule := d.Schedule
			if schedule == "" {
				schedule = "manual"
			}
			fmt.Fprintf(stdout, "%s\t%s\t%s\t%s\n", d.ID, schedule, strings.Join(d.Tags, ","), d.Description)
		}
		return 0

	case "trigger":
		if len(args) < 2 {
			fmt.Fprintln(stderr, "trigger: dag id required")
			return 2
		}
		req, err := parseRequest(reg, strings.Join(args[1:], " "))
		if err != nil {
			fmt.Fprintf(stderr, "trigger: %v\n", err)
			return 2
		}
		r, err := runner.Trigger(ctx, req.DAG, req.Conf)
		if err != nil {
			fmt.Fprintf(stderr, "trigger: %v\n", err)
			return 1
		}
		return report(stdout, []*workflow.Run{r})

	case "batch":
		if len(args) != 2 {
			fmt.Fprintln(stderr, "batch: exactly one file required")
			return 2
		}
		lines, err := file.ReadLines(ctx, file.NewLocal(args[1]))
		if err != nil {
			fmt.Fprintf(stderr, "batch: %v\n", err)
			return 1
		}
		reqs := make([]workflow.RunRequest, 0, len(lines))
		for i, line := range lines {
			req, err := parseRequest(reg, line)
			if err != nil {
				fmt.Fprintf(stderr, "batch: line %d: %v\n", i+1, err)
				return 2
			}
			reqs = append(reqs, req)
		}
		runs, err := runner.TriggerMany(ctx, reqs, cfg.RunConcurrency)
		if err != nil {
			fmt.Fprintf(stderr, "batch: %v\n", err)
			return 1
		}
		return report(stdout, runs)

	case "serve":
		s := workflow.NewScheduler(reg, runner)
		n, err := s.Start(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "serve: %v\n", err)
			return 1
		}
		if n == 0 {
			log.Printf("serve: no scheduled dags; waiting for interrupt")
		}
		<-ctx.Done()
		s.Stop()
		return 0

	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		return 2
	}
}

// parseRequest parses "<dag_id> [json conf]".
func parseRequest(reg *workflow.Registry, line string) (workflow.RunRequest, error) {
	id, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	dag, ok := reg.Get(id)
	if !ok {
		return workflow.RunRequest{}, fmt.Errorf("unknown dag %q", id)
	}
	conf, err := workflow.ParseConf([]byte(rest))
	if err != nil {
		return workflow.RunRequest{}, err
	}
	return workflow.RunRequest{DAG: dag, Conf: conf}, nil
}

// report prints one line per run and returns 1 if any run failed.
func report(w io.Writer, runs []*workflow.Run) int {
	code := 0
	for _, r := range runs {
		if r == nil {
			code = 1
			continue
		}
		line := fmt.Sprintf("%s\t%s\t%s", r.DAGID, r.ID, r.State)
		for _, ti := range r.Tasks {
			if ti.State == workflow.StateSuccess {
				line += fmt.Sprintf("\t%s=%v", ti.TaskID, ti.Result)
			}
		}
		fmt.Fprintln(w, line)
		if r.State != workflow.StateSuccess {
			if err := r.Err(); err != nil {
				fmt.Fprintf(w, "\t%v\n", err)
			}
			code = 1
		}
	}
	return code
}
