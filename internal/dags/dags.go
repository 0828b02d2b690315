// Package dags defines the workflow DAGs shipped with the repository.
package dags

import (
	"context"
	"time"

	"nytaxi/internal/datasource/httpds"
	"nytaxi/internal/report"
	"nytaxi/internal/rowcount"
	"nytaxi/internal/workflow"
)

// Settings feeds the DAG factories from process configuration.
type Settings struct {
	RowCountBaseURL string
	RowCountTimeout time.Duration
}

// CountAllTaxiRows counts rows of the monthly release CSVs. Conf keys:
// taxi_type (default "yellow"), year (default 2020), month (optional).
func CountAllTaxiRows(s Settings) *workflow.DAG {
	counter := &rowcount.Counter{
		Client:  httpds.NewClient(httpds.Config{Timeout: s.RowCountTimeout, MaxRetries: 0}),
		BaseURL: s.RowCountBaseURL,
	}

	return &workflow.DAG{
		ID:          "count_all_taxi_rows",
		Description: "Count total rows - answers Q3, Q4, Q5",
		Catchup:     false,
		Tags:        []string{"homework", "q3", "q4", "q5"},
		Default: workflow.DefaultArgs{
			Owner:      "ahmad",
			StartDate:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Retries:    1,
			RetryDelay: 5 * time.Minute,
		},
		Tasks: []workflow.Task{{
			ID: "count_all_rows",
			Fn: func(ctx context.Context, tc *workflow.TaskContext) (any, error) {
				req := rowcount.Request{
					TaxiType: tc.Conf.String("taxi_type", "yellow"),
					Year:     tc.Conf.Int("year", 2020),
				}
				if m, ok := tc.Conf.OptionalInt("month"); ok {
					req.Month = m
				}
				tc.Log.Printf("counting taxi_type=%s year=%d month=%d", req.TaxiType, req.Year, req.Month)

				c := *counter
				c.Log = tc.Log
				res, err := c.Run(ctx, req)
				if err != nil {
					return nil, err
				}
				res.Print(report.New(tc.Out))
				return res.Total, nil
			},
		}},
	}
}

// HelloModule2 is a smoke-test DAG.
func HelloModule2() *workflow.DAG {
	return &workflow.DAG{
		ID:          "hello_module2",
		Description: "Test DAG",
		Catchup:     false,
		Tags:        []string{"module2", "test"},
		Default: workflow.DefaultArgs{
			Owner:         "ahmad",
			DependsOnPast: false,
			StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Retries:       1,
			RetryDelay:    5 * time.Minute,
		},
		Tasks: []workflow.Task{{
			ID: "say_hello",
			Fn: func(ctx context.Context, tc *workflow.TaskContext) (any, error) {
				tc.Log.Printf("workflow runner is working")
				return "Success!", nil
			},
		}},
	}
}

// Registry returns a registry holding every shipped DAG.
func Registry(s Settings) (*workflow.Registry, error) {
	reg := workflow.NewRegistry()
	for _, d := range []*workflow.DAG{CountAllTaxiRows(s), HelloModule2()} {
		if err := reg.Register(d); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
