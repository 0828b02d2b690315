// Package answers runs the fixed homework queries against the loaded trip
// and zone tables and pairs them with the static theory answers.
package answers

import (
	"context"
	"fmt"
	"time"

	"nytaxi/internal/metrics"
	"nytaxi/internal/report"
	"nytaxi/internal/storage"
)

// Job is the metrics job label.
const Job = "answers"

// Tables names the loaded tables and the pickup timestamp column.
type Tables struct {
	Zones  string
	Trips  string
	Pickup string
}

// DefaultTables matches the loader defaults.
var DefaultTables = Tables{
	Zones:  "taxi_zones",
	Trips:  "green_taxi_trips",
	Pickup: "lpep_pickup_datetime",
}

// Answer is one homework question and its answer text.
type Answer struct {
	ID       string
	Question string
	Text     string
}

// Static answers that need no data.
var (
	Q1 = Answer{ID: "Q1", Question: "pip version in python:3.13", Text: "25.3"}
	Q2 = Answer{ID: "Q2", Question: "Docker networking hostname:port", Text: "db:5432"}
	Q7 = Answer{ID: "Q7", Question: "Terraform workflow", Text: "terraform init, terraform apply -auto-approve, terraform destroy"}
)

type query struct {
	id       string
	question string
	run      func(ctx context.Context, repo storage.Repository, t Tables) (string, error)
}

var queries = []query{
	{"Q3", "Short trips (<=1 mile) in November 2025", shortTrips},
	{"Q4", "Pickup day with the longest trip (< 100 miles)", longestTripDay},
	{"Q5", "Pickup zone with the largest total_amount on 2025-11-18", biggestPickupZone},
	{"Q6", "Drop-off zone with the largest tip from East Harlem North", biggestTipDropoff},
}

// Run answers every question in order. The first failing query stops the run.
func Run(ctx context.Context, repo storage.Repository, t Tables) (out []Answer, err error) {
	start := time.Now()
	defer func() { metrics.RecordStep(Job, "queries", err, time.Since(start)) }()

	out = append(out, Q1, Q2)
	for _, q := range queries {
		text, err := q.run(ctx, repo, t)
		if err != nil {
			return out, fmt.Errorf("answers: %s: %w", q.id, err)
		}
		out = append(out, Answer{ID: q.id, Question: q.question, Text: text})
	}
	return append(out, Q7), nil
}

// Print writes answers in question order.
func Print(p *report.Printer, answers []Answer) {
	for _, a := range answers {
		p.Printf("%s: %s\n", a.ID, a.Question)
		p.Printf("Answer: %s\n\n", a.Text)
	}
}
