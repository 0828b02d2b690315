// Package setup installs the metrics backend selected by configuration.
package setup

import (
	"fmt"
	"log"

	"nytaxi/internal/config"
	"nytaxi/internal/metrics"
	"nytaxi/internal/metrics/datadog"
	"nytaxi/internal/metrics/prompush"
)

// Install selects and installs cfg.MetricsBackend. The returned func flushes
// (and for datadog closes) the backend and should be deferred by main.
func Install(cfg *config.Config, job string) (func(), error) {
	if cfg.MetricsJob != "" && cfg.MetricsJob != "nytaxi" {
		job = cfg.MetricsJob
	}

	switch cfg.MetricsBackend {
	case "", "none":
		return func() {}, nil

	case "prompush":
		b, err := prompush.NewBackend(job, cfg.PushgatewayURL)
		if err != nil {
			return nil, err
		}
		log.Printf("metrics: backend=prompush url=%s job=%s", cfg.PushgatewayURL, job)
		metrics.SetBackend(b)
		return func() {
			if err := metrics.Flush(); err != nil {
				log.Printf("metrics: flush error: %v", err)
			}
		}, nil

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       cfg.DogStatsDAddr,
			GlobalTags: []string{"job:" + job},
		})
		if err != nil {
			return nil, err
		}
		log.Printf("metrics: backend=datadog addr=%s job=%s", cfg.DogStatsDAddr, job)
		metrics.SetBackend(b)
		return func() {
			if err := b.Close(); err != nil {
				log.Printf("metrics: close error: %v", err)
			}
		}, nil

	default:
		return nil, fmt.Errorf("metrics: unknown backend %q", cfg.MetricsBackend)
	}
}
