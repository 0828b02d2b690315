package file

import (
	"bufio"
	"context"
	"strings"

	"nytaxi/internal/datasource"
)

// ReadLines reads src line by line and returns the non-empty lines that do
// not start with '#', trimmed, in order. cmd/dags uses it for batch trigger
// files holding one JSON conf per line.
func ReadLines(ctx context.Context, src datasource.Source) ([]string, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var out []string
	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
