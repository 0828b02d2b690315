package rowcount

import (
	"fmt"
	"strings"

	"nytaxi/internal/report"
)

// AnswerLabel names the homework question a request answers, or "".
func (r Request) AnswerLabel() string {
	switch {
	case r.Month != 0:
		return "HOMEWORK Q5 ANSWER:"
	case r.TaxiType == "yellow" && r.Year == 2020:
		return "HOMEWORK Q3 ANSWER:"
	case r.TaxiType == "green" && r.Year == 2020:
		return "HOMEWORK Q4 ANSWER:"
	}
	return ""
}

// Banner returns the summary lines printed between rules.
func (r Result) Banner() []string {
	var lines []string
	if label := r.AnswerLabel(); label != "" {
		lines = append(lines, label)
	}
	upper := strings.ToUpper(r.TaxiType)
	if r.Month != 0 {
		lines = append(lines, fmt.Sprintf("%s %d-%02d: %s rows", upper, r.Year, r.Month, report.Count(r.Total)))
	} else {
		lines = append(lines, fmt.Sprintf("TOTAL ROWS FOR %s %d: %s", upper, r.Year, report.Count(r.Total)))
	}
	if skipped := r.Skipped(); len(skipped) > 0 {
		names := make([]string, len(skipped))
		for i, m := range skipped {
			names[i] = m.File
		}
		lines = append(lines, "SKIPPED: "+strings.Join(names, ", "))
	}
	return lines
}

// Print writes one line per month followed by the banner.
func (r Result) Print(p *report.Printer) {
	for _, m := range r.Months {
		if m.Skipped {
			p.Printf("Skipped %s: %s\n", m.File, m.Reason)
			continue
		}
		p.Printf("%s: %d rows\n", m.File, m.Rows)
	}
	p.Banner(r.Banner()...)
}
