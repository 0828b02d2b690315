// Package verify reports destination row counts after a load. It is purely
// observational: query failures and mismatches are recorded in the result,
// never returned as errors.
package verify

import (
	"context"
	"log"

	"nytaxi/internal/storage"
)

// Unknown marks a Check with no expected source count.
const Unknown int64 = -1

// Check names a table and the number of rows the source had.
type Check struct {
	Table    string
	Expected int64
}

// TableCount is the outcome for one table.
type TableCount struct {
	Table    string
	Rows     int64
	Expected int64
	// Match is true when Expected is known and equals Rows.
	Match bool
	Err   error
}

// Known reports whether an expected count was supplied.
func (c TableCount) Known() bool { return c.Expected != Unknown }

// Verify counts rows in each checked table, in order.
func Verify(ctx context.Context, repo storage.Repository, checks ...Check) []TableCount {
	out := make([]TableCount, 0, len(checks))
	for _, c := range checks {
		tc := TableCount{Table: c.Table, Expected: c.Expected}
		n, err := storage.CountRows(ctx, repo, c.Table)
		if err != nil {
			tc.Err = err
			log.Printf("verify: table=%s err=%v", c.Table, err)
			out = append(out, tc)
			continue
		}
		tc.Rows = n
		tc.Match = tc.Known() && n == c.Expected
		switch {
		case !tc.Known():
			log.Printf("verify: table=%s rows=%d", c.Table, n)
		case tc.Match:
			log.Printf("verify: table=%s rows=%d expected=%d ok", c.Table, n, c.Expected)
		default:
			log.Printf("verify: table=%s rows=%d expected=%d mismatch", c.Table, n, c.Expected)
		}
		out = append(out, tc)
	}
	return out
}
