// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/mock-ballot/models"
	"github.com/danielhkuo/mock-ballot/tally"
)

// Project returns labels and counts in candidate order plus their sum.
// Slices are never nil, so an empty tally still renders as a chart of zeros.
func Project(snap tally.Snapshot) models.Results {
	r := models.Results{
		Labels: make([]string, 0, len(snap.Candidates)),
		Counts: make([]int, 0, len(snap.Candidates)),
	}
	for _, c := range snap.Candidates {
		n := snap.Count(c)
		r.Labels = append(r.Labels, c)
		r.Counts = append(r.Counts, n)
		r.Total += n
	}
	return r
}

// Summary renders the total for display, e.g. "1,204 votes cast".
func Summary(r models.Results) string {
	return fmt.Sprintf("%s %s cast", humanize.Comma(int64(r.Total)), english.PluralWord(r.Total, "vote", ""))
}

// Leaders returns the candidates holding the highest count, in candidate order.
// It is empty while no votes have been cast.
func Leaders(r models.Results) []string {
	best := 0
	for _, n := range r.Counts {
		best = max(best, n)
	}
	if best == 0 {
		return []string{}
	}
	var out []string
	for i, n := range r.Counts {
		if n == best {
			out = append(out, r.Labels[i])
		}
	}
	return out
}
