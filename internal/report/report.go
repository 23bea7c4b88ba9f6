// Package report renders a classified edit set for people and tools.
//
// Three renderers share one Data value: a plain-text summary for the
// terminal, a JSON document for downstream tooling, and a standalone HTML
// page that marks every edit inline. Renderers are pure functions over
// Data; nothing here talks to the network or the filesystem.
package report

import (
	"fmt"
	"strings"

	"github.com/redlinehq/redline/internal/classify"
	"github.com/redlinehq/redline/internal/counter"
)

// Data is the input shared by every renderer: the classified edits plus
// the two document versions they were detected between.
type Data struct {
	Records  []classify.Record
	Original string
	Modified string
	Stats    Stats
}

// Stats sizes the documents and the change set in one counting unit.
type Stats struct {
	Unit     string
	Original int
	Modified int
	Removed  int
	Added    int
}

// BuildStats measures both document versions and the edit set with the
// given counter.
func BuildStats(c counter.Counter, records []classify.Record, original, modified string) Stats {
	s := Stats{
		Unit:     c.Name(),
		Original: c.Count(original),
		Modified: c.Count(modified),
	}
	for _, r := range records {
		s.Removed += c.Count(r.Edit.Before)
		s.Added += c.Count(r.Edit.After)
	}
	return s
}

// CategoryCount is one summary row.
type CategoryCount struct {
	Category classify.Category
	Count    int
}

// Summarize counts records per category. Rows follow the rule chain order,
// with unclassified edits last; categories without edits are omitted.
func Summarize(records []classify.Record) []CategoryCount {
	counts := make(map[classify.Category]int)
	for _, r := range records {
		counts[r.Category]++
	}

	var rows []CategoryCount
	for c := classify.Citation; c <= classify.TopicShift; c++ {
		if n := counts[c]; n > 0 {
			rows = append(rows, CategoryCount{Category: c, Count: n})
		}
	}
	if n := counts[classify.Undefined]; n > 0 {
		rows = append(rows, CategoryCount{Category: classify.Undefined, Count: n})
	}
	return rows
}

// Text renders the plain-text report.
func Text(d Data) string {
	var b strings.Builder

	if len(d.Records) == 1 {
		b.WriteString("1 edit\n")
	} else {
		fmt.Fprintf(&b, "%d edits\n", len(d.Records))
	}

	for _, r := range d.Records {
		fmt.Fprintf(&b, "%3d. %-12s %q -> %q (offset %d)\n",
			r.Index+1, r.Category, r.Edit.Before, r.Edit.After, r.Edit.Pos1)
	}

	if rows := Summarize(d.Records); len(rows) > 0 {
		b.WriteString("\nsummary\n")
		for _, row := range rows {
			fmt.Fprintf(&b, "  %-12s %d\n", row.Category, row.Count)
		}
	}

	fmt.Fprintf(&b, "\nstatistics (%s)\n", d.Stats.Unit)
	fmt.Fprintf(&b, "  original  %d\n", d.Stats.Original)
	fmt.Fprintf(&b, "  modified  %d\n", d.Stats.Modified)
	fmt.Fprintf(&b, "  removed   %d\n", d.Stats.Removed)
	fmt.Fprintf(&b, "  added     %d\n", d.Stats.Added)

	return b.String()
}
