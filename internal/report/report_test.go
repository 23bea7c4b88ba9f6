package report_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/redlinehq/redline/internal/classify"
	"github.com/redlinehq/redline/internal/counter"
	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/report"
)

// sampleData builds a report over a document pair with one spelling fix
// and one word substitution.
func sampleData(t *testing.T) report.Data {
	t.Helper()

	original := "I saw teh cat. It was big."
	modified := "I saw the cat. It was large."

	edits := diff.Detect(original, modified)
	if len(edits) != 2 {
		t.Fatalf("Detect() returned %d edits, want 2: %v", len(edits), edits)
	}

	records := []classify.Record{
		{Edit: edits[0], Category: classify.Spelling, Index: 0},
		{Edit: edits[1], Category: classify.Substitution, Index: 1},
	}
	return report.Data{
		Records:  records,
		Original: original,
		Modified: modified,
		Stats:    report.BuildStats(counter.NewWordCounter(), records, original, modified),
	}
}

func TestBuildStats(t *testing.T) {
	d := sampleData(t)

	want := report.Stats{Unit: "words", Original: 7, Modified: 7, Removed: 2, Added: 2}
	if d.Stats != want {
		t.Errorf("BuildStats() = %+v, want %+v", d.Stats, want)
	}
}

func TestSummarize(t *testing.T) {
	records := []classify.Record{
		{Category: classify.Spelling},
		{Category: classify.Substitution},
		{Category: classify.Spelling},
		{Category: classify.Undefined},
	}

	want := []report.CategoryCount{
		{Category: classify.Spelling, Count: 2},
		{Category: classify.Substitution, Count: 1},
		{Category: classify.Undefined, Count: 1},
	}

	got := report.Summarize(records)
	if len(got) != len(want) {
		t.Fatalf("Summarize() returned %d rows, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Summarize()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if rows := report.Summarize(nil); len(rows) != 0 {
		t.Errorf("Summarize(nil) = %v, want no rows", rows)
	}
}

func TestText(t *testing.T) {
	out := report.Text(sampleData(t))

	for _, want := range []string{
		"2 edits",
		`"eh" -> "he" (offset 7)`,
		`"big" -> "large" (offset 22)`,
		"spelling",
		"substitution",
		"summary",
		"statistics (words)",
		"original  7",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Text() output missing %q:\n%s", want, out)
		}
	}
}

func TestJSON(t *testing.T) {
	out, err := report.JSON(sampleData(t))
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var got struct {
		Edits []struct {
			Index          int    `json:"index"`
			Category       string `json:"category"`
			Before         string `json:"before"`
			After          string `json:"after"`
			OffsetOriginal int    `json:"offset_original"`
			OffsetModified int    `json:"offset_modified"`
		} `json:"edits"`
		Summary    map[string]int `json:"summary"`
		Statistics struct {
			Unit     string `json:"unit"`
			Original int    `json:"original"`
			Modified int    `json:"modified"`
			Removed  int    `json:"removed"`
			Added    int    `json:"added"`
		} `json:"statistics"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v\n%s", err, out)
	}

	if len(got.Edits) != 2 {
		t.Fatalf("JSON() edits = %d, want 2", len(got.Edits))
	}
	first := got.Edits[0]
	if first.Index != 0 || first.Category != "spelling" || first.Before != "eh" || first.After != "he" {
		t.Errorf("JSON() first edit = %+v", first)
	}
	if first.OffsetOriginal != 7 || first.OffsetModified != 7 {
		t.Errorf("JSON() first edit offsets = %d/%d, want 7/7", first.OffsetOriginal, first.OffsetModified)
	}
	if got.Summary["spelling"] != 1 || got.Summary["substitution"] != 1 {
		t.Errorf("JSON() summary = %v", got.Summary)
	}
	if got.Statistics.Unit != "words" || got.Statistics.Original != 7 {
		t.Errorf("JSON() statistics = %+v", got.Statistics)
	}
}

func TestJSONEmpty(t *testing.T) {
	out, err := report.JSON(report.Data{Stats: report.Stats{Unit: "words"}})
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !strings.Contains(out, `"edits": []`) {
		t.Errorf("JSON() with no records should render an empty edits array:\n%s", out)
	}
}

func TestHTML(t *testing.T) {
	out, err := report.HTML(sampleData(t))
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	for _, want := range []string{
		"<title>redline report</title>",
		"<span>I saw t</span>",
		`<del>eh</del><ins>he</ins><sup><a href="#edit-1">1</a></sup>`,
		`<del>big</del><ins>large</ins><sup><a href="#edit-2">2</a></sup>`,
		`<li id="edit-1">spelling</li>`,
		`<li id="edit-2">substitution</li>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML() output missing %q", want)
		}
	}
}

func TestHTMLEscapes(t *testing.T) {
	original := "a & b\nc"
	modified := "a & b\nd"

	edits := diff.Detect(original, modified)
	if len(edits) != 1 {
		t.Fatalf("Detect() returned %d edits, want 1: %v", len(edits), edits)
	}

	d := report.Data{
		Records:  []classify.Record{{Edit: edits[0], Category: classify.Undefined, Index: 0}},
		Original: original,
		Modified: modified,
		Stats:    report.BuildStats(counter.NewWordCounter(), nil, original, modified),
	}

	out, err := report.HTML(d)
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	for _, want := range []string{
		"a &amp; b&para;<br>",
		"<del>c</del><ins>d</ins>",
		`<li id="edit-1">undefined</li>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML() output missing %q:\n%s", want, out)
		}
	}
}
