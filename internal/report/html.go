package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/redlinehq/redline/internal/classify"
	"github.com/redlinehq/redline/internal/diff"
)

//go:embed template.html
var pageSource string

var page = template.Must(template.New("report").Parse(pageSource))

type pageData struct {
	Title  string
	Body   template.HTML
	Labels template.HTML
	Stats  Stats
}

// segmentEscaper rewrites diff segment text for the page body: HTML
// metacharacters become entities and newlines become a visible pilcrow
// plus a line break. Single pass, so replacement output is never rescanned.
var segmentEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\n", "&para;<br>",
)

// HTML renders a standalone page with every edit marked inline.
//
// The diff segments are walked with the same pairing rule Detect uses (a
// deletion directly followed by an insertion is one replacement), so the
// superscript numbers land on the records in order.
func HTML(d Data) (string, error) {
	var body, labels strings.Builder
	labels.WriteString("<ol>")

	index := 0
	number := func() {
		n := index + 1
		category := classify.Undefined
		if index < len(d.Records) {
			category = d.Records[index].Category
		}
		fmt.Fprintf(&body, `<sup><a href="#edit-%d">%d</a></sup>`, n, n)
		fmt.Fprintf(&labels, `<li id="edit-%d">%s</li>`, n, category)
		index++
	}

	diffs := diff.Diffs(d.Original, d.Modified)
	for i, seg := range diffs {
		text := segmentEscaper.Replace(seg.Text)
		switch seg.Type {
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&body, "<ins>%s</ins>", text)
			number()
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&body, "<del>%s</del>", text)
			if i+1 >= len(diffs) || diffs[i+1].Type != diffmatchpatch.DiffInsert {
				number()
			}
		case diffmatchpatch.DiffEqual:
			fmt.Fprintf(&body, "<span>%s</span>", text)
		}
	}
	labels.WriteString("</ol>")

	var out strings.Builder
	err := page.Execute(&out, pageData{
		Title:  "redline report",
		Body:   template.HTML(body.String()),
		Labels: template.HTML(labels.String()),
		Stats:  d.Stats,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return out.String(), nil
}
