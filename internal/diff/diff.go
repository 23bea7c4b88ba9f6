// Package diff locates the edits between two versions of a document.
//
// It wraps the diff-match-patch algorithm to produce a flat, ordered list of
// Edit values, each carrying the removed text, the inserted text, and the
// positions of both in their respective document versions. Edits are the
// atomic unit the classification pipeline consumes; they are immutable once
// detected.
package diff

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrMalformedEdit indicates an Edit whose positions or spans do not match
// the document pair it claims to describe.
var ErrMalformedEdit = errors.New("malformed edit")

// Edit is an atomic change between two document versions.
//
// Before is the substring removed from the original document (empty for pure
// insertions) and After the substring inserted into the modified document
// (empty for pure deletions). Pos1 is the byte offset of Before in the
// original text; Pos2 is the byte offset of After in the modified text.
type Edit struct {
	Before string
	After  string
	Pos1   int
	Pos2   int
}

// IsInsertion reports whether the edit only adds text.
func (e Edit) IsInsertion() bool { return e.Before == "" }

// IsDeletion reports whether the edit only removes text.
func (e Edit) IsDeletion() bool { return e.After == "" }

// String renders a compact description for logs and error messages.
func (e Edit) String() string {
	return fmt.Sprintf("%q->%q@%d/%d", e.Before, e.After, e.Pos1, e.Pos2)
}

// Diffs computes the raw, semantically cleaned diff segments between two
// texts. The segment list (including equal runs) is shared with the report
// renderer so that edit numbering stays aligned with Detect.
func Diffs(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	return dmp.DiffCleanupSemantic(diffs)
}

// Detect locates all edits between the original and modified text.
//
// A deletion immediately followed by an insertion is merged into a single
// replacement Edit; this pairing rule is load-bearing, as downstream
// renderers number edits the same way.
func Detect(before, after string) []Edit {
	return FromDiffs(Diffs(before, after))
}

// FromDiffs converts a diff segment list into ordered Edits, tracking byte
// positions in both document versions.
func FromDiffs(diffs []diffmatchpatch.Diff) []Edit {
	var edits []Edit
	pos1, pos2 := 0, 0

	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos1 += len(d.Text)
			pos2 += len(d.Text)

		case diffmatchpatch.DiffDelete:
			e := Edit{Before: d.Text, Pos1: pos1, Pos2: pos2}
			// merge with a directly following insertion into a replacement
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				e.After = diffs[i+1].Text
				i++
			}
			edits = append(edits, e)
			pos1 += len(e.Before)
			pos2 += len(e.After)

		case diffmatchpatch.DiffInsert:
			edits = append(edits, Edit{After: d.Text, Pos1: pos1, Pos2: pos2})
			pos2 += len(d.Text)
		}
	}

	slog.Debug("detected edits", "count", len(edits))
	return edits
}

// Levenshtein computes the edit distance between two strings.
func Levenshtein(a, b string) int {
	dmp := diffmatchpatch.New()
	return dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
}

// Validate checks every edit against the document pair it was detected
// from. Classification must not start on edits that fail this check: a
// mismatch means the diff engine and the documents disagree, and any
// category assigned downstream would describe text that does not exist.
func Validate(edits []Edit, before, after string) error {
	for i, e := range edits {
		if e.Pos1 < 0 || e.Pos1+len(e.Before) > len(before) {
			return fmt.Errorf("%w: edit %d %s outside original document (len %d)", ErrMalformedEdit, i, e, len(before))
		}
		if e.Pos2 < 0 || e.Pos2+len(e.After) > len(after) {
			return fmt.Errorf("%w: edit %d %s outside modified document (len %d)", ErrMalformedEdit, i, e, len(after))
		}
		if got := before[e.Pos1 : e.Pos1+len(e.Before)]; got != e.Before {
			return fmt.Errorf("%w: edit %d claims removal of %q but original holds %q", ErrMalformedEdit, i, e.Before, got)
		}
		if got := after[e.Pos2 : e.Pos2+len(e.After)]; got != e.After {
			return fmt.Errorf("%w: edit %d claims insertion of %q but modified holds %q", ErrMalformedEdit, i, e.After, got)
		}
	}
	return nil
}
