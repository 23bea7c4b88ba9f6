package report

import (
	"encoding/json"
	"fmt"
)

// The wire shape of the JSON report. Field names are part of the output
// contract; renaming them breaks downstream consumers.
type jsonReport struct {
	Edits      []jsonEdit     `json:"edits"`
	Summary    map[string]int `json:"summary"`
	Statistics jsonStats      `json:"statistics"`
}

type jsonEdit struct {
	Index          int    `json:"index"`
	Category       string `json:"category"`
	Before         string `json:"before"`
	After          string `json:"after"`
	OffsetOriginal int    `json:"offset_original"`
	OffsetModified int    `json:"offset_modified"`
}

type jsonStats struct {
	Unit     string `json:"unit"`
	Original int    `json:"original"`
	Modified int    `json:"modified"`
	Removed  int    `json:"removed"`
	Added    int    `json:"added"`
}

// JSON renders the machine-readable report.
func JSON(d Data) (string, error) {
	doc := jsonReport{
		Edits:   make([]jsonEdit, len(d.Records)),
		Summary: make(map[string]int),
		Statistics: jsonStats{
			Unit:     d.Stats.Unit,
			Original: d.Stats.Original,
			Modified: d.Stats.Modified,
			Removed:  d.Stats.Removed,
			Added:    d.Stats.Added,
		},
	}

	for i, r := range d.Records {
		doc.Edits[i] = jsonEdit{
			Index:          r.Index,
			Category:       r.Category.String(),
			Before:         r.Edit.Before,
			After:          r.Edit.After,
			OffsetOriginal: r.Edit.Pos1,
			OffsetModified: r.Edit.Pos2,
		}
		doc.Summary[r.Category.String()]++
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(raw), nil
}
