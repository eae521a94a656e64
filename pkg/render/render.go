package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jsnanigans/reanchor/pkg/reanchor"
)

// Label returns the human-readable verb for a record.
func Label(rec reanchor.Record) string {
	switch rec.Tag {
	case reanchor.OpEqual:
		if rec.Variant == reanchor.EqualAtCodepoint {
			return "Unchanged (index matches code point)"
		}
		return "Unchanged"
	case reanchor.OpInsert:
		return "Added"
	case reanchor.OpDelete:
		return "Removed"
	default:
		return "Unknown"
	}
}

// Details returns one line per record, e.g. `Removed at index 1: "b" (Deletion)`.
func Details(records []reanchor.Record) []string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("%s at index %d: %q (%s)", Label(rec), rec.Index, rec.Value, rec.Tag))
	}
	return lines
}

// Colored renders the edit script inline, each record in the style of its tag.
func (t Theme) Colored(records []reanchor.Record) string {
	var b strings.Builder
	for _, rec := range records {
		switch rec.Tag {
		case reanchor.OpEqual:
			b.WriteString(t.Equal.Render(rec.Value))
		case reanchor.OpInsert:
			b.WriteString(t.Insert.Render(rec.Value))
		case reanchor.OpDelete:
			b.WriteString(t.Delete.Render(rec.Value))
		}
	}
	return b.String()
}

// Summary formats stats as a short multi-line block.
func Summary(stats reanchor.Stats) string {
	return fmt.Sprintf("Total Changes: %d\nUnchanged Parts: %d\nInsertions: %d\nDeletions: %d",
		stats.Total, stats.Unchanged, stats.Insertions, stats.Deletions)
}

// HighlightText renders text with the runs covered by positions in the
// highlight style.
func (t Theme) HighlightText(text reanchor.Text, positions []int) string {
	return markRuns(text, positions, func(s string) string { return t.Highlight.Render(s) })
}

// Mark wraps every run covered by positions in before and after.
func Mark(text reanchor.Text, positions []int, before, after string) string {
	return markRuns(text, positions, func(s string) string { return before + s + after })
}

// markRuns groups consecutive positions into runs and decorates each run.
// Positions outside text are ignored.
func markRuns(text reanchor.Text, positions []int, decorate func(string) string) string {
	sorted := slices.Clone(positions)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var b strings.Builder
	lastPos := 0
	for i := 0; i < len(sorted); {
		start := sorted[i]
		if start < lastPos || start >= len(text) {
			i++
			continue
		}
		end := start + 1
		i++
		for i < len(sorted) && sorted[i] == end && end < len(text) {
			end++
			i++
		}
		b.WriteString(string(text[lastPos:start]))
		b.WriteString(decorate(string(text[start:end])))
		lastPos = end
	}
	b.WriteString(string(text[lastPos:]))
	return b.String()
}
