package render

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/jsnanigans/reanchor/pkg/reanchor"
)

// plainTheme renders to a non-terminal, so lipgloss emits no escape codes.
func plainTheme() Theme {
	return NewTheme(DefaultPalette(), lipgloss.NewRenderer(&bytes.Buffer{}))
}

func records(oldText, newText string) []reanchor.Record {
	ops := reanchor.NewDiffMatchPatch().Diff(reanchor.NewText(oldText), reanchor.NewText(newText))
	return reanchor.NewClassifier().Classify(ops)
}

func TestDetails(t *testing.T) {
	got := Details(records("abc", "axc"))
	want := []string{
		`Unchanged at index 0: "a" (Equal)`,
		`Removed at index 1: "b" (Deletion)`,
		`Added at index 2: "x" (Insertion)`,
		`Unchanged at index 3: "c" (Equal)`,
	}
	assert.Equal(t, want, got)
}

func TestLabelCodepointVariant(t *testing.T) {
	rec := reanchor.Record{Tag: reanchor.OpEqual, Variant: reanchor.EqualAtCodepoint}
	assert.Equal(t, "Unchanged (index matches code point)", Label(rec))
}

func TestColoredPlain(t *testing.T) {
	assert.Equal(t, "abxc", plainTheme().Colored(records("abc", "axc")))
}

func TestSummary(t *testing.T) {
	got := Summary(reanchor.Stats{Total: 4, Unchanged: 2, Insertions: 1, Deletions: 1})
	assert.Equal(t, "Total Changes: 4\nUnchanged Parts: 2\nInsertions: 1\nDeletions: 1", got)
}

func TestMark(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		positions []int
		want      string
	}{
		{name: "No positions", text: "abc", positions: nil, want: "abc"},
		{name: "Single run", text: "hello world", positions: []int{6, 7, 8, 9, 10}, want: "hello [world]"},
		{name: "Two runs", text: "ab-ab", positions: []int{0, 1, 3, 4}, want: "[ab]-[ab]"},
		{name: "Unsorted with duplicates", text: "abcd", positions: []int{2, 1, 2}, want: "a[bc]d"},
		{name: "Out of range ignored", text: "abc", positions: []int{-1, 2, 7}, want: "ab[c]"},
		{name: "Multi-byte runes", text: "मेंद्रण", positions: []int{3}, want: "में[द]्रण"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mark(reanchor.NewText(tt.text), tt.positions, "[", "]"))
		})
	}
}

func TestHighlightTextPlain(t *testing.T) {
	text := reanchor.NewText("keep this")
	assert.Equal(t, "keep this", plainTheme().HighlightText(text, []int{0, 1, 2, 3}))
}
