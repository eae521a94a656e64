package reanchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptOf renders ops as "=a -b +x" for compact comparison.
func scriptOf(ops []EditOp) []string {
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		prefix := map[Operation]string{OpEqual: "=", OpInsert: "+", OpDelete: "-"}[op.Op]
		out = append(out, prefix+string(op.Units))
	}
	return out
}

func TestDiffMatchPatchSelfDiff(t *testing.T) {
	for _, text := range []string{"", "a", "hello world", "मेंद्रण"} {
		t.Run(text, func(t *testing.T) {
			snap := NewText(text)
			ops := NewDiffMatchPatch().Diff(snap, snap)
			require.Len(t, ops, len(snap))
			for i, op := range ops {
				assert.Equal(t, OpEqual, op.Op)
				assert.Equal(t, i, op.Index)
				assert.Equal(t, []rune{snap[i]}, op.Units)
			}
		})
	}
}

func TestDiffMatchPatchScript(t *testing.T) {
	tests := []struct {
		name    string
		oldText string
		newText string
		want    []string
	}{
		{
			name:    "Substitution in middle",
			oldText: "abc",
			newText: "axc",
			want:    []string{"=a", "-b", "+x", "=c"},
		},
		{
			name:    "Pure insertion",
			oldText: "ac",
			newText: "abc",
			want:    []string{"=a", "+b", "=c"},
		},
		{
			name:    "Pure deletion",
			oldText: "abc",
			newText: "ac",
			want:    []string{"=a", "-b", "=c"},
		},
		{
			name:    "Everything replaced",
			oldText: "ab",
			newText: "xy",
			want:    []string{"-a", "-b", "+x", "+y"},
		},
		{
			name:    "Empty old text",
			oldText: "",
			newText: "hi",
			want:    []string{"+h", "+i"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := NewDiffMatchPatch().Diff(NewText(tt.oldText), NewText(tt.newText))
			assert.Equal(t, tt.want, scriptOf(ops))
			for i, op := range ops {
				assert.Equal(t, i, op.Index, "ops must be numbered by script position")
			}
		})
	}
}

func TestDiffMatchPatchCoversBothTexts(t *testing.T) {
	pairs := [][2]string{
		{"मेंद्रण", "दृण"},
		{"line one-two-smile\nline two-smile", "line one-two-smile\nline two"},
		{"kitten", "sitting"},
	}
	for _, pair := range pairs {
		oldText, newText := NewText(pair[0]), NewText(pair[1])
		ops := NewDiffMatchPatch().Diff(oldText, newText)

		var rebuiltOld, rebuiltNew []rune
		for _, op := range ops {
			if op.Op != OpInsert {
				rebuiltOld = append(rebuiltOld, op.Units...)
			}
			if op.Op != OpDelete {
				rebuiltNew = append(rebuiltNew, op.Units...)
			}
		}
		assert.Equal(t, pair[0], string(rebuiltOld))
		assert.Equal(t, pair[1], string(rebuiltNew))
	}
}

func TestDiffMatchPatchDeterministic(t *testing.T) {
	oldText := NewText("the quick brown fox jumps over the lazy dog")
	newText := NewText("the quack brown fix jumped over a lazy dog!")
	d := NewDiffMatchPatch()
	first := d.Diff(oldText, newText)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, NewDiffMatchPatch().Diff(oldText, newText))
	}
}
