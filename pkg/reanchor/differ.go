package reanchor

import (
	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
)

// Differ produces an edit script between two texts.
//
// Implementations must be deterministic and must account for every unit of
// oldText (as Delete or Equal) and every unit of newText (as Insert or Equal)
// exactly once, in order.
type Differ interface {
	Diff(oldText, newText Text) []EditOp
}

// DiffMatchPatch is a Differ backed by diff-match-patch's Myers implementation.
// It emits one EditOp per rune.
type DiffMatchPatch struct {
	dmp    *diffmatchpatch.DiffMatchPatch
	logger *zap.Logger
}

// NewDiffMatchPatch returns a character-level differ. Only WithLogger is
// honoured among opts.
func NewDiffMatchPatch(opts ...Option) *DiffMatchPatch {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	dmp := diffmatchpatch.New()
	// A timeout makes the result depend on machine speed.
	dmp.DiffTimeout = 0
	return &DiffMatchPatch{dmp: dmp, logger: o.logger}
}

// Diff implements Differ.
func (d *DiffMatchPatch) Diff(oldText, newText Text) []EditOp {
	diffs := d.dmp.DiffMainRunes(oldText, newText, false)
	if ce := d.logger.Check(zap.DebugLevel, "computed diff"); ce != nil {
		ce.Write(zap.Int("runs", len(diffs)), zap.String("pretty", d.dmp.DiffPrettyText(diffs)))
	}

	ops := make([]EditOp, 0, len(oldText)+len(newText))
	for _, diff := range diffs {
		var op Operation
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			op = OpEqual
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		}
		for _, r := range diff.Text {
			ops = append(ops, EditOp{Op: op, Index: len(ops), Units: []rune{r}})
		}
	}
	return ops
}
