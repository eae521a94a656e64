// Package reanchor re-locates annotated character spans after a text has
// been edited.
//
// An Index records, per annotation, the rune positions a span occupies in a
// reference text. Reanchor diffs the reference text against a new version,
// classifies the resulting edit script and moves every annotation onto the
// new text, returning a fresh Index for the next cycle.
package reanchor

import (
	"go.uber.org/zap"
)

// Result is the outcome of one remap cycle.
type Result struct {
	Index   *Index         // Annotations relocated onto the new text
	Lost    []AnnotationID // Annotations that could not be re-anchored
	Records []Record       // Classified edit script
	Stats   Stats
}

// Reanchor runs one edit cycle: it diffs idx.Text() against newText,
// classifies the edit script and remaps every annotation of idx. idx itself
// is left untouched.
func Reanchor(idx *Index, newText Text, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	ops := o.differ.Diff(idx.Text(), newText)
	records := (&Classifier{policy: o.policy, logger: o.logger}).Classify(ops)
	remapped, lost, err := (&Remapper{logger: o.logger}).Remap(idx, newText, records)
	if err != nil {
		return nil, err
	}
	stats := CollectStats(records)

	o.logger.Debug("reanchor cycle",
		zap.Int("annotations", idx.Len()),
		zap.Int("kept", remapped.Len()),
		zap.Int("lost", len(lost)),
		zap.Int("insertions", stats.Insertions),
		zap.Int("deletions", stats.Deletions))

	return &Result{Index: remapped, Lost: lost, Records: records, Stats: stats}, nil
}

// Tracker chains remap cycles, replacing its current Index with the result
// of each cycle. Indexes handed out earlier stay valid. A Tracker is not safe
// for concurrent use.
type Tracker struct {
	current *Index
	opts    []Option
}

// NewTracker returns a Tracker positioned on idx. opts apply to every cycle.
func NewTracker(idx *Index, opts ...Option) *Tracker {
	return &Tracker{current: idx, opts: opts}
}

// Current returns the Index of the latest cycle.
func (t *Tracker) Current() *Index { return t.current }

// Track adds the occurrences of pattern in the current text under id.
func (t *Tracker) Track(pattern string, id AnnotationID) (*Index, error) {
	next, err := t.current.Track(pattern, id, t.opts...)
	if err != nil {
		return nil, err
	}
	t.current = next
	return next, nil
}

// Advance remaps the current annotations onto newText and makes the result
// the current Index.
func (t *Tracker) Advance(newText Text) (*Result, error) {
	res, err := Reanchor(t.current, newText, t.opts...)
	if err != nil {
		return nil, err
	}
	t.current = res.Index
	return res, nil
}
