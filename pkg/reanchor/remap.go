package reanchor

import "go.uber.org/zap"

// Remapper relocates tracked spans onto a new text version.
//
// Relocation is prefix-only: the span is re-anchored at the first unchanged
// unit equal to its first character and extended over consecutive unchanged
// units for as long as they keep matching. The first interior edit ends the
// span; whatever follows it is dropped even if it still exists in the new
// text.
type Remapper struct {
	logger *zap.Logger
}

// NewRemapper returns a Remapper. WithLogger applies.
func NewRemapper(opts ...Option) *Remapper {
	o := newOptions(opts)
	return &Remapper{logger: o.logger}
}

// RemapSpan returns the new-text positions of the span tracked at positions
// in oldText, given the classified edit script from oldText to the new text.
// An empty result means the span could not be re-anchored.
func (m *Remapper) RemapSpan(id AnnotationID, positions []int, oldText Text, records []Record) ([]int, error) {
	anchor := make([]rune, 0, len(positions))
	for _, p := range positions {
		if p < 0 || p >= len(oldText) {
			return nil, &InvariantError{ID: id, Position: p, Length: len(oldText)}
		}
		anchor = append(anchor, oldText[p])
	}
	if len(anchor) == 0 {
		return nil, nil
	}

	start := -1
	for i, rec := range records {
		if rec.Tag != OpEqual {
			continue
		}
		if lead, ok := rec.Leading(); ok && lead == anchor[0] {
			start = i
			break
		}
	}
	if start == -1 {
		m.logger.Debug("no anchor for annotation", zap.String("id", string(id)), zap.String("anchor", string(anchor)))
		return nil, nil
	}

	prev := records[start]
	remapped := []int{prev.NewPos}
	for _, rec := range records[start+1:] {
		if len(remapped) == len(anchor) {
			break
		}
		if rec.Tag != OpEqual {
			continue
		}
		if rec.Index != prev.Index+1 || rec.Value != string(anchor[len(remapped)]) {
			break
		}
		remapped = append(remapped, rec.NewPos)
		prev = rec
	}

	if len(remapped) < len(anchor) {
		m.logger.Debug("annotation partially re-anchored",
			zap.String("id", string(id)),
			zap.Int("kept", len(remapped)),
			zap.Int("tracked", len(anchor)))
	}
	return remapped, nil
}

// Remap relocates every annotation of idx onto newText. Annotations that
// cannot be re-anchored are left out of the returned Index and reported in
// lost, in ID order. records must classify the edit script from idx.Text()
// to newText.
func (m *Remapper) Remap(idx *Index, newText Text, records []Record) (*Index, []AnnotationID, error) {
	var lost []AnnotationID
	entries := make(map[AnnotationID][]int, idx.Len())
	for _, id := range idx.IDs() {
		positions, _ := idx.Positions(id)
		next, err := m.RemapSpan(id, positions, idx.Text(), records)
		if err != nil {
			return nil, nil, err
		}
		if len(next) == 0 {
			lost = append(lost, id)
			continue
		}
		entries[id] = next
	}
	remapped, err := NewIndex(newText, entries)
	if err != nil {
		return nil, nil, err
	}
	return remapped, lost, nil
}
