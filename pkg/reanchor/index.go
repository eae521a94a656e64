package reanchor

import (
	"maps"
	"slices"

	"go.uber.org/zap"
)

// Index maps annotations to the ascending rune positions they occupy in one
// reference Text. An Index is never modified after construction; operations
// that change it return a new Index, so any number of holders may read the
// same value concurrently.
type Index struct {
	text      Text
	positions map[AnnotationID][]int
}

// BuildIndex scans ref for every occurrence of pattern, overlapping ones
// included, and returns an Index holding the union of the matched ranges
// under id. A pattern that never occurs yields an empty entry, not an error.
func BuildIndex(ref Text, pattern string, id AnnotationID, opts ...Option) (*Index, error) {
	empty := &Index{text: ref, positions: map[AnnotationID][]int{}}
	return empty.Track(pattern, id, opts...)
}

// NewIndex returns an Index over ref with the given entries. Positions are
// sorted and deduplicated; any position outside ref yields an *InvariantError.
func NewIndex(ref Text, entries map[AnnotationID][]int) (*Index, error) {
	idx := &Index{text: ref, positions: make(map[AnnotationID][]int, len(entries))}
	for id, pos := range entries {
		sorted := slices.Clone(pos)
		slices.Sort(sorted)
		idx.positions[id] = slices.Compact(sorted)
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Track returns a copy of idx in which the ranges matched by pattern are
// unioned into the entry for id.
func (idx *Index) Track(pattern string, id AnnotationID, opts ...Option) (*Index, error) {
	o := newOptions(opts)
	needle := []rune(pattern)
	if len(needle) == 0 {
		return nil, &ConfigurationError{Field: "pattern", Reason: "must not be empty", Err: ErrEmptyPattern}
	}

	matches := findOccurrences(idx.text, needle)
	o.logger.Debug("pattern scan",
		zap.String("id", string(id)),
		zap.String("pattern", pattern),
		zap.Ints("matches", matches))

	covered := make(map[int]struct{}, len(matches)+len(needle))
	for _, p := range idx.positions[id] {
		covered[p] = struct{}{}
	}
	for _, start := range matches {
		for p := start; p < start+len(needle); p++ {
			covered[p] = struct{}{}
		}
	}

	next := idx.clone()
	next.positions[id] = slices.Sorted(maps.Keys(covered))
	return next, nil
}

// Text returns the reference text. Callers must not modify it.
func (idx *Index) Text() Text { return idx.text }

// Positions returns a copy of the positions tracked for id.
func (idx *Index) Positions(id AnnotationID) ([]int, bool) {
	pos, ok := idx.positions[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(pos), true
}

// IDs returns the tracked annotation identifiers in sorted order.
func (idx *Index) IDs() []AnnotationID {
	return slices.Sorted(maps.Keys(idx.positions))
}

// Len returns the number of tracked annotations.
func (idx *Index) Len() int { return len(idx.positions) }

// Validate checks that every tracked position lies within the reference text.
func (idx *Index) Validate() error {
	for _, id := range idx.IDs() {
		for _, p := range idx.positions[id] {
			if p < 0 || p >= len(idx.text) {
				return &InvariantError{ID: id, Position: p, Length: len(idx.text)}
			}
		}
	}
	return nil
}

func (idx *Index) clone() *Index {
	positions := maps.Clone(idx.positions)
	if positions == nil {
		positions = make(map[AnnotationID][]int)
	}
	return &Index{text: idx.text, positions: positions}
}
