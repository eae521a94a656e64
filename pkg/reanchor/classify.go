package reanchor

import "go.uber.org/zap"

// EqualVariant distinguishes the two sub-cases of an Equal record.
type EqualVariant int8

const (
	// EqualPlain is the ordinary Equal record.
	EqualPlain EqualVariant = iota
	// EqualAtCodepoint marks an Equal record whose sequence index equals the
	// code point of its first unit.
	EqualAtCodepoint
)

// EqualPolicy decides the sub-case of an Equal record.
type EqualPolicy interface {
	Variant(seq int, value []rune) EqualVariant
}

// CodepointPolicy reports EqualAtCodepoint when the record's position in the
// edit script equals the numeric code of its first rune.
//
// The comparison mixes a script position with a character identity and has
// no meaning for the text itself. It is kept so that existing consumers of
// the classification keep seeing the same variants; swap it out with
// WithEqualPolicy rather than copying the rule elsewhere.
type CodepointPolicy struct{}

// Variant implements EqualPolicy.
func (CodepointPolicy) Variant(seq int, value []rune) EqualVariant {
	if len(value) > 0 && int(value[0]) == seq {
		return EqualAtCodepoint
	}
	return EqualPlain
}

// Record is the classification of one edit operation.
type Record struct {
	Tag     Operation
	Index   int    // Position in the edit script
	Value   string // Units covered by the op
	Variant EqualVariant
	OldPos  int // Rune position of the first unit in the old text, -1 for inserts
	NewPos  int // Rune position of the first unit in the new text, -1 for deletes
}

// Leading returns the first unit of the record's value.
func (r Record) Leading() (rune, bool) {
	for _, c := range r.Value {
		return c, true
	}
	return 0, false
}

// Classifier tags every op of an edit script in a single pass.
type Classifier struct {
	policy EqualPolicy
	logger *zap.Logger
}

// NewClassifier returns a Classifier. WithEqualPolicy and WithLogger apply.
func NewClassifier(opts ...Option) *Classifier {
	o := newOptions(opts)
	return &Classifier{policy: o.policy, logger: o.logger}
}

// Classify returns one Record per op, in script order.
func (c *Classifier) Classify(ops []EditOp) []Record {
	records := make([]Record, 0, len(ops))
	oldPos, newPos := 0, 0
	for seq, op := range ops {
		rec := Record{Tag: op.Op, Index: seq, Value: string(op.Units), OldPos: -1, NewPos: -1}
		switch op.Op {
		case OpEqual:
			rec.Variant = c.policy.Variant(seq, op.Units)
			rec.OldPos, rec.NewPos = oldPos, newPos
			oldPos += len(op.Units)
			newPos += len(op.Units)
		case OpInsert:
			rec.NewPos = newPos
			newPos += len(op.Units)
		case OpDelete:
			rec.OldPos = oldPos
			oldPos += len(op.Units)
		}
		records = append(records, rec)
	}
	c.logger.Debug("classified edit script",
		zap.Int("records", len(records)),
		zap.Int("oldLen", oldPos),
		zap.Int("newLen", newPos))
	return records
}
