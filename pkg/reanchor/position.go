package reanchor

import "unicode/utf8"

// MapPosition translates a rune position in the old text to the new text
// using a classified edit script. A position inside a deleted run maps to
// the point where the deletion happened; a position past the end of the old
// text maps to the end of the new text.
func MapPosition(oldPos int, records []Record) int {
	currentNewPos := 0
	for _, rec := range records {
		switch rec.Tag {
		case OpDelete:
			if oldPos >= rec.OldPos && oldPos < rec.OldPos+utf8.RuneCountInString(rec.Value) {
				return currentNewPos
			}
		case OpInsert:
			currentNewPos = rec.NewPos + utf8.RuneCountInString(rec.Value)
		case OpEqual:
			if oldPos >= rec.OldPos && oldPos < rec.OldPos+utf8.RuneCountInString(rec.Value) {
				return rec.NewPos + (oldPos - rec.OldPos)
			}
			currentNewPos = rec.NewPos + utf8.RuneCountInString(rec.Value)
		}
	}
	return currentNewPos
}

// FirstChange reports the first contiguous block of edits: the text it
// removed, the text it added and where it starts in the old text. start is
// -1 when the script contains no edits.
func FirstChange(records []Record) (added, removed string, start int) {
	start = -1
	for _, rec := range records {
		if rec.Tag == OpEqual {
			if start != -1 {
				break
			}
			continue
		}
		if start == -1 {
			start = rec.OldPos
			if rec.Tag == OpInsert {
				start = oldOffsetBefore(records, rec.Index)
			}
		}
		if rec.Tag == OpInsert {
			added += rec.Value
		} else {
			removed += rec.Value
		}
	}
	return added, removed, start
}

// oldOffsetBefore returns the old-text position reached just before the
// record at seq.
func oldOffsetBefore(records []Record, seq int) int {
	pos := 0
	for _, rec := range records[:seq] {
		if rec.Tag != OpInsert {
			pos = rec.OldPos + utf8.RuneCountInString(rec.Value)
		}
	}
	return pos
}
