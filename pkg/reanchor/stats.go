package reanchor

import "unicode/utf8"

// Stats counts the units of a classified edit script by kind.
type Stats struct {
	Total      int
	Unchanged  int
	Insertions int
	Deletions  int
}

// CollectStats folds records into Stats. Both Equal variants count as unchanged.
func CollectStats(records []Record) Stats {
	var stats Stats
	for _, rec := range records {
		n := utf8.RuneCountInString(rec.Value)
		stats.Total += n
		switch rec.Tag {
		case OpEqual:
			stats.Unchanged += n
		case OpInsert:
			stats.Insertions += n
		case OpDelete:
			stats.Deletions += n
		}
	}
	return stats
}
