package reanchor

// findOccurrences returns the start of every occurrence of pattern in text.
// After a match at p the search resumes at p+1, so overlapping occurrences
// are all reported.
func findOccurrences(text Text, pattern []rune) []int {
	var found []int
	if len(pattern) == 0 {
		return found
	}
	searchStart := 0
	for searchStart+len(pattern) <= len(text) {
		foundPos := indexRunes(text[searchStart:], pattern)
		if foundPos == -1 {
			break
		}
		matchPos := searchStart + foundPos
		found = append(found, matchPos)
		searchStart = matchPos + 1
	}
	return found
}

// indexRunes is strings.Index for rune slices.
func indexRunes(s, sub []rune) int {
	n := len(sub)
outer:
	for i := 0; i+n <= len(s); i++ {
		for j := 0; j < n; j++ {
			if s[i+j] != sub[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
