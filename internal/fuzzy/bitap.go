package fuzzy

import "strings"

// maxPatternLen is the widest pattern a single bitap word can hold.
// Longer patterns are split into chunks and their scores averaged.
const maxPatternLen = 32

// matchText scores pattern against text. The score is the fraction of
// edit operations used relative to the pattern length (0 = exact).
// Location in the text is deliberately not penalized: a match late in a
// field is as good as one at the start.
func matchText(pattern, text string, threshold float64) (float64, bool) {
	if text == "" {
		return 0, false
	}
	if pattern == text {
		return 0, true
	}
	if len(pattern) <= maxPatternLen {
		return bitap(pattern, text, threshold)
	}

	// Chunked search for long patterns: every chunk is matched
	// independently and the scores averaged; one matching chunk is
	// enough to count the field as matched.
	var (
		total   float64
		chunks  int
		anyHit  bool
		residue = pattern
	)
	for len(residue) > 0 {
		n := len(residue)
		if n > maxPatternLen {
			n = maxPatternLen
		}
		chunkScore, ok := bitap(residue[:n], text, threshold)
		if ok {
			anyHit = true
			total += chunkScore
		} else {
			total += 1
		}
		chunks++
		residue = residue[n:]
	}
	return total / float64(chunks), anyHit
}

// bitap runs a Wu–Manber approximate match of pattern over text,
// tolerating up to floor(threshold * len(pattern)) edit operations.
// Returns the score for the best match found.
func bitap(pattern, text string, threshold float64) (float64, bool) {
	patLen := len(pattern)

	// Exact substring: zero edits, best possible score.
	if strings.Contains(text, pattern) {
		return 0, true
	}

	maxErrors := int(threshold * float64(patLen))
	if maxErrors == 0 {
		return 0, false
	}
	if patLen > len(text)+maxErrors {
		return 0, false
	}

	// Bitmask per pattern character; bit i set means the character
	// appears at pattern position i.
	var masks [256]uint64
	for i := 0; i < patLen; i++ {
		masks[pattern[i]] |= 1 << i
	}
	found := uint64(1) << (patLen - 1)

	// r[d] tracks prefixes matched with exactly d edits.
	r := make([]uint64, maxErrors+1)
	prev := make([]uint64, maxErrors+1)

	best := -1
	for i := 0; i < len(text); i++ {
		charMask := masks[text[i]]
		copy(prev, r)

		r[0] = ((prev[0] << 1) | 1) & charMask
		for d := 1; d <= maxErrors; d++ {
			// match | substitution/insertion | deletion
			r[d] = (((prev[d] << 1) | 1) & charMask) |
				(((prev[d-1] | r[d-1]) << 1) | 1) |
				prev[d-1]
		}

		for d := 0; d <= maxErrors; d++ {
			if r[d]&found != 0 {
				if best == -1 || d < best {
					best = d
				}
				break
			}
		}
		if best == 0 {
			break
		}
	}

	if best == -1 {
		return 0, false
	}
	return float64(best) / float64(patLen), true
}
