package dataset

import (
	"errors"
	"strings"
)

// ErrNoDelimiter is returned when no candidate delimiter splits the sample consistently.
var ErrNoDelimiter = errors.New("could not determine delimiter")

// candidates are tried in preference order; ties in consistency go to the earlier one.
var candidates = []rune{',', '\t', ';', '|', ':', ' '}

// minConsistency is the share of sample records that must agree on a delimiter count.
const minConsistency = 0.9

// SniffDelimiter inspects a sample of a delimited file and returns the field
// delimiter. When truncated is true the sample was cut at the read limit and its
// trailing partial record is ignored.
func SniffDelimiter(sample []byte, truncated bool) (rune, error) {
	text := strings.TrimPrefix(string(sample), "\ufeff")

	best := rune(0)
	bestScore := 0.0
	for _, c := range candidates {
		counts := delimCounts(text, c, truncated)
		if len(counts) == 0 {
			continue
		}
		freq := map[int]int{}
		for _, n := range counts {
			freq[n]++
		}
		mode, hits := 0, 0
		for n, h := range freq {
			if h > hits || (h == hits && n > mode) {
				mode, hits = n, h
			}
		}
		if mode == 0 {
			continue
		}
		score := float64(hits) / float64(len(counts))
		if score < minConsistency {
			continue
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if best == 0 {
		return 0, ErrNoDelimiter
	}
	return best, nil
}

// delimCounts splits text into records and returns, for each non-empty record,
// how many times delim occurs outside quoted fields. A quote opens a quoted
// field only at the start of a field, and a line break inside a quoted field
// does not end the record. When truncated is set the trailing record is
// dropped unless it is the only one.
func delimCounts(text string, delim rune, truncated bool) []int {
	var counts []int
	n := 0
	empty, fieldStart := true, true
	quoted, closed := false, false
	flush := func() {
		if !empty {
			counts = append(counts, n)
		}
		n, empty, fieldStart = 0, true, true
	}
	for _, r := range text {
		if quoted {
			if r == '"' {
				quoted, closed = false, true
			}
			continue
		}
		if closed {
			closed = false
			// "" inside a quoted field is an escaped quote.
			if r == '"' {
				quoted = true
				continue
			}
		}
		switch r {
		case '\n':
			flush()
		case '\r':
		case delim:
			n++
			empty, fieldStart = false, true
		case '"':
			quoted = fieldStart
			empty, fieldStart = false, false
		default:
			empty, fieldStart = false, false
		}
	}
	if !truncated || len(counts) == 0 {
		flush()
	}
	return counts
}
