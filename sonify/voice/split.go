package voice

import "strings"

// Split partitions text among voices. Each character goes to the first
// predicate, in declaration order, that matches it; relative order is
// preserved and characters no predicate selects are dropped. The result
// holds one sub-text per predicate.
func Split(text string, preds []Predicate) []string {
	builders := make([]strings.Builder, len(preds))

	for _, r := range text {
		for i := range preds {
			if preds[i].Match(r) {
				builders[i].WriteRune(r)
				break
			}
		}
	}

	out := make([]string, len(preds))
	for i := range builders {
		out[i] = builders[i].String()
	}

	return out
}
