package mapping

import "github.com/cespare/xxhash/v2"

// HashVersion identifies the token hash. Renders are reproducible across
// runs and platforms for a given version.
const HashVersion = "xxh64-v1"

const hashBuckets = 1000

// Hash returns the token hash bucket in [0, 1000).
func Hash(text string) uint64 {
	return xxhash.Sum64String(text) % hashBuckets
}
