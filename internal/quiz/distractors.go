package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/lingodrill/internal/corpus"
)

// DistractorCount is the number of wrong options offered alongside the
// correct one.
const DistractorCount = 3

// SampleDistractors draws up to n items of the target's category, never
// the target itself and never the same item twice. When fewer than n
// candidates exist, all of them are returned in random order.
func SampleDistractors(rng *rand.Rand, items []corpus.Item, target corpus.Item, n int) []corpus.Item {
	pool := make([]corpus.Item, 0, len(items))
	seen := map[string]bool{target.ID(): true}
	for _, it := range items {
		if it.Category != target.Category || seen[it.ID()] {
			continue
		}
		seen[it.ID()] = true
		pool = append(pool, it)
	}

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

// BuildOptions returns the target plus its distractors in random order.
func BuildOptions(rng *rand.Rand, items []corpus.Item, target corpus.Item) []corpus.Item {
	opts := append(SampleDistractors(rng, items, target, DistractorCount), target)
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}
