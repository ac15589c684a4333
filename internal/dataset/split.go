package dataset

import (
	"math/rand/v2"
	"slices"
)

// Split shuffles a copy of entries and carves off a dev set of
// len*devPercent/100 + 1 entries (capped at len). entries is not modified.
func Split(entries []Entry, devPercent int, r *rand.Rand) (train, dev []Entry) {
	if len(entries) == 0 {
		return nil, nil
	}

	shuffled := slices.Clone(entries)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	devN := min(len(shuffled)*devPercent/100+1, len(shuffled))
	return shuffled[devN:], shuffled[:devN]
}
