package mazegen

import "math/rand"

// defaultSeed replaces a zero seed so the default stream is reproducible.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic source; seed 0 maps to defaultSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// pick returns a uniformly chosen element of choices, which must be non-empty.
func pick(rng *rand.Rand, choices []int) int {
	return choices[rng.Intn(len(choices))]
}
