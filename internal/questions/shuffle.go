package questions

import "math/rand"

// shuffleStrings returns a uniformly random permutation of in, produced by a
// Fisher-Yates walk over a copy. The input is never mutated.
func shuffleStrings(rng *rand.Rand, in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// shuffleOptions combines the correct answer with the incorrect ones and
// shuffles the lot, fixing the option order for the rest of the session.
func shuffleOptions(rng *rand.Rand, correct string, incorrect []string) []string {
	all := make([]string, 0, len(incorrect)+1)
	all = append(all, correct)
	all = append(all, incorrect...)
	return shuffleStrings(rng, all)
}
