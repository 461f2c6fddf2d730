package catalog

import (
	"crypto/rand"
	"math/big"
)

// randInt returns a uniform int in [0, n). Falls back to 0 if the
// entropy source fails, which only degrades shuffle quality.
func randInt(n int) int {
	if n <= 1 {
		return 0
	}
	j, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(j.Int64())
}

func randBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + randInt(hi-lo+1)
}

func randFloat(lo, hi float64) float64 {
	const steps = 1 << 20
	return lo + (hi-lo)*float64(randInt(steps))/float64(steps)
}

// Secure Fisher-Yates Shuffle
func shuffleTracks(tracks []Track) {
	for i := len(tracks) - 1; i > 0; i-- {
		j := randInt(i + 1)
		tracks[i], tracks[j] = tracks[j], tracks[i]
	}
}

func shuffleStrings(items []string) {
	for i := len(items) - 1; i > 0; i-- {
		j := randInt(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func shuffleArtists(artists []Artist) {
	for i := len(artists) - 1; i > 0; i-- {
		j := randInt(i + 1)
		artists[i], artists[j] = artists[j], artists[i]
	}
}
