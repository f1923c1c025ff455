package levelgen

// Rand is a string-seeded 32-bit generator: a djb2 hash of the seed feeds a
// mulberry32 stream. The sequence is fixed for a given seed on every platform.
type Rand struct {
	state uint32
}

// NewRand seeds a generator from a string.
func NewRand(seed string) *Rand {
	return &Rand{state: hashString(seed)}
}

func hashString(s string) uint32 {
	h := uint32(5381)
	for _, r := range s {
		h = h<<5 + h + uint32(r)
	}
	return h
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// IntRange returns an integer in [a, b] inclusive.
func (r *Rand) IntRange(a, b int) int {
	return a + int(r.Float64()*float64(b-a+1))
}
