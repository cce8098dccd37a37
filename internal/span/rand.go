package span

import (
	"math"
	"math/rand/v2"
)

// pcgStream fixes the PCG increment so a seed alone determines the sequence.
const pcgStream = 0x6d616e747261 // "mantra"

// positionQuantum is the grid positions are snapped to before hashing.
// Event starts reached through different float paths (fast then slow, shifted
// cycles) land on the same key.
const positionQuantum = 1e9

// Rand is a seeded sequential generator. Output is identical across runs and
// platforms for the same seed.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a generator for seed.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(uint64(seed), pcgStream))}
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// IntN returns the next value in [0, n). n must be positive.
func (r *Rand) IntN(n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Shuffle returns a Fisher–Yates permutation of 0..n-1 driven by seed.
func Shuffle(n int, seed int64) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	r := NewRand(seed)
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// RandIndex returns a value in [0, 1) determined only by seed and i.
func RandIndex(seed int64, i int64) float64 {
	h := splitmix64(uint64(seed) ^ splitmix64(uint64(i)))
	return float64(h>>11) / (1 << 53)
}

// RandAt returns a value in [0, 1) determined only by seed and the position pos.
func RandAt(seed int64, pos float64) float64 {
	return RandIndex(seed, int64(math.Round(pos*positionQuantum)))
}

// DeriveSeed returns the i-th child seed of seed. Children of the same
// parent are distinct for distinct i and identical across runs.
func DeriveSeed(seed int64, i int64) int64 {
	return int64(splitmix64(uint64(seed) ^ splitmix64(uint64(i)+1)))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
