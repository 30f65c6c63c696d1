package align

import (
	"math/rand/v2"
	"testing"
)

func BenchmarkAlign(b *testing.B) {
	rng := rand.New(rand.NewPCG(7, 11))
	sources := genBook(rng, "s", 2000)
	targets := genBook(rng, "t", 2000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Align(sources, targets)
	}
}

func BenchmarkClassify(b *testing.B) {
	rng := rand.New(rand.NewPCG(3, 5))
	sources := genBook(rng, "s", 200)
	targets := genBook(rng, "t", 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Classify(sources, targets, Cursor{NextSource: i % len(sources), NextTarget: i % len(targets)})
	}
}
