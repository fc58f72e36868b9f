package sampler

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestSampleReturnsDistinctItemsFromInput(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	src := seeded(1)

	for count := 0; count <= len(items)+2; count++ {
		got := Sample(src, items, count)

		want := count
		if want > len(items) {
			want = len(items)
		}
		if len(got) != want {
			t.Fatalf("Sample(count=%d) len = %d, want %d", count, len(got), want)
		}

		seen := make(map[int]bool)
		for _, v := range got {
			if v < 1 || v > 10 {
				t.Fatalf("Sample returned %d which is not in the input", v)
			}
			if seen[v] {
				t.Fatalf("Sample returned duplicate %d", v)
			}
			seen[v] = true
		}
	}
}

func TestSampleDoesNotMutateInput(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	Sample(seeded(2), items, 4)

	for i, want := range []string{"a", "b", "c", "d"} {
		if items[i] != want {
			t.Fatalf("input mutated: %v", items)
		}
	}
}

func TestSampleEmptyCases(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		count int
	}{
		{"nil input", nil, 3},
		{"empty input", []int{}, 3},
		{"zero count", []int{1, 2}, 0},
		{"negative count", []int{1, 2}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sample(seeded(3), tt.items, tt.count)
			if got == nil || len(got) != 0 {
				t.Errorf("Sample = %v, want empty non-nil slice", got)
			}
		})
	}
}

func TestShuffleReachesEveryPermutationUniformly(t *testing.T) {
	src := seeded(4)
	counts := make(map[string]int)
	const trials = 6000

	for i := 0; i < trials; i++ {
		items := []int{0, 1, 2}
		Shuffle(src, items)
		counts[fmt.Sprint(items)]++
	}

	if len(counts) != 6 {
		t.Fatalf("reached %d permutations, want 6: %v", len(counts), counts)
	}
	for perm, n := range counts {
		if n < 800 || n > 1200 {
			t.Errorf("permutation %s seen %d times, expected about %d", perm, n, trials/6)
		}
	}
}

func TestPermutation(t *testing.T) {
	perm := Permutation(seeded(5), 4)
	if len(perm) != 4 {
		t.Fatalf("len = %d, want 4", len(perm))
	}
	seen := make([]bool, 4)
	for _, p := range perm {
		if p < 0 || p > 3 || seen[p] {
			t.Fatalf("invalid permutation %v", perm)
		}
		seen[p] = true
	}

	if got := Permutation(nil, 0); len(got) != 0 {
		t.Errorf("Permutation(0) = %v, want empty", got)
	}
}

func TestIntBetweenIsInclusive(t *testing.T) {
	src := seeded(6)
	seenMin, seenMax := false, false

	for i := 0; i < 2000; i++ {
		v := IntBetween(src, 70, 90)
		if v < 70 || v > 90 {
			t.Fatalf("IntBetween = %d, out of [70,90]", v)
		}
		seenMin = seenMin || v == 70
		seenMax = seenMax || v == 90
	}

	if !seenMin || !seenMax {
		t.Errorf("bounds not reached: min=%v max=%v", seenMin, seenMax)
	}
}

func TestPick(t *testing.T) {
	if _, ok := Pick(seeded(7), []string{}); ok {
		t.Error("Pick on empty slice reported ok")
	}

	items := []string{"a", "b", "c"}
	seen := map[string]bool{}
	src := seeded(8)
	for i := 0; i < 300; i++ {
		item, ok := Pick(src, items)
		if !ok {
			t.Fatal("Pick on non-empty slice reported !ok")
		}
		seen[item] = true
	}
	if len(seen) != len(items) {
		t.Errorf("picked %v, want every item", seen)
	}
}
