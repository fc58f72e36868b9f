// Package sampler toma muestras aleatorias sin repetición usando Fisher-Yates.
package sampler

import "math/rand/v2"

// Source fuente de números aleatorios. *rand.Rand de math/rand/v2 la cumple.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Global devuelve la fuente compartida del paquete math/rand/v2, segura para goroutines
func Global() Source {
	return globalSource{}
}

func orGlobal(src Source) Source {
	if src == nil {
		return Global()
	}
	return src
}

// Shuffle mezcla items en su lugar. Todas las permutaciones son igual de probables.
func Shuffle[T any](src Source, items []T) {
	src = orGlobal(src)
	for i := len(items) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Sample devuelve hasta count elementos distintos de items en orden aleatorio.
// No modifica items.
func Sample[T any](src Source, items []T, count int) []T {
	if len(items) == 0 || count <= 0 {
		return []T{}
	}

	shuffled := make([]T, len(items))
	copy(shuffled, items)
	Shuffle(src, shuffled)

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// Permutation devuelve una permutación aleatoria de 0..n-1
func Permutation(src Source, n int) []int {
	if n <= 0 {
		return []int{}
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	Shuffle(src, perm)
	return perm
}

// IntBetween entero uniforme en [min, max], ambos incluidos
func IntBetween(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + orGlobal(src).IntN(max-min+1)
}

// Pick elemento al azar de items; ok es false si está vacío
func Pick[T any](src Source, items []T) (item T, ok bool) {
	if len(items) == 0 {
		return item, false
	}
	return items[orGlobal(src).IntN(len(items))], true
}
