package ladder

// LadderSize preguntas en una partida completa
const LadderSize = 15

// Peldaños de las sumas garantizadas (1-indexados: preguntas 5 y 10)
const (
	firstSafeHaven  = 5
	secondSafeHaven = 10
)

// prizeLevels premio al superar cada peldaño; el índice 0 es antes de empezar
var prizeLevels = [LadderSize + 1]int{
	0,
	100, 200, 300, 500, 1000,
	2000, 4000, 8000, 15000, 15000,
	35000, 75000, 150000, 300000, 1000000,
}

// Prize premio acumulado tras responder bien rung preguntas
func Prize(rung int) int {
	if rung < 0 {
		return 0
	}
	if rung > LadderSize {
		rung = LadderSize
	}
	return prizeLevels[rung]
}

// PrizeLevels copia de la tabla de premios
func PrizeLevels() []int {
	levels := make([]int, len(prizeLevels))
	copy(levels, prizeLevels[:])
	return levels
}

// SafeHavenScore lo que se lleva quien falla en el peldaño rung (0-indexado)
func SafeHavenScore(rung int) int {
	switch {
	case rung < firstSafeHaven:
		return 0
	case rung < secondSafeHaven:
		return prizeLevels[firstSafeHaven]
	default:
		return prizeLevels[secondSafeHaven]
	}
}
