package ladder

import (
	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/sampler"
)

// perTier preguntas de cada tramo (fácil, medio, difícil)
const perTier = 5

type buckets map[models.Difficulty][]models.MillionaireQuestion

// take saca al azar una pregunta del balde d; ok es false si está vacío
func (b buckets) take(src sampler.Source, d models.Difficulty) (models.MillionaireQuestion, bool) {
	bucket := b[d]
	if len(bucket) == 0 {
		return models.MillionaireQuestion{}, false
	}
	i := src.IntN(len(bucket))
	q := bucket[i]
	b[d] = append(bucket[:i:i], bucket[i+1:]...)
	return q, true
}

// SelectByDifficulty arma la escalera: 5 fáciles, 5 medias y 5 difíciles, pasando al tramo
// vecino cuando uno se queda corto y completando con cualquier pregunta restante.
// Si aun así no llega a 15, devuelve las primeras 15 del banco sin filtrar y fallback es true.
func SelectByDifficulty(src sampler.Source, pool []models.MillionaireQuestion, exclude map[int]struct{}) (selected []models.MillionaireQuestion, fallback bool) {
	if src == nil {
		src = sampler.Global()
	}

	b := buckets{}
	for _, q := range pool {
		if _, skip := exclude[q.ID]; skip {
			continue
		}
		if !q.Difficulty.Valid() {
			continue
		}
		b[q.Difficulty] = append(b[q.Difficulty], q)
	}

	// Sin difíciles, las muy difíciles hacen de difíciles
	if len(b[models.DifficultyHard]) == 0 {
		b[models.DifficultyHard], b[models.DifficultyVeryHard] = b[models.DifficultyVeryHard], nil
	}

	tiers := []struct{ primary, backup models.Difficulty }{
		{models.DifficultyEasy, models.DifficultyMedium},
		{models.DifficultyMedium, models.DifficultyHard},
		{models.DifficultyHard, models.DifficultyMedium},
	}

	selected = make([]models.MillionaireQuestion, 0, LadderSize)
	for _, tier := range tiers {
		for i := 0; i < perTier; i++ {
			q, ok := b.take(src, tier.primary)
			if !ok {
				q, ok = b.take(src, tier.backup)
			}
			if ok {
				selected = append(selected, q)
			}
		}
	}

	if len(selected) < LadderSize {
		var remaining []models.MillionaireQuestion
		for d := models.DifficultyEasy; d <= models.DifficultyVeryHard; d++ {
			remaining = append(remaining, b[d]...)
		}
		for len(selected) < LadderSize && len(remaining) > 0 {
			i := src.IntN(len(remaining))
			selected = append(selected, remaining[i])
			remaining = append(remaining[:i:i], remaining[i+1:]...)
		}
	}

	if len(selected) == LadderSize {
		return selected, false
	}

	n := min(LadderSize, len(pool))
	selected = make([]models.MillionaireQuestion, n)
	copy(selected, pool[:n])
	return selected, true
}
