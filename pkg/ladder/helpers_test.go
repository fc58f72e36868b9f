package ladder

import (
	"fmt"
	"math/rand/v2"

	"github.com/GermanMalykh/quaqa/pkg/models"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 99))
}

// bank genera count preguntas de la dificultad d con IDs desde firstID
func bank(firstID, count int, d models.Difficulty) []models.MillionaireQuestion {
	questions := make([]models.MillionaireQuestion, count)
	for i := range questions {
		id := firstID + i
		q := models.MillionaireQuestion{
			ID:         id,
			Text:       fmt.Sprintf("question %d", id),
			Difficulty: d,
		}
		for a := range q.Answers {
			q.Answers[a] = models.MillionaireAnswer{
				Text:      fmt.Sprintf("answer %d-%d", id, a),
				IsCorrect: a == id%4,
			}
		}
		questions[i] = q
	}
	return questions
}

func balancedBank() []models.MillionaireQuestion {
	var pool []models.MillionaireQuestion
	pool = append(pool, bank(1, 10, models.DifficultyEasy)...)
	pool = append(pool, bank(101, 10, models.DifficultyMedium)...)
	pool = append(pool, bank(201, 10, models.DifficultyHard)...)
	return pool
}

func correctDisplay(g *Game) int {
	q, _ := g.CurrentQuestion()
	return g.DisplayIndex(q.CorrectIndex())
}

func wrongDisplay(g *Game) int {
	correct := correctDisplay(g)
	for d := 0; d < answersPerQuestion; d++ {
		if d != correct {
			return d
		}
	}
	return -1
}

func startedGame(seed uint64) *Game {
	g := NewGame(seeded(seed))
	if err := g.LoadQuestions(balancedBank(), nil); err != nil {
		panic(err)
	}
	if err := g.Start(); err != nil {
		panic(err)
	}
	return g
}

// climb responde bien hasta quedar jugando en el peldaño rung
func climb(g *Game, rung int) {
	for g.Rung() < rung {
		if _, err := g.SelectAnswer(correctDisplay(g)); err != nil {
			panic(err)
		}
		if err := g.NextQuestion(); err != nil {
			panic(err)
		}
	}
}
