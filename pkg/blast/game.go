// Package blast implementa el minijuego de asteroides: cada ronda muestra una pregunta y
// tres asteroides con respuestas; hay que derribar el correcto antes de que se acabe el tiempo.
package blast

import (
	"errors"
	"fmt"
	"time"

	"github.com/GermanMalykh/quaqa/pkg/converter"
	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/practice"
	"github.com/GermanMalykh/quaqa/pkg/sampler"
)

const (
	StartTime    = 10 * time.Second
	HitBonus     = 3 * time.Second
	MissPenalty  = 1 * time.Second
	wrongTargets = 2
)

// ErrOver la partida ya terminó
var ErrOver = errors.New("la partida terminó")

// ShotResult qué pasó con un disparo
type ShotResult int

const (
	ShotIgnored ShotResult = iota // asteroide desconocido o ya destruido
	ShotHit
	ShotMiss
)

type target struct {
	models.BlastTarget
	correct bool
}

// Game una partida de asteroides. No es segura para uso concurrente.
type Game struct {
	src       sampler.Source
	pool      *practice.Pool
	converter *converter.Converter

	current  models.Question
	targets  []target
	round    int
	timeLeft time.Duration
	score    int
	correct  int
	wrong    int
	over     bool
}

// NewGame crea una partida sin preguntas
func NewGame(src sampler.Source) *Game {
	if src == nil {
		src = sampler.Global()
	}
	return &Game{
		src:       src,
		pool:      practice.NewPool(src),
		converter: converter.New(src),
		over:      true,
	}
}

// Start arma el conjunto de trabajo con los temas dados (todos si no hay ninguno)
// y saca la primera ronda.
func (g *Game) Start(all models.QuestionsByTopic, topics []string) error {
	if len(topics) == 0 {
		topics = all.Topics()
	}
	g.pool.BuildWorkingSet(all, topics)
	if g.pool.Len() == 0 {
		return practice.ErrNoQuestion
	}

	g.round = 0
	g.timeLeft = StartTime
	g.score, g.correct, g.wrong = 0, 0, 0
	g.over = false
	return g.nextRound()
}

// nextRound pasa a otra pregunta; sin preguntas nuevas la partida termina
func (g *Game) nextRound() error {
	if g.pool.Exhausted() {
		g.over = true
		g.targets = nil
		return nil
	}

	q, err := g.pool.Next()
	if err != nil {
		return fmt.Errorf("error sacando pregunta: %w", err)
	}
	g.current = q
	g.round++

	others := make([]models.Question, 0, g.pool.Len())
	for _, other := range g.pool.Questions() {
		if other != q {
			others = append(others, other)
		}
	}

	answers := append([]string{q.Answer}, g.converter.GenerateWrongAnswers(q.Answer, others, wrongTargets)...)
	order := sampler.Permutation(g.src, len(answers))

	g.targets = make([]target, len(answers))
	for i, idx := range order {
		g.targets[i] = target{
			BlastTarget: models.BlastTarget{
				ID:   fmt.Sprintf("r%d-t%d", g.round, i),
				Text: answers[idx],
			},
			correct: idx == 0,
		}
	}
	return nil
}

// Shoot dispara al asteroide id. Acertar suma punto y tiempo y pasa de ronda;
// fallar descuenta un segundo y destruye el asteroide.
func (g *Game) Shoot(id string) (ShotResult, error) {
	if g.over {
		return ShotIgnored, ErrOver
	}

	for i := range g.targets {
		t := &g.targets[i]
		if t.ID != id {
			continue
		}
		if t.Destroyed {
			return ShotIgnored, nil
		}
		t.Destroyed = true

		if t.correct {
			g.score++
			g.correct++
			g.timeLeft += HitBonus
			return ShotHit, g.nextRound()
		}

		g.wrong++
		g.timeLeft = max(0, g.timeLeft-MissPenalty)
		if g.timeLeft == 0 {
			g.over = true
		}
		return ShotMiss, nil
	}
	return ShotIgnored, nil
}

// Tick descuenta elapsed del reloj. Devuelve true si la partida terminó.
func (g *Game) Tick(elapsed time.Duration) bool {
	if g.over || elapsed <= 0 {
		return g.over
	}
	g.timeLeft = max(0, g.timeLeft-elapsed)
	if g.timeLeft == 0 {
		g.over = true
	}
	return g.over
}

// Over indica si la partida terminó
func (g *Game) Over() bool { return g.over }

// Score puntos
func (g *Game) Score() int { return g.score }

// TimeLeft tiempo restante
func (g *Game) TimeLeft() time.Duration { return g.timeLeft }

// Stats aciertos y fallos
func (g *Game) Stats() (correct, wrong int) { return g.correct, g.wrong }

// View vista de la ronda actual
func (g *Game) View() models.BlastView {
	view := models.BlastView{
		TimeLeft:       g.timeLeft.Seconds(),
		Score:          g.score,
		CorrectAnswers: g.correct,
		WrongAnswers:   g.wrong,
		Over:           g.over,
	}
	if g.over || g.round == 0 {
		return view
	}

	view.Question = g.current.Question
	view.Category = g.current.Category
	view.Targets = make([]models.BlastTarget, len(g.targets))
	for i, t := range g.targets {
		view.Targets[i] = t.BlastTarget
	}
	return view
}
