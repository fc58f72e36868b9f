// Package ladder implementa la partida del millonario: 15 preguntas, premios,
// dos sumas garantizadas y tres comodines.
package ladder

import (
	"errors"
	"fmt"

	"github.com/GermanMalykh/quaqa/pkg/lifeline"
	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/sampler"
)

var (
	ErrIllegalTransition     = errors.New("acción no permitida en el estado actual")
	ErrInsufficientQuestions = errors.New("no hay suficientes preguntas para la escalera")
	ErrInvalidAnswer         = errors.New("índice de respuesta inválido")
)

const answersPerQuestion = 4

// Game una partida. Pertenece a una sola sesión; no es segura para uso concurrente.
type Game struct {
	src       sampler.Source
	questions []models.MillionaireQuestion
	fallback  bool

	rung      int
	score     int
	lifelines [3]models.Lifeline
	selected  *int
	state     models.LadderState
	order     []int // posición de presentación -> índice real de la respuesta
}

// NewGame crea una partida vacía en estado start
func NewGame(src sampler.Source) *Game {
	if src == nil {
		src = sampler.Global()
	}
	g := &Game{
		src:   src,
		state: models.LadderStart,
	}
	g.resetLifelines()
	return g
}

func (g *Game) resetLifelines() {
	g.lifelines = [3]models.Lifeline{
		{ID: models.LifelineFiftyFifty, Name: "50:50"},
		{ID: models.LifelinePhone, Name: "Phone a Friend"},
		{ID: models.LifelineAudience, Name: "Ask the Audience"},
	}
}

// LoadQuestions elige las 15 preguntas de la partida dejando fuera las de exclude.
// Devuelve ErrInsufficientQuestions si el banco no alcanza; lo elegido queda cargado igual.
func (g *Game) LoadQuestions(pool []models.MillionaireQuestion, exclude map[int]struct{}) error {
	g.questions, g.fallback = SelectByDifficulty(g.src, pool, exclude)
	g.state = models.LadderStart
	g.rung = 0
	g.score = 0
	g.selected = nil
	g.order = nil

	if len(g.questions) < LadderSize {
		return fmt.Errorf("%w: %d de %d", ErrInsufficientQuestions, len(g.questions), LadderSize)
	}
	return nil
}

// Start reinicia la partida desde la primera pregunta. Una partida ganada o perdida
// no se reinicia: sus preguntas ya están en el historial y hay que armar otra escalera.
func (g *Game) Start() error {
	if g.state.Finished() {
		return fmt.Errorf("%w: empezar en estado %s", ErrIllegalTransition, g.state)
	}
	if len(g.questions) < LadderSize {
		return fmt.Errorf("%w: %d de %d", ErrInsufficientQuestions, len(g.questions), LadderSize)
	}

	g.rung = 0
	g.score = 0
	g.selected = nil
	g.resetLifelines()
	g.shuffleAnswers()
	g.state = models.LadderPlaying
	return nil
}

func (g *Game) shuffleAnswers() {
	g.order = sampler.Permutation(g.src, answersPerQuestion)
}

// SelectAnswer resuelve la respuesta en la posición de presentación display.
// Solo vale en estado playing; cualquier otra llamada se rechaza sin tocar nada.
func (g *Game) SelectAnswer(display int) (bool, error) {
	if g.state != models.LadderPlaying {
		return false, fmt.Errorf("%w: responder en estado %s", ErrIllegalTransition, g.state)
	}
	if display < 0 || display >= len(g.order) {
		return false, fmt.Errorf("%w: %d", ErrInvalidAnswer, display)
	}

	q := g.questions[g.rung]
	underlying := g.order[display]
	g.selected = &underlying
	g.state = models.LadderAnswerSelected

	correct := q.Answers[underlying].IsCorrect
	switch {
	case correct && g.rung == LadderSize-1:
		g.score = prizeLevels[LadderSize]
		g.state = models.LadderWon
	case correct:
		g.score = prizeLevels[g.rung+1]
	default:
		g.score = SafeHavenScore(g.rung)
		g.state = models.LadderLost
	}

	return correct, nil
}

// NextQuestion pasa al siguiente peldaño tras una respuesta correcta
func (g *Game) NextQuestion() error {
	if g.state != models.LadderAnswerSelected || g.rung+1 >= len(g.questions) {
		return fmt.Errorf("%w: avanzar en estado %s", ErrIllegalTransition, g.state)
	}

	g.rung++
	g.selected = nil
	g.shuffleAnswers()
	g.state = models.LadderPlaying
	return nil
}

// UseLifeline marca el comodín como usado. Devuelve false si no existe, ya se usó
// o la partida no está en estado playing.
func (g *Game) UseLifeline(id models.LifelineID) bool {
	if g.state != models.LadderPlaying {
		return false
	}
	for i := range g.lifelines {
		if g.lifelines[i].ID != id {
			continue
		}
		if g.lifelines[i].Used {
			return false
		}
		g.lifelines[i].Used = true
		return true
	}
	return false
}

// CanUseLifeline indica si UseLifeline tendría efecto
func (g *Game) CanUseLifeline(id models.LifelineID) bool {
	if g.state != models.LadderPlaying {
		return false
	}
	for _, l := range g.lifelines {
		if l.ID == id {
			return !l.Used
		}
	}
	return false
}

// LifelineResult calcula el comodín sobre la pregunta actual, con índices de presentación
func (g *Game) LifelineResult(id models.LifelineID) (models.LifelineResult, error) {
	q, ok := g.CurrentQuestion()
	if !ok || len(g.order) == 0 {
		return models.LifelineResult{ID: id}, fmt.Errorf("%w: no hay pregunta en curso", ErrIllegalTransition)
	}

	result, err := lifeline.Apply(g.src, id, q)
	if err != nil {
		return result, err
	}

	for i, idx := range result.Removed {
		result.Removed[i] = g.DisplayIndex(idx)
	}
	if result.Suggestion != nil {
		display := g.DisplayIndex(*result.Suggestion)
		result.Suggestion = &display
	}
	if len(result.Percentages) == answersPerQuestion {
		byDisplay := make([]int, answersPerQuestion)
		for d, idx := range g.order {
			byDisplay[d] = result.Percentages[idx]
		}
		result.Percentages = byDisplay
	}
	return result, nil
}

// DisplayIndex posición en pantalla de la respuesta real idx, -1 si no hay orden
func (g *Game) DisplayIndex(idx int) int {
	for d, u := range g.order {
		if u == idx {
			return d
		}
	}
	return -1
}

// CurrentQuestion pregunta del peldaño actual
func (g *Game) CurrentQuestion() (models.MillionaireQuestion, bool) {
	if g.rung < 0 || g.rung >= len(g.questions) {
		return models.MillionaireQuestion{}, false
	}
	return g.questions[g.rung], true
}

// State estado actual
func (g *Game) State() models.LadderState { return g.state }

// Score premio asegurado según el estado actual
func (g *Game) Score() int { return g.score }

// Rung peldaño actual (0-14)
func (g *Game) Rung() int { return g.rung }

// Prize premio del peldaño alcanzado
func (g *Game) Prize() int { return Prize(g.rung) }

// UsedFallback indica si la escalera salió del respaldo "primeras 15 sin filtrar"
func (g *Game) UsedFallback() bool { return g.fallback }

// QuestionCount preguntas cargadas
func (g *Game) QuestionCount() int { return len(g.questions) }

// SelectedQuestionIDs IDs de las preguntas de esta partida, para el historial
func (g *Game) SelectedQuestionIDs() []int {
	ids := make([]int, len(g.questions))
	for i, q := range g.questions {
		ids[i] = q.ID
	}
	return ids
}

// Progress foto del progreso
func (g *Game) Progress() models.LadderProgress {
	lifelines := make([]models.Lifeline, len(g.lifelines))
	copy(lifelines, g.lifelines[:])

	var selected *int
	if g.selected != nil {
		s := *g.selected
		selected = &s
	}

	return models.LadderProgress{
		CurrentQuestionIndex: g.rung,
		Score:                g.score,
		Lifelines:            lifelines,
		SelectedAnswer:       selected,
		State:                g.state,
	}
}

// View arma la vista de la pregunta actual con las respuestas en orden de presentación.
// La respuesta correcta y la explicación solo se muestran después de responder.
func (g *Game) View() models.LadderView {
	progress := g.Progress()
	view := models.LadderView{
		State:          g.state,
		Rung:           g.rung,
		Prize:          g.Prize(),
		Score:          g.score,
		Lifelines:      progress.Lifelines,
		Fallback:       g.fallback,
		TotalQuestions: len(g.questions),
		Prizes:         PrizeLevels(),
	}

	q, ok := g.CurrentQuestion()
	if !ok || g.state == models.LadderStart {
		return view
	}

	view.QuestionID = q.ID
	view.Question = q.Text
	view.Difficulty = q.Difficulty
	view.Topic = q.Topic
	for _, idx := range g.order {
		view.Answers = append(view.Answers, q.Answers[idx].Text)
	}

	if g.selected != nil {
		selected := g.DisplayIndex(*g.selected)
		correct := g.DisplayIndex(q.CorrectIndex())
		view.SelectedAnswer = &selected
		view.CorrectAnswer = &correct
		view.Explanation = q.Explanation
	}
	return view
}
