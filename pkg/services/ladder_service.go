package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/GermanMalykh/quaqa/pkg/ladder"
	"github.com/GermanMalykh/quaqa/pkg/lifeline"
	"github.com/GermanMalykh/quaqa/pkg/models"
)

// ErrLifelineUnavailable el comodín ya se usó o no se puede usar ahora
var ErrLifelineUnavailable = errors.New("comodín no disponible")

// LadderService partidas del millonario
type LadderService struct {
	questions *QuestionService
	history   *HistoryService
	sessions  *SessionService
	publisher Publisher
	source    SourceFunc
	log       zerolog.Logger
}

// NewLadderService crea una nueva instancia del servicio del millonario.
// publisher puede ser nil.
func NewLadderService(questions *QuestionService, history *HistoryService, sessions *SessionService, publisher Publisher, source SourceFunc, logger zerolog.Logger) *LadderService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &LadderService{
		questions: questions,
		history:   history,
		sessions:  sessions,
		publisher: publisher,
		source:    orDefault(source),
		log:       logger,
	}
}

func ladderView(id string, g *ladder.Game) models.LadderView {
	view := g.View()
	view.SessionID = id
	return view
}

// Create arma una escalera nueva evitando las preguntas de las últimas partidas.
// La partida queda en estado start hasta llamar a Start.
func (l *LadderService) Create(ctx context.Context) (models.LadderView, error) {
	bank := l.questions.MillionaireQuestions(ctx)

	g := ladder.NewGame(l.source())
	err := g.LoadQuestions(bank, l.history.Exclusions())
	if g.UsedFallback() {
		l.log.Warn().Int("bank", len(bank)).Int("selected", g.QuestionCount()).
			Msg("⚠️ Sin preguntas suficientes por dificultad, se usan las primeras del banco")
	}
	if err != nil {
		return models.LadderView{}, fmt.Errorf("error armando escalera: %w", err)
	}

	id := l.sessions.Create(models.GameMillionaire, g)
	l.log.Info().Str("session", id).Int("bank", len(bank)).Msg("💰 Escalera lista")
	return ladderView(id, g), nil
}

// Start empieza (o reinicia) la partida
func (l *LadderService) Start(id string) (models.LadderView, error) {
	var view models.LadderView
	err := withGame(l.sessions, id, models.GameMillionaire, func(g *ladder.Game) error {
		if err := g.Start(); err != nil {
			return err
		}
		view = ladderView(id, g)
		return nil
	})
	return view, err
}

// Answer responde la pregunta actual. Si la partida termina, sus preguntas
// pasan al historial.
func (l *LadderService) Answer(ctx context.Context, id string, display int) (models.LadderView, error) {
	var (
		view     models.LadderView
		finished bool
		ids      []int
	)
	err := withGame(l.sessions, id, models.GameMillionaire, func(g *ladder.Game) error {
		if _, err := g.SelectAnswer(display); err != nil {
			return err
		}
		view = ladderView(id, g)
		if g.State().Finished() {
			finished = true
			ids = g.SelectedQuestionIDs()
		}
		return nil
	})
	if err != nil {
		return view, err
	}

	l.publisher.BroadcastMessage(EventLadderAnswer, view)

	if finished {
		l.history.Record(ctx, ids)
		l.publisher.BroadcastMessage(EventLadderFinished, map[string]interface{}{
			"sessionId": id,
			"state":     view.State,
			"score":     view.Score,
		})
		l.log.Info().Str("session", id).Str("state", string(view.State)).Int("score", view.Score).Msg("🏁 Partida del millonario terminada")
	}
	return view, nil
}

// Next pasa a la siguiente pregunta
func (l *LadderService) Next(id string) (models.LadderView, error) {
	var view models.LadderView
	err := withGame(l.sessions, id, models.GameMillionaire, func(g *ladder.Game) error {
		if err := g.NextQuestion(); err != nil {
			return err
		}
		view = ladderView(id, g)
		return nil
	})
	return view, err
}

// Lifeline usa un comodín sobre la pregunta actual
func (l *LadderService) Lifeline(id string, lifelineID models.LifelineID) (models.LifelineResult, error) {
	if !lifelineID.Valid() {
		return models.LifelineResult{}, fmt.Errorf("%w: %q", lifeline.ErrUnknownLifeline, lifelineID)
	}

	var result models.LifelineResult
	err := withGame(l.sessions, id, models.GameMillionaire, func(g *ladder.Game) error {
		if !g.UseLifeline(lifelineID) {
			return fmt.Errorf("%w: %s", ErrLifelineUnavailable, lifelineID)
		}
		var err error
		result, err = g.LifelineResult(lifelineID)
		return err
	})
	if err != nil {
		return result, err
	}

	l.publisher.BroadcastMessage(EventLadderLifeline, map[string]interface{}{
		"sessionId": id,
		"result":    result,
	})
	return result, nil
}

// View estado actual de la partida
func (l *LadderService) View(id string) (models.LadderView, error) {
	var view models.LadderView
	err := withGame(l.sessions, id, models.GameMillionaire, func(g *ladder.Game) error {
		view = ladderView(id, g)
		return nil
	})
	return view, err
}
