package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/GermanMalykh/quaqa/pkg/blast"
	"github.com/GermanMalykh/quaqa/pkg/models"
)

// blastSession la partida y si ya se avisó su final
type blastSession struct {
	game      *blast.Game
	announced bool
}

// BlastService partidas del minijuego de asteroides
type BlastService struct {
	questions *QuestionService
	sessions  *SessionService
	publisher Publisher
	source    SourceFunc
	log       zerolog.Logger
}

// NewBlastService crea una nueva instancia del servicio de asteroides
func NewBlastService(questions *QuestionService, sessions *SessionService, publisher Publisher, source SourceFunc, logger zerolog.Logger) *BlastService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &BlastService{
		questions: questions,
		sessions:  sessions,
		publisher: publisher,
		source:    orDefault(source),
		log:       logger,
	}
}

func (b *BlastService) view(id string, s *blastSession) models.BlastView {
	view := s.game.View()
	view.SessionID = id
	if view.Over && !s.announced {
		s.announced = true
		b.publisher.BroadcastMessage(EventBlastOver, view)
		b.log.Info().Str("session", id).Int("score", view.Score).Msg("☄️ Partida de asteroides terminada")
	}
	return view
}

// Create empieza una partida con los temas elegidos para el juego (todos si no hay)
func (b *BlastService) Create(ctx context.Context) (models.BlastView, error) {
	all := b.questions.AllTopics(ctx)
	topics := b.questions.GameTopics(ctx, models.GameBlast)

	s := &blastSession{game: blast.NewGame(b.source())}
	if err := s.game.Start(all, topics); err != nil {
		return models.BlastView{}, fmt.Errorf("error iniciando asteroides: %w", err)
	}

	id := b.sessions.Create(models.GameBlast, s)
	return b.view(id, s), nil
}

// Shoot dispara a un asteroide
func (b *BlastService) Shoot(id, target string) (models.BlastView, blast.ShotResult, error) {
	var (
		view   models.BlastView
		result blast.ShotResult
	)
	err := withGame(b.sessions, id, models.GameBlast, func(s *blastSession) error {
		var err error
		if result, err = s.game.Shoot(target); err != nil {
			return err
		}
		view = b.view(id, s)
		return nil
	})
	return view, result, err
}

// Tick descuenta tiempo del reloj
func (b *BlastService) Tick(id string, elapsed float64) (models.BlastView, error) {
	var view models.BlastView
	err := withGame(b.sessions, id, models.GameBlast, func(s *blastSession) error {
		s.game.Tick(seconds(elapsed))
		view = b.view(id, s)
		return nil
	})
	return view, err
}

// View estado actual de la partida
func (b *BlastService) View(id string) (models.BlastView, error) {
	var view models.BlastView
	err := withGame(b.sessions, id, models.GameBlast, func(s *blastSession) error {
		view = b.view(id, s)
		return nil
	})
	return view, err
}
