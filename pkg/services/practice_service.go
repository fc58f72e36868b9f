package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/practice"
)

// PracticeService partidas de práctica con cronómetro por pregunta
type PracticeService struct {
	questions *QuestionService
	sessions  *SessionService
	source    SourceFunc
	log       zerolog.Logger
}

// NewPracticeService crea una nueva instancia del servicio de práctica
func NewPracticeService(questions *QuestionService, sessions *SessionService, source SourceFunc, logger zerolog.Logger) *PracticeService {
	return &PracticeService{
		questions: questions,
		sessions:  sessions,
		source:    orDefault(source),
		log:       logger,
	}
}

func practiceView(id string, s *practice.Session) models.PracticeView {
	view := models.PracticeView{
		SessionID:      id,
		Number:         s.Number(),
		WorkingSetSize: s.WorkingSetSize(),
		Finished:       s.Finished(),
	}
	if q := s.Current(); q != nil {
		current := *q
		view.Question = &current
	}
	return view
}

// Start empieza una práctica con los temas dados. Sin temas se usan los elegidos
// para la práctica y, si tampoco hay, todos.
func (p *PracticeService) Start(ctx context.Context, topics []string) (models.PracticeView, error) {
	all := p.questions.AllTopics(ctx)
	if len(topics) == 0 {
		topics = p.questions.GameTopics(ctx, models.GamePractice)
	}
	if len(topics) == 0 {
		topics = all.Topics()
	}

	s := practice.NewSession(p.source())
	if _, err := s.Start(all, topics); err != nil {
		return models.PracticeView{}, fmt.Errorf("error iniciando práctica: %w", err)
	}

	id := p.sessions.Create(models.GamePractice, s)
	p.log.Info().Str("session", id).Strs("topics", topics).Int("questions", s.WorkingSetSize()).Msg("🎯 Práctica iniciada")
	return practiceView(id, s), nil
}

// Next registra el tiempo de la pregunta actual y pasa a otra
func (p *PracticeService) Next(id string, elapsed float64) (models.PracticeView, error) {
	var view models.PracticeView
	err := withGame(p.sessions, id, models.GamePractice, func(s *practice.Session) error {
		if _, err := s.Next(seconds(elapsed)); err != nil {
			return err
		}
		view = practiceView(id, s)
		return nil
	})
	return view, err
}

// Finish cierra la práctica y devuelve el resumen. La sesión se descarta.
func (p *PracticeService) Finish(id string, elapsed float64) (models.PracticeView, error) {
	var view models.PracticeView
	err := withGame(p.sessions, id, models.GamePractice, func(s *practice.Session) error {
		summary, err := s.Finish(seconds(elapsed))
		if err != nil {
			return err
		}
		view = practiceView(id, s)
		view.Answered = summary.Answered
		view.TotalTime = int(summary.TotalTime.Seconds())
		return nil
	})
	if err != nil {
		return view, err
	}

	p.sessions.Remove(id)
	p.log.Info().Str("session", id).Int("answered", len(view.Answered)).Int("seconds", view.TotalTime).Msg("🏁 Práctica terminada")
	return view, nil
}
