package practice

import (
	"errors"
	"time"

	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/sampler"
)

var (
	ErrNotStarted = errors.New("la práctica no ha comenzado")
	ErrFinished   = errors.New("la práctica ya terminó")
)

// Session una práctica: conjunto de trabajo más el registro de preguntas respondidas
type Session struct {
	pool     *Pool
	current  *models.Question
	answered []models.AnsweredQuestion
	total    time.Duration
	finished bool
}

// Summary resultado de una práctica terminada
type Summary struct {
	Answered  []models.AnsweredQuestion
	TotalTime time.Duration
}

// NewSession crea una práctica sin empezar
func NewSession(src sampler.Source) *Session {
	return &Session{pool: NewPool(src)}
}

// Start arma el conjunto de trabajo a partir de los temas elegidos y saca la primera pregunta
func (s *Session) Start(all models.QuestionsByTopic, topics []string) (models.Question, error) {
	s.pool.BuildWorkingSet(all, topics)
	s.answered = nil
	s.total = 0
	s.finished = false
	s.current = nil

	q, err := s.pool.Next()
	if err != nil {
		return models.Question{}, err
	}
	s.current = &q
	return q, nil
}

// Next registra la pregunta actual con el tiempo empleado y saca otra
func (s *Session) Next(elapsed time.Duration) (models.Question, error) {
	if s.finished {
		return models.Question{}, ErrFinished
	}
	if s.current == nil {
		return models.Question{}, ErrNotStarted
	}

	s.record(elapsed)

	q, err := s.pool.Next()
	if err != nil {
		return models.Question{}, err
	}
	s.current = &q
	return q, nil
}

// Finish registra la pregunta en curso y cierra la práctica
func (s *Session) Finish(elapsed time.Duration) (Summary, error) {
	if s.finished {
		return Summary{}, ErrFinished
	}
	if s.current == nil {
		return Summary{}, ErrNotStarted
	}

	s.record(elapsed)
	s.finished = true
	s.current = nil

	answered := make([]models.AnsweredQuestion, len(s.answered))
	copy(answered, s.answered)
	return Summary{Answered: answered, TotalTime: s.total}, nil
}

// Current pregunta en curso, nil si no hay
func (s *Session) Current() *models.Question {
	return s.current
}

// Number número de la pregunta en curso, empezando en 1
func (s *Session) Number() int {
	return len(s.answered) + 1
}

// WorkingSetSize tamaño del conjunto de trabajo
func (s *Session) WorkingSetSize() int {
	return s.pool.Len()
}

// Finished indica si la práctica terminó
func (s *Session) Finished() bool {
	return s.finished
}

func (s *Session) record(elapsed time.Duration) {
	if elapsed < 0 {
		elapsed = 0
	}
	s.total += elapsed
	s.answered = append(s.answered, models.AnsweredQuestion{
		Number:   len(s.answered) + 1,
		Category: s.current.Category,
		Question: s.current.Question,
		Time:     int(elapsed / time.Second),
	})
}
