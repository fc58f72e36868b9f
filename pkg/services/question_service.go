package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/GermanMalykh/quaqa/pkg/converter"
	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/sampler"
	"github.com/GermanMalykh/quaqa/pkg/spreadsheet"
)

// QuestionService maneja la lógica de negocio para las preguntas
type QuestionService struct {
	store QuestionStore
	src   sampler.Source
	log   zerolog.Logger
}

// NewQuestionService crea una nueva instancia del servicio
func NewQuestionService(store QuestionStore, src sampler.Source, logger zerolog.Logger) *QuestionService {
	if src == nil {
		src = sampler.Global()
	}
	return &QuestionService{
		store: store,
		src:   src,
		log:   logger,
	}
}

// LoadQuestionsFromFile carga las preguntas desde un xlsx local
func (s *QuestionService) LoadQuestionsFromFile(ctx context.Context, path string) (models.TopicsResponse, error) {
	s.log.Info().Str("file", path).Msg("📂 Cargando preguntas")

	f, err := os.Open(path)
	if err != nil {
		return models.TopicsResponse{}, fmt.Errorf("error abriendo %s: %w", path, err)
	}
	defer f.Close()

	return s.ImportTopics(ctx, f)
}

// LoadQuestionsFromURL descarga y carga un xlsx remoto
func (s *QuestionService) LoadQuestionsFromURL(ctx context.Context, url string) (models.TopicsResponse, error) {
	s.log.Info().Str("url", url).Msg("🌐 Descargando preguntas")

	result, err := spreadsheet.FetchURL(url)
	if err != nil {
		return models.TopicsResponse{}, err
	}
	return s.saveTopics(ctx, result)
}

// ImportTopics lee un xlsx en formato de temas y reemplaza las preguntas guardadas
func (s *QuestionService) ImportTopics(ctx context.Context, r io.Reader) (models.TopicsResponse, error) {
	result, err := spreadsheet.LoadTopics(r)
	if err != nil {
		return models.TopicsResponse{}, err
	}
	return s.saveTopics(ctx, result)
}

func (s *QuestionService) saveTopics(ctx context.Context, result spreadsheet.Result) (models.TopicsResponse, error) {
	if err := s.store.SaveTopics(ctx, result.Topics); err != nil {
		return models.TopicsResponse{}, err
	}

	s.log.Info().Int("topics", len(result.Stats)).Int("questions", result.Topics.Count()).Msg("✅ Preguntas cargadas exitosamente")
	return models.TopicsResponse{Topics: result.Stats, Total: result.Topics.Count()}, nil
}

// ImportMillionaire lee un xlsx en formato del millonario y lo guarda como banco propio
func (s *QuestionService) ImportMillionaire(ctx context.Context, r io.Reader) (models.MillionaireQuestionsResponse, error) {
	questions, err := spreadsheet.LoadMillionaire(r)
	if err != nil {
		return models.MillionaireQuestionsResponse{}, err
	}
	if err := s.store.SaveMillionaire(ctx, questions); err != nil {
		return models.MillionaireQuestionsResponse{}, err
	}
	return models.MillionaireQuestionsResponse{Questions: questions, Count: len(questions)}, nil
}

// AllTopics preguntas guardadas; vacío si no hay o si Redis falla
func (s *QuestionService) AllTopics(ctx context.Context) models.QuestionsByTopic {
	topics, err := s.store.LoadTopics(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("⚠️ Error leyendo preguntas de Redis")
	}
	if topics == nil {
		return models.QuestionsByTopic{}
	}
	return topics
}

// Topics temas cargados con su cantidad de preguntas
func (s *QuestionService) Topics(ctx context.Context) models.TopicsResponse {
	all := s.AllTopics(ctx)
	resp := models.TopicsResponse{Topics: []models.SheetStat{}, Total: all.Count()}
	for _, name := range all.Topics() {
		resp.Topics = append(resp.Topics, models.SheetStat{Name: name, Total: len(all[name])})
	}
	return resp
}

// MillionaireQuestions banco para la escalera. Si no se cargó uno propio, se
// convierten las preguntas de los temas elegidos para el millonario (todos si no hay).
func (s *QuestionService) MillionaireQuestions(ctx context.Context) []models.MillionaireQuestion {
	questions, err := s.store.LoadMillionaire(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("⚠️ Error leyendo banco del millonario")
	}
	if len(questions) > 0 {
		return questions
	}

	topics := s.GameTopics(ctx, models.GameMillionaire)
	return converter.New(s.src).ConvertQuestions(s.AllTopics(ctx), topics)
}

// GameTopics temas elegidos para un juego; vacío significa todos
func (s *QuestionService) GameTopics(ctx context.Context, game models.GameID) []string {
	topics, err := s.store.LoadGameTopics(ctx, game)
	if err != nil {
		s.log.Warn().Err(err).Str("game", string(game)).Msg("⚠️ Error leyendo temas del juego")
		return []string{}
	}
	return topics
}

// SetGameTopics guarda los temas elegidos para un juego
func (s *QuestionService) SetGameTopics(ctx context.Context, game models.GameID, topics []string) error {
	if !game.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}
	return s.store.SaveGameTopics(ctx, game, topics)
}

// ClearAll borra preguntas, banco del millonario y temas por juego
func (s *QuestionService) ClearAll(ctx context.Context) error {
	for _, clearFn := range []func(context.Context) error{s.store.ClearTopics, s.store.ClearMillionaire, s.store.ClearGameTopics} {
		if err := clearFn(ctx); err != nil {
			return fmt.Errorf("error limpiando preguntas: %w", err)
		}
	}
	s.log.Info().Msg("🗑️ Preguntas eliminadas")
	return nil
}

// HealthCheck verifica que el servicio esté funcionando
func (s *QuestionService) HealthCheck(ctx context.Context) error {
	if err := s.store.HealthCheck(ctx); err != nil {
		return fmt.Errorf("error en health check de Redis: %w", err)
	}
	return nil
}

// Status estado de Redis y de las preguntas guardadas para /api/health
func (s *QuestionService) Status(ctx context.Context) (models.HealthStatus, error) {
	if err := s.HealthCheck(ctx); err != nil {
		return models.HealthStatus{}, err
	}

	status := models.HealthStatus{Status: "ok", Redis: s.store.Info()}

	count, err := s.store.QuestionCount(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("⚠️ Error contando preguntas")
	}
	status.Questions = count

	ttl, err := s.store.TTL(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("⚠️ Error leyendo caducidad de las preguntas")
	}
	status.ExpiresIn = int(ttl.Seconds())

	return status, nil
}
