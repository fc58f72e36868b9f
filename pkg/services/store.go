package services

import (
	"context"
	"time"

	"github.com/GermanMalykh/quaqa/pkg/models"
)

// QuestionStore persistencia de las preguntas cargadas. La implementa redis.RedisClient.
type QuestionStore interface {
	SaveTopics(ctx context.Context, topics models.QuestionsByTopic) error
	LoadTopics(ctx context.Context) (models.QuestionsByTopic, error)
	ClearTopics(ctx context.Context) error
	SaveMillionaire(ctx context.Context, questions []models.MillionaireQuestion) error
	LoadMillionaire(ctx context.Context) ([]models.MillionaireQuestion, error)
	ClearMillionaire(ctx context.Context) error
	SaveGameTopics(ctx context.Context, game models.GameID, topics []string) error
	LoadGameTopics(ctx context.Context, game models.GameID) ([]string, error)
	ClearGameTopics(ctx context.Context) error
	QuestionCount(ctx context.Context) (int, error)
	TTL(ctx context.Context) (time.Duration, error)
	Info() map[string]string
	HealthCheck(ctx context.Context) error
}

// HistoryStore persistencia del historial de partidas del millonario
type HistoryStore interface {
	PushHistory(ctx context.Context, ids []int) error
	LoadHistory(ctx context.Context) ([][]int, error)
	ClearHistory(ctx context.Context) error
}

// Publisher difunde eventos a los clientes conectados. Lo implementa websocket.Hub.
type Publisher interface {
	BroadcastMessage(msgType string, data interface{})
}

// Eventos que se difunden por websocket
const (
	EventLadderAnswer   = "ladderAnswer"
	EventLadderLifeline = "ladderLifeline"
	EventLadderFinished = "ladderFinished"
	EventBlastOver      = "blastOver"
)

type nopPublisher struct{}

func (nopPublisher) BroadcastMessage(string, interface{}) {}
