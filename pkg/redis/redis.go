package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/GermanMalykh/quaqa/pkg/models"
)

const (
	keyPrefix      = "quaqa:"
	topicsKey      = keyPrefix + "topics"
	millionaireKey = keyPrefix + "millionaire"
	historyKey     = keyPrefix + "history"
	gameTopicsKey  = keyPrefix + "game_topics:"

	// HistoryLimit partidas del millonario que se conservan
	HistoryLimit = 3
)

// RedisClient estructura para manejar conexiones con Redis
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisClient crea una nueva instancia del cliente Redis y verifica la conexión.
// ttl es la expiración de las preguntas cargadas; el historial no expira.
func NewRedisClient(ctx context.Context, addr, password string, db int, ttl time.Duration, logger zerolog.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("error conectando a Redis en %s: %w", addr, err)
	}

	logger.Info().Str("addr", addr).Msg("✅ Conexión exitosa a Redis")

	return &RedisClient{
		client: rdb,
		ttl:    ttl,
		log:    logger,
	}, nil
}

func (r *RedisClient) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error serializando %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("error guardando %s: %w", key, err)
	}
	return nil
}

// getJSON devuelve found=false si la clave no existe o expiró
func (r *RedisClient) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error leyendo %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("error parseando %s: %w", key, err)
	}
	return true, nil
}

// SaveTopics guarda las preguntas por tema
func (r *RedisClient) SaveTopics(ctx context.Context, topics models.QuestionsByTopic) error {
	if err := r.setJSON(ctx, topicsKey, topics, r.ttl); err != nil {
		return err
	}
	r.log.Info().Int("topics", len(topics)).Int("questions", topics.Count()).Msg("📚 Preguntas guardadas en Redis")
	return nil
}

// LoadTopics devuelve nil si no hay preguntas guardadas
func (r *RedisClient) LoadTopics(ctx context.Context) (models.QuestionsByTopic, error) {
	var topics models.QuestionsByTopic
	found, err := r.getJSON(ctx, topicsKey, &topics)
	if err != nil || !found {
		return nil, err
	}
	return topics, nil
}

// ClearTopics borra las preguntas por tema
func (r *RedisClient) ClearTopics(ctx context.Context) error {
	return r.client.Del(ctx, topicsKey).Err()
}

// SaveMillionaire guarda el banco de preguntas del millonario
func (r *RedisClient) SaveMillionaire(ctx context.Context, questions []models.MillionaireQuestion) error {
	if err := r.setJSON(ctx, millionaireKey, questions, r.ttl); err != nil {
		return err
	}
	r.log.Info().Int("questions", len(questions)).Msg("💰 Preguntas del millonario guardadas en Redis")
	return nil
}

// LoadMillionaire devuelve nil si no hay banco guardado
func (r *RedisClient) LoadMillionaire(ctx context.Context) ([]models.MillionaireQuestion, error) {
	var questions []models.MillionaireQuestion
	found, err := r.getJSON(ctx, millionaireKey, &questions)
	if err != nil || !found {
		return nil, err
	}
	return questions, nil
}

// ClearMillionaire borra el banco del millonario
func (r *RedisClient) ClearMillionaire(ctx context.Context) error {
	return r.client.Del(ctx, millionaireKey).Err()
}

// PushHistory agrega una partida al frente del historial y recorta a HistoryLimit
func (r *RedisClient) PushHistory(ctx context.Context, ids []int) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("error serializando historial: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, historyKey, data)
		pipe.LTrim(ctx, historyKey, 0, HistoryLimit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error guardando historial: %w", err)
	}
	return nil
}

// LoadHistory partidas guardadas, más reciente primero. Las entradas corruptas se descartan.
func (r *RedisClient) LoadHistory(ctx context.Context) ([][]int, error) {
	raw, err := r.client.LRange(ctx, historyKey, 0, HistoryLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("error leyendo historial: %w", err)
	}

	entries := make([][]int, 0, len(raw))
	for i, item := range raw {
		var ids []int
		if err := json.Unmarshal([]byte(item), &ids); err != nil {
			r.log.Warn().Err(err).Int("entry", i).Msg("⚠️ Entrada de historial inválida")
			continue
		}
		entries = append(entries, ids)
	}
	return entries, nil
}

// ClearHistory borra el historial de partidas
func (r *RedisClient) ClearHistory(ctx context.Context) error {
	return r.client.Del(ctx, historyKey).Err()
}

// SaveGameTopics guarda los temas elegidos para un juego; vacío significa todos
func (r *RedisClient) SaveGameTopics(ctx context.Context, game models.GameID, topics []string) error {
	if topics == nil {
		topics = []string{}
	}
	return r.setJSON(ctx, gameTopicsKey+string(game), topics, r.ttl)
}

// LoadGameTopics temas elegidos para un juego
func (r *RedisClient) LoadGameTopics(ctx context.Context, game models.GameID) ([]string, error) {
	topics := []string{}
	if _, err := r.getJSON(ctx, gameTopicsKey+string(game), &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// ClearGameTopics borra la configuración de temas de todos los juegos
func (r *RedisClient) ClearGameTopics(ctx context.Context) error {
	keys := make([]string, 0, len(models.GameIDs))
	for _, game := range models.GameIDs {
		keys = append(keys, gameTopicsKey+string(game))
	}
	return r.client.Del(ctx, keys...).Err()
}

// QuestionCount cuántas preguntas hay guardadas por tema
func (r *RedisClient) QuestionCount(ctx context.Context) (int, error) {
	topics, err := r.LoadTopics(ctx)
	if err != nil {
		return 0, err
	}
	return topics.Count(), nil
}

// TTL tiempo restante de las preguntas guardadas; 0 si no hay
func (r *RedisClient) TTL(ctx context.Context) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, topicsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("error leyendo TTL: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// Info datos de la conexión para el health check
func (r *RedisClient) Info() map[string]string {
	opts := r.client.Options()
	return map[string]string{
		"addr": opts.Addr,
		"db":   strconv.Itoa(opts.DB),
	}
}

// Close cierra la conexión con Redis
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// HealthCheck verifica que Redis esté funcionando
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}
