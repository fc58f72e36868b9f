package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/redis"
	"github.com/GermanMalykh/quaqa/pkg/sampler"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) BroadcastMessage(msgType string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, msgType)
}

func (r *recorder) count(msgType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == msgType {
			n++
		}
	}
	return n
}

type env struct {
	store     *redis.RedisClient
	questions *QuestionService
	history   *HistoryService
	sessions  *SessionService
	practice  *PracticeService
	ladder    *LadderService
	blast     *BlastService
	events    *recorder
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	logger := zerolog.Nop()

	mr := miniredis.RunT(t)
	store, err := redis.NewRedisClient(ctx, mr.Addr(), "", 0, time.Hour, logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	var seed uint64
	source := func() sampler.Source {
		seed++
		return rand.New(rand.NewPCG(seed, 42))
	}

	e := &env{store: store, events: &recorder{}}
	e.questions = NewQuestionService(store, rand.New(rand.NewPCG(1, 1)), logger)
	e.history = NewHistoryService(ctx, store, logger)
	e.sessions = NewSessionService(time.Minute, logger)
	e.practice = NewPracticeService(e.questions, e.sessions, source, logger)
	e.ladder = NewLadderService(e.questions, e.history, e.sessions, e.events, source, logger)
	e.blast = NewBlastService(e.questions, e.sessions, e.events, source, logger)
	return e
}

// fixture tres temas de diez preguntas, cada tema con una dificultad
func fixture() models.QuestionsByTopic {
	all := models.QuestionsByTopic{}
	for d, topic := range []string{"Basics", "Concurrency", "Runtime"} {
		for i := 0; i < 10; i++ {
			all[topic] = append(all[topic], models.Question{
				Category:    topic,
				Question:    fmt.Sprintf("%s question %d", topic, i),
				Answer:      fmt.Sprintf("%s answer %d", topic, i),
				Explanation: "because",
				Difficulty:  d + 1,
			})
		}
	}
	return all
}

func (e *env) seed(t *testing.T, all models.QuestionsByTopic) {
	t.Helper()
	if err := e.store.SaveTopics(context.Background(), all); err != nil {
		t.Fatal(err)
	}
}
