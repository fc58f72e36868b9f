package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/GermanMalykh/quaqa/pkg/models"
)

var (
	ErrSessionNotFound = errors.New("sesión no encontrada")
	ErrWrongGame       = errors.New("la sesión es de otro juego")
	ErrUnknownGame     = errors.New("juego desconocido")
)

type session struct {
	mu         sync.Mutex
	kind       models.GameID
	game       any
	lastActive time.Time
}

// SessionService registro en memoria de las partidas en curso. Cada partida tiene su
// propio lock; las inactivas por más de idleTimeout se descartan.
type SessionService struct {
	mu          sync.Mutex
	sessions    map[string]*session
	idleTimeout time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

// NewSessionService crea una nueva instancia del servicio de sesiones
func NewSessionService(idleTimeout time.Duration, logger zerolog.Logger) *SessionService {
	return &SessionService{
		sessions:    make(map[string]*session),
		idleTimeout: idleTimeout,
		log:         logger,
		now:         time.Now,
	}
}

// Create registra una partida nueva y devuelve su ID
func (s *SessionService) Create(kind models.GameID, game any) string {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = &session{kind: kind, game: game, lastActive: s.now()}
	total := len(s.sessions)
	s.mu.Unlock()

	s.log.Debug().Str("session", id).Str("game", string(kind)).Int("total", total).Msg("✅ Nueva sesión creada")
	return id
}

func (s *SessionService) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// withGame ejecuta fn con la partida id bloqueada y actualiza su actividad
func withGame[T any](s *SessionService, id string, kind models.GameID, fn func(T) error) error {
	sess, ok := s.get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	game, ok := sess.game.(T)
	if !ok || sess.kind != kind {
		return fmt.Errorf("%w: %s es %s", ErrWrongGame, id, sess.kind)
	}
	sess.lastActive = s.now()
	return fn(game)
}

// Kind juego de la sesión
func (s *SessionService) Kind(id string) (models.GameID, bool) {
	sess, ok := s.get(id)
	if !ok {
		return "", false
	}
	return sess.kind, true
}

// Remove descarta una sesión
func (s *SessionService) Remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Counts sesiones activas por juego
func (s *SessionService) Counts() map[models.GameID]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[models.GameID]int, len(models.GameIDs))
	for _, game := range models.GameIDs {
		counts[game] = 0
	}
	for _, sess := range s.sessions {
		counts[sess.kind]++
	}
	return counts
}

// Run descarta periódicamente las sesiones inactivas hasta que ctx se cancele
func (s *SessionService) Run(ctx context.Context) {
	if s.idleTimeout <= 0 {
		return
	}

	ticker := time.NewTicker(s.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.reap(); n > 0 {
				s.log.Info().Int("reaped", n).Msg("🧹 Sesiones inactivas eliminadas")
			}
		}
	}
}

func (s *SessionService) reap() int {
	cutoff := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		last := sess.lastActive
		sess.mu.Unlock()

		if last.Before(cutoff) {
			delete(s.sessions, id)
			reaped++
		}
	}
	return reaped
}
