package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/GermanMalykh/quaqa/pkg/history"
	"github.com/GermanMalykh/quaqa/pkg/models"
)

// HistoryService mantiene el historial de partidas del millonario en memoria y en Redis
type HistoryService struct {
	store  HistoryStore
	ledger *history.Ledger
	log    zerolog.Logger
}

// NewHistoryService carga el historial guardado. Si Redis falla se empieza con uno vacío.
func NewHistoryService(ctx context.Context, store HistoryStore, logger zerolog.Logger) *HistoryService {
	entries, err := store.LoadHistory(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ No se pudo leer el historial, se empieza vacío")
		entries = nil
	}

	return &HistoryService{
		store:  store,
		ledger: history.NewLedger(entries),
		log:    logger,
	}
}

// Exclusions IDs que la próxima partida debe evitar
func (h *HistoryService) Exclusions() map[int]struct{} {
	return h.ledger.Exclusions()
}

// Record registra una partida terminada. Un error de Redis solo se loguea.
func (h *HistoryService) Record(ctx context.Context, ids []int) {
	h.ledger.Record(ids)
	if err := h.store.PushHistory(ctx, ids); err != nil {
		h.log.Warn().Err(err).Msg("⚠️ No se pudo guardar el historial")
		return
	}
	h.log.Debug().Int("questions", len(ids)).Int("games", h.ledger.Len()).Msg("📝 Partida registrada en el historial")
}

// Clear borra el historial
func (h *HistoryService) Clear(ctx context.Context) error {
	h.ledger.Clear()
	if err := h.store.ClearHistory(ctx); err != nil {
		return fmt.Errorf("error limpiando historial: %w", err)
	}
	h.log.Info().Msg("🗑️ Historial de partidas limpiado")
	return nil
}

// Reset vacía el historial porque cambió el banco de preguntas y los IDs guardados
// ya no apuntan a las mismas preguntas. Un error de Redis solo se loguea.
func (h *HistoryService) Reset(ctx context.Context, reason string) {
	h.ledger.Clear()
	if err := h.store.ClearHistory(ctx); err != nil {
		h.log.Warn().Err(err).Msg("⚠️ No se pudo limpiar el historial")
		return
	}
	h.log.Info().Str("reason", reason).Msg("🗑️ Historial de partidas reiniciado")
}

// Response historial y exclusiones vigentes
func (h *HistoryService) Response() models.HistoryResponse {
	excluded := make([]int, 0)
	for id := range h.ledger.Exclusions() {
		excluded = append(excluded, id)
	}
	sort.Ints(excluded)

	return models.HistoryResponse{
		Games:    h.ledger.Entries(),
		Excluded: excluded,
	}
}
