// Package history guarda qué preguntas salieron en las últimas partidas del millonario
// para no repetirlas enseguida.
package history

import (
	"sync"
)

// MaxGames partidas que se recuerdan; la más vieja se descarta primero
const MaxGames = 3

// Ledger historial acotado de IDs de preguntas por partida. Seguro para uso concurrente.
type Ledger struct {
	mu      sync.RWMutex
	entries [][]int
}

// NewLedger crea un historial a partir de lo persistido (más reciente primero).
// Si vienen más de MaxGames entradas se conservan las más recientes.
func NewLedger(entries [][]int) *Ledger {
	l := &Ledger{}
	for i := len(entries) - 1; i >= 0; i-- {
		l.push(entries[i])
	}
	return l
}

// Record agrega la partida con los IDs dados
func (l *Ledger) Record(ids []int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.push(ids)
}

func (l *Ledger) push(ids []int) {
	entry := make([]int, len(ids))
	copy(entry, ids)

	l.entries = append([][]int{entry}, l.entries...)
	if len(l.entries) > MaxGames {
		l.entries = l.entries[:MaxGames]
	}
}

// UsedIDs unión de todos los IDs del historial
func (l *Ledger) UsedIDs() map[int]struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()

	used := make(map[int]struct{})
	for _, entry := range l.entries {
		for _, id := range entry {
			used[id] = struct{}{}
		}
	}
	return used
}

// Exclusions IDs a dejar fuera de la próxima partida. Con el historial lleno el
// ciclo vuelve a empezar y no se excluye nada.
func (l *Ledger) Exclusions() map[int]struct{} {
	if l.Len() >= MaxGames {
		return map[int]struct{}{}
	}
	return l.UsedIDs()
}

// Entries copia del historial, más reciente primero
func (l *Ledger) Entries() [][]int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([][]int, len(l.entries))
	for i, entry := range l.entries {
		out[i] = append([]int(nil), entry...)
	}
	return out
}

// Len partidas registradas
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear borra el historial
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
