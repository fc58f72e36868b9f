package services

import (
	"time"

	"github.com/GermanMalykh/quaqa/pkg/sampler"
)

// SourceFunc entrega la fuente de azar de cada partida nueva
type SourceFunc func() sampler.Source

func defaultSource() sampler.Source { return sampler.Global() }

func orDefault(fn SourceFunc) SourceFunc {
	if fn == nil {
		return defaultSource
	}
	return fn
}

func seconds(elapsed float64) time.Duration {
	if elapsed <= 0 {
		return 0
	}
	return time.Duration(elapsed * float64(time.Second))
}
