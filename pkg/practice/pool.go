package practice

import (
	"errors"

	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/sampler"
)

// QuestionsPerTopic máximo de preguntas que aporta cada tema al conjunto de trabajo
const QuestionsPerTopic = 10

// ErrNoQuestion el conjunto de trabajo está vacío
var ErrNoQuestion = errors.New("no hay preguntas disponibles")

// Pool conjunto de trabajo de una sesión. Entrega preguntas al azar sin repetir
// hasta agotarlas; después vuelve a empezar.
type Pool struct {
	src       sampler.Source
	questions []models.Question
	used      map[int]struct{}
}

// NewPool crea un pool vacío. src puede ser nil para usar la fuente global.
func NewPool(src sampler.Source) *Pool {
	if src == nil {
		src = sampler.Global()
	}
	return &Pool{
		src:  src,
		used: make(map[int]struct{}),
	}
}

// BuildWorkingSet toma hasta QuestionsPerTopic preguntas al azar de cada tema elegido,
// en el orden en que se eligieron los temas, y reinicia las preguntas usadas.
func (p *Pool) BuildWorkingSet(all models.QuestionsByTopic, topics []string) []models.Question {
	p.questions = []models.Question{}
	p.used = make(map[int]struct{})

	seen := make(map[string]bool, len(topics))
	for _, topic := range topics {
		if seen[topic] {
			continue
		}
		seen[topic] = true

		questions, ok := all[topic]
		if !ok {
			continue
		}
		p.questions = append(p.questions, sampler.Sample(p.src, questions, QuestionsPerTopic)...)
	}

	return p.Questions()
}

// Questions copia del conjunto de trabajo
func (p *Pool) Questions() []models.Question {
	out := make([]models.Question, len(p.questions))
	copy(out, p.questions)
	return out
}

// Len tamaño del conjunto de trabajo
func (p *Pool) Len() int {
	return len(p.questions)
}

// Served cuántas preguntas distintas se entregaron desde el último reinicio
func (p *Pool) Served() int {
	return len(p.used)
}

// Exhausted indica si ya se entregaron todas las preguntas del conjunto
func (p *Pool) Exhausted() bool {
	return len(p.used) >= len(p.questions)
}

// NextIndex elige al azar una posición todavía no usada. Si ya se usaron todas,
// limpia el registro y vuelve a empezar.
func (p *Pool) NextIndex() (int, error) {
	if len(p.questions) == 0 {
		return -1, ErrNoQuestion
	}
	if p.Exhausted() {
		p.used = make(map[int]struct{})
	}

	available := make([]int, 0, len(p.questions)-len(p.used))
	for i := range p.questions {
		if _, ok := p.used[i]; !ok {
			available = append(available, i)
		}
	}

	idx, _ := sampler.Pick(p.src, available)
	p.used[idx] = struct{}{}
	return idx, nil
}

// Next devuelve la siguiente pregunta al azar
func (p *Pool) Next() (models.Question, error) {
	idx, err := p.NextIndex()
	if err != nil {
		return models.Question{}, err
	}
	return p.questions[idx], nil
}
