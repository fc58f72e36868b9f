// Package converter convierte preguntas de práctica (pregunta/respuesta) en
// preguntas de opción múltiple para el millonario.
package converter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/sampler"
)

// WrongAnswerCount respuestas incorrectas por pregunta
const WrongAnswerCount = 3

// placeholderFormat relleno cuando no hay suficientes respuestas de otras preguntas
const placeholderFormat = "Option %d"

// DetectDifficulty estima la dificultad por la longitud del texto y la posición dentro del tema.
// Las dos señales empujan hacia "más fácil": las primeras preguntas de un tema suelen ser sencillas.
func DetectDifficulty(q models.Question, indexInTopic, totalInTopic int) models.Difficulty {
	length := utf8.RuneCountInString(q.Question) + utf8.RuneCountInString(q.Answer)

	position := 0.0
	if totalInTopic > 0 {
		position = float64(indexInTopic) / float64(totalInTopic)
	}

	switch {
	case length < 80 || position < 0.25:
		return models.DifficultyEasy
	case length < 150 || position < 0.5:
		return models.DifficultyMedium
	case length < 250 || position < 0.75:
		return models.DifficultyHard
	default:
		return models.DifficultyVeryHard
	}
}

// Converter arma preguntas del millonario. No es seguro para uso concurrente
// si la fuente aleatoria no lo es.
type Converter struct {
	src sampler.Source
}

// New crea un conversor. src puede ser nil para usar la fuente global.
func New(src sampler.Source) *Converter {
	if src == nil {
		src = sampler.Global()
	}
	return &Converter{src: src}
}

// GenerateWrongAnswers toma count respuestas de otras preguntas, distintas de la correcta y
// entre sí sin importar mayúsculas. Si no alcanzan, completa con "Option N".
func (c *Converter) GenerateWrongAnswers(correct string, all []models.Question, count int) []string {
	if count <= 0 {
		return []string{}
	}

	used := map[string]bool{strings.ToLower(strings.TrimSpace(correct)): true}
	var candidates []string
	for _, q := range all {
		answer := strings.TrimSpace(q.Answer)
		key := strings.ToLower(answer)
		if answer == "" || used[key] {
			continue
		}
		used[key] = true
		candidates = append(candidates, answer)
	}

	wrong := sampler.Sample(c.src, candidates, count)
	for len(wrong) < count {
		wrong = append(wrong, fmt.Sprintf(placeholderFormat, len(wrong)+1))
	}
	return wrong
}

// ConvertQuestion convierte una pregunta. Usa las respuestas incorrectas de la hoja si hay
// al menos tres y la dificultad de la hoja si es válida.
func (c *Converter) ConvertQuestion(id int, q models.Question, all []models.Question, indexInTopic, totalInTopic int) models.MillionaireQuestion {
	correct := strings.TrimSpace(q.Answer)

	wrong := q.WrongAnswers()
	if len(wrong) >= WrongAnswerCount {
		wrong = wrong[:WrongAnswerCount]
	} else {
		wrong = c.GenerateWrongAnswers(correct, all, WrongAnswerCount)
	}

	answers := []models.MillionaireAnswer{{Text: correct, IsCorrect: true}}
	for _, text := range wrong {
		answers = append(answers, models.MillionaireAnswer{Text: text})
	}
	sampler.Shuffle(c.src, answers)

	difficulty := models.Difficulty(q.Difficulty)
	if !difficulty.Valid() {
		difficulty = DetectDifficulty(q, indexInTopic, totalInTopic)
	}

	mq := models.MillionaireQuestion{
		ID:          id,
		Text:        q.Question,
		Difficulty:  difficulty,
		Explanation: q.Explanation,
		Topic:       q.Category,
	}
	copy(mq.Answers[:], answers)
	return mq
}

// ConvertQuestions convierte los temas elegidos (todos si topics está vacío).
// Los IDs se numeran desde 1 sobre el banco completo, en orden de tema y de fila,
// así que una pregunta conserva su ID con cualquier filtro de temas.
func (c *Converter) ConvertQuestions(byTopic models.QuestionsByTopic, topics []string) []models.MillionaireQuestion {
	firstID := make(map[string]int, len(byTopic))
	next := 1
	for _, topic := range byTopic.Topics() {
		firstID[topic] = next
		next += len(byTopic[topic])
	}

	if len(topics) == 0 {
		topics = byTopic.Topics()
	}

	var pool []models.Question
	var ordered []string
	seen := make(map[string]bool)
	for _, topic := range topics {
		questions, ok := byTopic[topic]
		if !ok || seen[topic] {
			continue
		}
		seen[topic] = true
		ordered = append(ordered, topic)
		pool = append(pool, questions...)
	}

	converted := make([]models.MillionaireQuestion, 0, len(pool))
	for _, topic := range ordered {
		questions := byTopic[topic]
		for i, q := range questions {
			converted = append(converted, c.ConvertQuestion(firstID[topic]+i, q, pool, i, len(questions)))
		}
	}
	return converted
}
