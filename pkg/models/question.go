package models

import (
	"sort"
	"strings"
)

// Question pregunta de práctica tal como sale de una hoja de cálculo
type Question struct {
	Category     string `json:"category"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	Explanation  string `json:"explanation,omitempty"`
	Difficulty   int    `json:"difficulty,omitempty"` // 1-4, 0 si no viene en la hoja
	WrongAnswer1 string `json:"wrongAnswer1,omitempty"`
	WrongAnswer2 string `json:"wrongAnswer2,omitempty"`
	WrongAnswer3 string `json:"wrongAnswer3,omitempty"`
}

// WrongAnswers devuelve las respuestas incorrectas escritas por el autor, sin vacías
func (q Question) WrongAnswers() []string {
	var wrong []string
	for _, w := range []string{q.WrongAnswer1, q.WrongAnswer2, q.WrongAnswer3} {
		if w = strings.TrimSpace(w); w != "" {
			wrong = append(wrong, w)
		}
	}
	return wrong
}

// QuestionsByTopic preguntas agrupadas por tema (nombre de la hoja).
// El orden de cada lista es el orden de las filas en la hoja.
type QuestionsByTopic map[string][]Question

// Topics devuelve los nombres de los temas ordenados alfabéticamente
func (t QuestionsByTopic) Topics() []string {
	topics := make([]string, 0, len(t))
	for name := range t {
		topics = append(topics, name)
	}
	sort.Strings(topics)
	return topics
}

// Count número total de preguntas en todos los temas
func (t QuestionsByTopic) Count() int {
	total := 0
	for _, questions := range t {
		total += len(questions)
	}
	return total
}

// Difficulty nivel de dificultad de una pregunta del millonario
type Difficulty int

const (
	DifficultyEasy     Difficulty = 1
	DifficultyMedium   Difficulty = 2
	DifficultyHard     Difficulty = 3
	DifficultyVeryHard Difficulty = 4
)

// Valid indica si la dificultad está en el rango 1-4
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyVeryHard
}

// MillionaireAnswer una de las cuatro respuestas de una pregunta
type MillionaireAnswer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// MillionaireQuestion pregunta de opción múltiple para la escalera del millonario
type MillionaireQuestion struct {
	ID          int                  `json:"id"`
	Text        string               `json:"text"`
	Answers     [4]MillionaireAnswer `json:"answers"`
	Difficulty  Difficulty           `json:"difficulty"`
	Explanation string               `json:"explanation,omitempty"`
	Topic       string               `json:"topic,omitempty"`
}

// CorrectIndex índice de la respuesta correcta, -1 si no hay ninguna
func (q MillionaireQuestion) CorrectIndex() int {
	for i, a := range q.Answers {
		if a.IsCorrect {
			return i
		}
	}
	return -1
}

// SheetStat cuántas preguntas se leyeron de cada hoja
type SheetStat struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}
