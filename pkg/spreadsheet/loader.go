// Package spreadsheet lee los libros xlsx con preguntas. En el formato de temas cada hoja es
// un tema; en el formato del millonario la primera hoja trae las cuatro respuestas.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/GermanMalykh/quaqa/pkg/models"
)

var (
	ErrNoSheets    = errors.New("el archivo no tiene hojas")
	ErrNoQuestions = errors.New("no se encontró ninguna pregunta")
	ErrFormat      = errors.New("formato de hoja inválido")
)

// Result preguntas por tema y cuántas salieron de cada hoja
type Result struct {
	Topics models.QuestionsByTopic
	Stats  []models.SheetStat
}

type columns struct {
	question, answer, explanation int
	difficulty                    int
	wrong                         [3]int
}

func matchAny(header string, keys ...string) bool {
	for _, k := range keys {
		if strings.Contains(header, k) {
			return true
		}
	}
	return false
}

func isWrongHeader(h string) bool {
	return matchAny(h, "неправильный", "wrong")
}

// detectColumns busca los encabezados sin distinguir mayúsculas; -1 si falta
func detectColumns(header []string) columns {
	c := columns{question: -1, answer: -1, explanation: -1, difficulty: -1, wrong: [3]int{-1, -1, -1}}
	ordinals := [3][]string{{"1", "первый"}, {"2", "второй"}, {"3", "третий"}}

	for i, raw := range header {
		h := strings.ToLower(strings.TrimSpace(raw))
		if h == "" {
			continue
		}

		if matchAny(h, "номер", "number", "№") {
			continue
		}
		if isWrongHeader(h) {
			for n, keys := range ordinals {
				if c.wrong[n] == -1 && matchAny(h, keys...) {
					c.wrong[n] = i
					break
				}
			}
			continue
		}

		switch {
		case c.question == -1 && matchAny(h, "вопрос", "question"):
			c.question = i
		case c.answer == -1 && matchAny(h, "ответ", "answer"):
			c.answer = i
		case c.explanation == -1 && matchAny(h, "объяснение", "explanation", "под капотом"):
			c.explanation = i
		case c.difficulty == -1 && matchAny(h, "сложность", "difficulty", "уровень"):
			c.difficulty = i
		}
	}
	return c
}

func (c columns) missing() []string {
	var missing []string
	if c.question == -1 {
		missing = append(missing, "Question")
	}
	if c.answer == -1 {
		missing = append(missing, "Answer")
	}
	if c.explanation == -1 {
		missing = append(missing, "Explanation")
	}
	return missing
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseSheet convierte las filas de una hoja; missing lista las columnas obligatorias que faltan
func parseSheet(name string, rows [][]string) (questions []models.Question, missing []string) {
	if len(rows) == 0 {
		return nil, columns{question: -1, answer: -1, explanation: -1}.missing()
	}

	c := detectColumns(rows[0])
	if missing := c.missing(); len(missing) > 0 {
		return nil, missing
	}

	for _, row := range rows[1:] {
		q := models.Question{
			Category:    name,
			Question:    cell(row, c.question),
			Answer:      cell(row, c.answer),
			Explanation: cell(row, c.explanation),
		}
		if q.Question == "" && q.Answer == "" {
			continue
		}

		if d, err := strconv.Atoi(cell(row, c.difficulty)); err == nil && models.Difficulty(d).Valid() {
			q.Difficulty = d
		}
		q.WrongAnswer1 = cell(row, c.wrong[0])
		q.WrongAnswer2 = cell(row, c.wrong[1])
		q.WrongAnswer3 = cell(row, c.wrong[2])

		questions = append(questions, q)
	}
	return questions, nil
}

// LoadTopics lee un libro en formato de temas
func LoadTopics(r io.Reader) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("error abriendo xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, ErrNoSheets
	}

	result := Result{Topics: models.QuestionsByTopic{}}
	var formatErr error

	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return Result{}, fmt.Errorf("error leyendo hoja %q: %w", name, err)
		}

		questions, missing := parseSheet(name, rows)
		if len(missing) > 0 {
			if formatErr == nil {
				formatErr = fmt.Errorf("%w: hoja %q sin columnas obligatorias: %s", ErrFormat, name, strings.Join(missing, ", "))
			}
			continue
		}
		if len(questions) == 0 {
			continue
		}

		result.Topics[name] = questions
		result.Stats = append(result.Stats, models.SheetStat{Name: name, Total: len(questions)})
	}

	if len(result.Topics) == 0 {
		if formatErr != nil {
			return Result{}, formatErr
		}
		return Result{}, ErrNoQuestions
	}
	return result, nil
}

var levels = map[string]models.Difficulty{
	"easy":   models.DifficultyEasy,
	"medium": models.DifficultyMedium,
	"hard":   models.DifficultyHard,
}

// LoadMillionaire lee la primera hoja en formato id, question, answer_a..answer_d,
// correct_answer, explanation, topic, level. Las filas incompletas se saltean.
func LoadMillionaire(r io.Reader) ([]models.MillionaireQuestion, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error abriendo xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error leyendo hoja %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrNoQuestions
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "вопрос" {
			key = "question"
		}
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	get := func(row []string, name string) string {
		i, ok := index[name]
		if !ok {
			return ""
		}
		return cell(row, i)
	}

	type missingID struct{ index, ordinal int }
	var (
		questions []models.MillionaireQuestion
		missing   []missingID
		taken     = make(map[int]bool)
	)
	for n, row := range rows[1:] {
		text := get(row, "question")
		answers := [4]string{get(row, "answer_a"), get(row, "answer_b"), get(row, "answer_c"), get(row, "answer_d")}
		correct := strings.ToUpper(get(row, "correct_answer"))
		if text == "" || correct == "" || answers[0] == "" || answers[1] == "" || answers[2] == "" || answers[3] == "" {
			continue
		}

		correctIndex := 0
		if len(correct) == 1 && correct[0] >= 'A' && correct[0] <= 'D' {
			correctIndex = int(correct[0] - 'A')
		}

		difficulty, ok := levels[strings.ToLower(get(row, "level"))]
		if !ok {
			difficulty = models.DifficultyMedium
		}

		id, err := strconv.Atoi(get(row, "id"))
		if err != nil || id <= 0 || taken[id] {
			missing = append(missing, missingID{index: len(questions), ordinal: n + 1})
		} else {
			taken[id] = true
		}

		q := models.MillionaireQuestion{
			ID:          id,
			Text:        text,
			Difficulty:  difficulty,
			Explanation: get(row, "explanation"),
			Topic:       get(row, "topic"),
		}
		for i, a := range answers {
			q.Answers[i] = models.MillionaireAnswer{Text: a, IsCorrect: i == correctIndex}
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	// sin id o con id repetido: el número de fila si está libre, si no el siguiente al mayor
	next := 0
	for id := range taken {
		next = max(next, id)
	}
	for _, m := range missing {
		next = max(next, m.ordinal)
	}
	for _, m := range missing {
		id := m.ordinal
		if taken[id] {
			next++
			id = next
		}
		taken[id] = true
		questions[m.index].ID = id
	}
	return questions, nil
}
