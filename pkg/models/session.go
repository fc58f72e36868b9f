package models

// AnsweredQuestion registro de una pregunta ya mostrada en la práctica
type AnsweredQuestion struct {
	Number   int    `json:"number"`
	Category string `json:"category"`
	Question string `json:"question"`
	Time     int    `json:"time"` // en segundos
}

// PracticeView lo que ve el jugador durante la práctica
type PracticeView struct {
	SessionID      string             `json:"sessionId"`
	Number         int                `json:"number"`
	Question       *Question          `json:"question,omitempty"`
	WorkingSetSize int                `json:"workingSetSize"`
	Answered       []AnsweredQuestion `json:"answered,omitempty"`
	Finished       bool               `json:"finished"`
	TotalTime      int                `json:"totalTime,omitempty"`
}

// LadderView vista de la pregunta actual de la escalera.
// Las respuestas van en orden de presentación.
type LadderView struct {
	SessionID      string      `json:"sessionId"`
	State          LadderState `json:"state"`
	Rung           int         `json:"rung"`
	Prize          int         `json:"prize"`
	Score          int         `json:"score"`
	QuestionID     int         `json:"questionId,omitempty"`
	Question       string      `json:"question,omitempty"`
	Answers        []string    `json:"answers,omitempty"`
	Difficulty     Difficulty  `json:"difficulty,omitempty"`
	Topic          string      `json:"topic,omitempty"`
	Explanation    string      `json:"explanation,omitempty"`
	SelectedAnswer *int        `json:"selectedAnswer"`
	CorrectAnswer  *int        `json:"correctAnswer,omitempty"`
	Lifelines      []Lifeline  `json:"lifelines"`
	Fallback       bool        `json:"fallback,omitempty"`
	TotalQuestions int         `json:"totalQuestions"`
	Prizes         []int       `json:"prizes"` // premio por peldaño, índice 0 = ninguno
}

// LifelineResult resultado de un comodín, con índices de presentación
type LifelineResult struct {
	ID          LifelineID `json:"id"`
	Removed     []int      `json:"removed,omitempty"`
	Suggestion  *int       `json:"suggestion,omitempty"`
	Confidence  int        `json:"confidence,omitempty"`
	Percentages []int      `json:"percentages,omitempty"`
}

// BlastTarget un asteroide con una respuesta
type BlastTarget struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Destroyed bool   `json:"destroyed"`
}

// BlastView estado visible del minijuego de asteroides
type BlastView struct {
	SessionID      string        `json:"sessionId"`
	Question       string        `json:"question,omitempty"`
	Category       string        `json:"category,omitempty"`
	Targets        []BlastTarget `json:"targets,omitempty"`
	TimeLeft       float64       `json:"timeLeft"`
	Score          int           `json:"score"`
	CorrectAnswers int           `json:"correctAnswers"`
	WrongAnswers   int           `json:"wrongAnswers"`
	Over           bool          `json:"over"`
}

// HistoryResponse historial de partidas del millonario
type HistoryResponse struct {
	Games    [][]int `json:"games"`
	Excluded []int   `json:"excluded"`
}
