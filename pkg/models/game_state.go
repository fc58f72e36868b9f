package models

// GameID identifica cada uno de los juegos que consumen preguntas
type GameID string

const (
	GamePractice    GameID = "practice"
	GameBlast       GameID = "blast"
	GameMillionaire GameID = "millionaire"
)

// GameIDs todos los juegos
var GameIDs = []GameID{GamePractice, GameBlast, GameMillionaire}

// Valid indica si el juego es conocido
func (g GameID) Valid() bool {
	switch g {
	case GamePractice, GameBlast, GameMillionaire:
		return true
	}
	return false
}

// LifelineID identificador de un comodín
type LifelineID string

const (
	LifelineFiftyFifty LifelineID = "50-50"
	LifelinePhone      LifelineID = "phone"
	LifelineAudience   LifelineID = "audience"
)

// Valid indica si id es uno de los tres comodines
func (id LifelineID) Valid() bool {
	switch id {
	case LifelineFiftyFifty, LifelinePhone, LifelineAudience:
		return true
	}
	return false
}

// Lifeline comodín de un solo uso
type Lifeline struct {
	ID   LifelineID `json:"id"`
	Name string     `json:"name"`
	Used bool       `json:"used"`
}

// LadderState estado de la partida del millonario
type LadderState string

const (
	LadderStart          LadderState = "start"
	LadderPlaying        LadderState = "playing"
	LadderAnswerSelected LadderState = "answer-selected"
	LadderWon            LadderState = "won"
	LadderLost           LadderState = "lost"
)

// Finished indica si la partida llegó a un estado terminal
func (s LadderState) Finished() bool {
	return s == LadderWon || s == LadderLost
}

// LadderProgress foto del progreso de una partida
type LadderProgress struct {
	CurrentQuestionIndex int         `json:"currentQuestionIndex"`
	Score                int         `json:"score"`
	Lifelines            []Lifeline  `json:"lifelines"`
	SelectedAnswer       *int        `json:"selectedAnswer"`
	State                LadderState `json:"state"`
}
