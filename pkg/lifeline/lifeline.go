// Package lifeline calcula el resultado de los tres comodines del millonario.
// Los índices que devuelve son los de models.MillionaireQuestion.Answers.
package lifeline

import (
	"errors"

	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/sampler"
)

var (
	ErrNoCorrectAnswer = errors.New("la pregunta no tiene respuesta correcta")
	ErrUnknownLifeline = errors.New("comodín desconocido")
)

const (
	phoneMinConfidence  = 70
	phoneMaxConfidence  = 90
	audienceMinShare    = 60
	audienceMaxShare    = 80
	audienceTotalShares = 100
)

// FiftyFiftyResult las dos respuestas incorrectas que se quitan
type FiftyFiftyResult struct {
	Removed [2]int
}

// PhoneResult lo que sugiere el amigo y con cuánta seguridad
type PhoneResult struct {
	Suggestion int
	Confidence int
}

// AudienceResult porcentaje de votos del público por respuesta, suman 100
type AudienceResult struct {
	Percentages [4]int
}

// FiftyFifty elige al azar dos de las tres respuestas incorrectas. Nunca quita la correcta.
func FiftyFifty(src sampler.Source, q models.MillionaireQuestion) (FiftyFiftyResult, error) {
	correct := q.CorrectIndex()
	if correct < 0 {
		return FiftyFiftyResult{}, ErrNoCorrectAnswer
	}

	var wrong []int
	for i, a := range q.Answers {
		if i != correct && !a.IsCorrect {
			wrong = append(wrong, i)
		}
	}

	removed := sampler.Sample(src, wrong, 2)
	var result FiftyFiftyResult
	copy(result.Removed[:], removed)
	return result, nil
}

// Phone el amigo siempre sugiere la respuesta correcta; solo varía la seguridad (70-90%).
func Phone(src sampler.Source, q models.MillionaireQuestion) (PhoneResult, error) {
	correct := q.CorrectIndex()
	if correct < 0 {
		return PhoneResult{}, ErrNoCorrectAnswer
	}

	return PhoneResult{
		Suggestion: correct,
		Confidence: sampler.IntBetween(src, phoneMinConfidence, phoneMaxConfidence),
	}, nil
}

// Audience la correcta recibe entre 60 y 80%; cada incorrecta toma a lo sumo un tercio
// de lo que queda y el sobrante vuelve a la correcta.
func Audience(src sampler.Source, q models.MillionaireQuestion) (AudienceResult, error) {
	correct := q.CorrectIndex()
	if correct < 0 {
		return AudienceResult{}, ErrNoCorrectAnswer
	}
	if src == nil {
		src = sampler.Global()
	}

	var result AudienceResult
	result.Percentages[correct] = sampler.IntBetween(src, audienceMinShare, audienceMaxShare)
	remaining := audienceTotalShares - result.Percentages[correct]

	for i := range result.Percentages {
		if i == correct {
			continue
		}
		share := src.IntN(remaining/3 + 1)
		result.Percentages[i] = share
		remaining -= share
	}

	result.Percentages[correct] += remaining
	return result, nil
}

// Apply calcula el comodín pedido y lo devuelve en el formato de la API
func Apply(src sampler.Source, id models.LifelineID, q models.MillionaireQuestion) (models.LifelineResult, error) {
	result := models.LifelineResult{ID: id}

	switch id {
	case models.LifelineFiftyFifty:
		r, err := FiftyFifty(src, q)
		if err != nil {
			return result, err
		}
		result.Removed = r.Removed[:]
	case models.LifelinePhone:
		r, err := Phone(src, q)
		if err != nil {
			return result, err
		}
		result.Suggestion = &r.Suggestion
		result.Confidence = r.Confidence
	case models.LifelineAudience:
		r, err := Audience(src, q)
		if err != nil {
			return result, err
		}
		result.Percentages = r.Percentages[:]
	default:
		return result, ErrUnknownLifeline
	}

	return result, nil
}
