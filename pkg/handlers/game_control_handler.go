package handlers

import (
	"fmt"

	"github.com/fasthttp/websocket"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/GermanMalykh/quaqa/pkg/blast"
	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/services"
	websocketHub "github.com/GermanMalykh/quaqa/pkg/websocket"
)

// GameControlHandler maneja el millonario, los asteroides y el websocket de eventos
type GameControlHandler struct {
	ladderService *services.LadderService
	blastService  *services.BlastService
	hub           *websocketHub.Hub
	log           zerolog.Logger
}

func NewGameControlHandler(ladderService *services.LadderService, blastService *services.BlastService, hub *websocketHub.Hub, logger zerolog.Logger) *GameControlHandler {
	return &GameControlHandler{
		ladderService: ladderService,
		blastService:  blastService,
		hub:           hub,
		log:           logger,
	}
}

var upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true
	},
}

// HandleWebSocket maneja las conexiones WebSocket. Los clientes solo escuchan.
func (gc *GameControlHandler) HandleWebSocket(ctx *fasthttp.RequestCtx) {
	err := upgrader.Upgrade(ctx, func(ws *websocket.Conn) {
		gc.hub.Register(ws)
		defer gc.hub.Unregister(ws)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				gc.log.Debug().Err(err).Msg("websocket cerrado")
				return
			}
		}
	})

	if err != nil {
		gc.log.Warn().Err(err).Msg("❌ Error upgrading to WebSocket")
	}
}

// CreateLadder maneja POST /api/ladder
func (gc *GameControlHandler) CreateLadder(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	view, err := gc.ladderService.Create(c)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	message := "Escalera lista"
	if view.Fallback {
		message = "Escalera lista sin reparto por dificultad"
	}
	respondWithSuccess(ctx, view, message)
}

// StartLadder maneja POST /api/ladder/{id}/start
func (gc *GameControlHandler) StartLadder(ctx *fasthttp.RequestCtx) {
	view, err := gc.ladderService.Start(pathParam(ctx, "id"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, view, "Partida iniciada")
}

// AnswerLadder maneja POST /api/ladder/{id}/answer
func (gc *GameControlHandler) AnswerLadder(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	req := models.AnswerRequest{Index: -1}
	if !decodeBody(ctx, &req) {
		return
	}

	view, err := gc.ladderService.Answer(c, pathParam(ctx, "id"), req.Index)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	var message string
	switch view.State {
	case models.LadderWon:
		message = fmt.Sprintf("¡Ganaste %d!", view.Score)
	case models.LadderLost:
		message = fmt.Sprintf("Respuesta incorrecta, te llevas %d", view.Score)
	default:
		message = "¡Respuesta correcta!"
	}
	respondWithSuccess(ctx, view, message)
}

// NextLadder maneja POST /api/ladder/{id}/next
func (gc *GameControlHandler) NextLadder(ctx *fasthttp.RequestCtx) {
	view, err := gc.ladderService.Next(pathParam(ctx, "id"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, view, fmt.Sprintf("Pregunta %d", view.Rung+1))
}

// UseLifeline maneja POST /api/ladder/{id}/lifeline
func (gc *GameControlHandler) UseLifeline(ctx *fasthttp.RequestCtx) {
	var req models.LifelineRequest
	if !decodeBody(ctx, &req) {
		return
	}

	result, err := gc.ladderService.Lifeline(pathParam(ctx, "id"), req.ID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, result, "Comodín usado")
}

// GetLadder maneja GET /api/ladder/{id}
func (gc *GameControlHandler) GetLadder(ctx *fasthttp.RequestCtx) {
	view, err := gc.ladderService.View(pathParam(ctx, "id"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, view, "Estado de la partida")
}

// CreateBlast maneja POST /api/blast
func (gc *GameControlHandler) CreateBlast(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	view, err := gc.blastService.Create(c)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, view, "Partida de asteroides iniciada")
}

// Shoot maneja POST /api/blast/{id}/shoot
func (gc *GameControlHandler) Shoot(ctx *fasthttp.RequestCtx) {
	var req models.ShootRequest
	if !decodeBody(ctx, &req) {
		return
	}

	view, result, err := gc.blastService.Shoot(pathParam(ctx, "id"), req.Target)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	message := "Disparo ignorado"
	switch result {
	case blast.ShotHit:
		message = "¡Impacto!"
	case blast.ShotMiss:
		message = "Fallaste"
	}
	respondWithSuccess(ctx, view, message)
}

// Tick maneja POST /api/blast/{id}/tick
func (gc *GameControlHandler) Tick(ctx *fasthttp.RequestCtx) {
	var req models.ElapsedRequest
	if !decodeBody(ctx, &req) {
		return
	}

	view, err := gc.blastService.Tick(pathParam(ctx, "id"), req.Elapsed)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, view, "Reloj actualizado")
}

// GetBlast maneja GET /api/blast/{id}
func (gc *GameControlHandler) GetBlast(ctx *fasthttp.RequestCtx) {
	view, err := gc.blastService.View(pathParam(ctx, "id"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, view, "Estado de la partida")
}
