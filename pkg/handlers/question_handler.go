package handlers

import (
	"bytes"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/services"
)

// QuestionHandler maneja las peticiones HTTP para preguntas e historial
type QuestionHandler struct {
	questionService *services.QuestionService
	historyService  *services.HistoryService
}

// NewQuestionHandler crea una nueva instancia del handler
func NewQuestionHandler(questionService *services.QuestionService, historyService *services.HistoryService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		historyService:  historyService,
	}
}

// HealthCheck maneja GET /api/health
func (h *QuestionHandler) HealthCheck(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	status, err := h.questionService.Status(c)
	if err != nil {
		respondWithError(ctx, fasthttp.StatusServiceUnavailable, fmt.Sprintf("Servicio no disponible: %v", err))
		return
	}

	respondWithSuccess(ctx, status, "Servicio funcionando correctamente")
}

// UploadTopics maneja POST /api/questions/upload (cuerpo: xlsx)
func (h *QuestionHandler) UploadTopics(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	body := ctx.PostBody()
	if len(body) == 0 {
		respondWithError(ctx, fasthttp.StatusBadRequest, "Archivo vacío")
		return
	}

	resp, err := h.questionService.ImportTopics(c, bytes.NewReader(body))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	h.historyService.Reset(c, "preguntas subidas")

	respondWithSuccess(ctx, resp, fmt.Sprintf("%d preguntas cargadas en %d temas", resp.Total, len(resp.Topics)))
}

// LoadFromURL maneja POST /api/questions/url
func (h *QuestionHandler) LoadFromURL(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	var req models.URLRequest
	if !decodeBody(ctx, &req) {
		return
	}
	if req.URL == "" {
		respondWithError(ctx, fasthttp.StatusBadRequest, "Falta la URL")
		return
	}

	resp, err := h.questionService.LoadQuestionsFromURL(c, req.URL)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	h.historyService.Reset(c, "preguntas descargadas")

	respondWithSuccess(ctx, resp, fmt.Sprintf("%d preguntas cargadas en %d temas", resp.Total, len(resp.Topics)))
}

// GetTopics maneja GET /api/questions/topics
func (h *QuestionHandler) GetTopics(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	respondWithSuccess(ctx, h.questionService.Topics(c), "Temas obtenidos exitosamente")
}

// ClearQuestions maneja DELETE /api/questions
func (h *QuestionHandler) ClearQuestions(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	if err := h.questionService.ClearAll(c); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	h.historyService.Reset(c, "preguntas eliminadas")
	respondWithSuccess(ctx, nil, "Preguntas eliminadas")
}

// UploadMillionaire maneja POST /api/millionaire/upload (cuerpo: xlsx)
func (h *QuestionHandler) UploadMillionaire(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	body := ctx.PostBody()
	if len(body) == 0 {
		respondWithError(ctx, fasthttp.StatusBadRequest, "Archivo vacío")
		return
	}

	resp, err := h.questionService.ImportMillionaire(c, bytes.NewReader(body))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	h.historyService.Reset(c, "banco del millonario subido")

	respondWithSuccess(ctx, resp, fmt.Sprintf("%d preguntas del millonario cargadas", resp.Count))
}

// GetMillionaireQuestions maneja GET /api/millionaire/questions
func (h *QuestionHandler) GetMillionaireQuestions(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	questions := h.questionService.MillionaireQuestions(c)
	respondWithSuccess(ctx, models.MillionaireQuestionsResponse{
		Questions: questions,
		Count:     len(questions),
	}, "Preguntas obtenidas exitosamente")
}

// GetGameTopics maneja GET /api/games/{game}/topics
func (h *QuestionHandler) GetGameTopics(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	game := models.GameID(pathParam(ctx, "game"))
	if !game.Valid() {
		respondWithError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("Juego desconocido: %s", game))
		return
	}

	respondWithSuccess(ctx, models.TopicsRequest{Topics: h.questionService.GameTopics(c, game)}, "Temas del juego obtenidos")
}

// SetGameTopics maneja PUT /api/games/{game}/topics
func (h *QuestionHandler) SetGameTopics(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	game := models.GameID(pathParam(ctx, "game"))

	var req models.TopicsRequest
	if !decodeBody(ctx, &req) {
		return
	}

	if err := h.questionService.SetGameTopics(c, game, req.Topics); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, req, "Temas del juego guardados")
}

// GetHistory maneja GET /api/history
func (h *QuestionHandler) GetHistory(ctx *fasthttp.RequestCtx) {
	respondWithSuccess(ctx, h.historyService.Response(), "Historial obtenido exitosamente")
}

// ClearHistory maneja DELETE /api/history
func (h *QuestionHandler) ClearHistory(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	if err := h.historyService.Clear(c); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, nil, "Historial limpiado")
}
