package handlers

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
	"github.com/valyala/fasthttp"

	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/services"
)

const qrSize = 320

// SessionHandler maneja las prácticas y el código QR para compartir una sesión
type SessionHandler struct {
	sessionService  *services.SessionService
	practiceService *services.PracticeService
}

// NewSessionHandler crea una nueva instancia del handler
func NewSessionHandler(sessionService *services.SessionService, practiceService *services.PracticeService) *SessionHandler {
	return &SessionHandler{
		sessionService:  sessionService,
		practiceService: practiceService,
	}
}

// StartPractice maneja POST /api/practice
func (h *SessionHandler) StartPractice(ctx *fasthttp.RequestCtx) {
	c, cancel := requestContext()
	defer cancel()

	var req models.TopicsRequest
	if !decodeBody(ctx, &req) {
		return
	}

	view, err := h.practiceService.Start(c, req.Topics)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, view, "Práctica iniciada")
}

// NextPractice maneja POST /api/practice/{id}/next
func (h *SessionHandler) NextPractice(ctx *fasthttp.RequestCtx) {
	var req models.ElapsedRequest
	if !decodeBody(ctx, &req) {
		return
	}

	view, err := h.practiceService.Next(pathParam(ctx, "id"), req.Elapsed)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, view, "Siguiente pregunta")
}

// FinishPractice maneja POST /api/practice/{id}/finish
func (h *SessionHandler) FinishPractice(ctx *fasthttp.RequestCtx) {
	var req models.ElapsedRequest
	if !decodeBody(ctx, &req) {
		return
	}

	view, err := h.practiceService.Finish(pathParam(ctx, "id"), req.Elapsed)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	respondWithSuccess(ctx, view, fmt.Sprintf("Práctica terminada: %d preguntas", len(view.Answered)))
}

// GetSessions maneja GET /api/sessions
func (h *SessionHandler) GetSessions(ctx *fasthttp.RequestCtx) {
	respondWithSuccess(ctx, h.sessionService.Counts(), "Sesiones activas")
}

// SessionQR maneja GET /api/sessions/{id}/qr: PNG con el enlace a la sesión
func (h *SessionHandler) SessionQR(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	kind, ok := h.sessionService.Kind(id)
	if !ok {
		respondWithError(ctx, fasthttp.StatusNotFound, "Sesión no encontrada")
		return
	}

	scheme := "http"
	if ctx.IsTLS() {
		scheme = "https"
	}
	if proto := string(ctx.Request.Header.Peek("X-Forwarded-Proto")); proto != "" {
		scheme = strings.ToLower(proto)
	}
	url := fmt.Sprintf("%s://%s/%s?session=%s", scheme, ctx.Host(), kind, id)

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		respondWithError(ctx, fasthttp.StatusInternalServerError, "Error generando código QR")
		return
	}

	ctx.SetContentType("image/png")
	ctx.SetBody(png)
}
