package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/GermanMalykh/quaqa/pkg/blast"
	"github.com/GermanMalykh/quaqa/pkg/ladder"
	"github.com/GermanMalykh/quaqa/pkg/lifeline"
	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/practice"
	"github.com/GermanMalykh/quaqa/pkg/services"
	"github.com/GermanMalykh/quaqa/pkg/spreadsheet"
)

// respondWithJSON envía una respuesta JSON
func respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.SetStatusCode(statusCode)

	jsonData, err := json.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"success": false, "error": "Error al serializar respuesta"}`)
		return
	}

	ctx.SetBody(jsonData)
}

// respondWithError envía una respuesta de error
func respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	respondWithJSON(ctx, statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// respondWithSuccess envía una respuesta exitosa
func respondWithSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	respondWithJSON(ctx, fasthttp.StatusOK, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondWithServiceError traduce los errores conocidos a su código HTTP
func respondWithServiceError(ctx *fasthttp.RequestCtx, err error) {
	respondWithError(ctx, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, ladder.ErrIllegalTransition),
		errors.Is(err, services.ErrLifelineUnavailable),
		errors.Is(err, blast.ErrOver),
		errors.Is(err, practice.ErrFinished),
		errors.Is(err, practice.ErrNotStarted):
		return fasthttp.StatusConflict
	case errors.Is(err, ladder.ErrInsufficientQuestions),
		errors.Is(err, practice.ErrNoQuestion):
		return fasthttp.StatusUnprocessableEntity
	case errors.Is(err, services.ErrWrongGame),
		errors.Is(err, services.ErrUnknownGame),
		errors.Is(err, ladder.ErrInvalidAnswer),
		errors.Is(err, lifeline.ErrUnknownLifeline),
		errors.Is(err, spreadsheet.ErrNoSheets),
		errors.Is(err, spreadsheet.ErrNoQuestions),
		errors.Is(err, spreadsheet.ErrFormat):
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusInternalServerError
	}
}

const requestTimeout = 15 * time.Second

// requestContext contexto para las llamadas a los servicios. No se usa el RequestCtx
// porque fasthttp lo recicla al terminar el handler.
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// pathParam valor que el enrutador dejó en ctx
func pathParam(ctx *fasthttp.RequestCtx, name string) string {
	value, _ := ctx.UserValue(name).(string)
	return value
}

// decodeBody lee el JSON del cuerpo; un cuerpo vacío deja dest sin tocar
func decodeBody(ctx *fasthttp.RequestCtx, dest interface{}) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dest); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
		return false
	}
	return true
}
