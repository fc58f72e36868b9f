package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/GermanMalykh/quaqa/pkg/handlers"
	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/redis"
	"github.com/GermanMalykh/quaqa/pkg/services"
	"github.com/GermanMalykh/quaqa/pkg/websocket"
)

func newTestRouter(t *testing.T) *router {
	t.Helper()
	ctx := context.Background()
	logger := zerolog.Nop()

	mr := miniredis.RunT(t)
	store, err := redis.NewRedisClient(ctx, mr.Addr(), "", 0, time.Hour, logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	hub := websocket.NewHub(logger)
	sessions := services.NewSessionService(time.Minute, logger)
	questions := services.NewQuestionService(store, nil, logger)
	history := services.NewHistoryService(ctx, store, logger)

	return &router{
		question: handlers.NewQuestionHandler(questions, history),
		session:  handlers.NewSessionHandler(sessions, services.NewPracticeService(questions, sessions, nil, logger)),
		game: handlers.NewGameControlHandler(
			services.NewLadderService(questions, history, sessions, hub, nil, logger),
			services.NewBlastService(questions, sessions, hub, nil, logger),
			hub, logger,
		),
		log: logger,
	}
}

func do(rt *router, method, uri, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	req.SetBodyString(body)

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	rt.requestHandler(ctx)
	return ctx
}

func TestRouting(t *testing.T) {
	rt := newTestRouter(t)

	tests := []struct {
		method string
		uri    string
		body   string
		status int
	}{
		{"OPTIONS", "/api/ladder", "", fasthttp.StatusOK},
		{"GET", "/version", "", fasthttp.StatusOK},
		{"GET", "/api/health", "", fasthttp.StatusOK},
		{"GET", "/api/questions/topics", "", fasthttp.StatusOK},
		{"GET", "/api/millionaire/questions", "", fasthttp.StatusOK},
		{"GET", "/api/history", "", fasthttp.StatusOK},
		{"GET", "/api/sessions", "", fasthttp.StatusOK},
		{"PUT", "/api/games/practice/topics", `{"topics":["A"]}`, fasthttp.StatusOK},
		{"GET", "/api/games/practice/topics", "", fasthttp.StatusOK},
		{"GET", "/api/games/poker/topics", "", fasthttp.StatusBadRequest},
		{"POST", "/api/ladder", "", fasthttp.StatusUnprocessableEntity},
		{"POST", "/api/practice", "", fasthttp.StatusUnprocessableEntity},
		{"GET", "/api/ladder/nope", "", fasthttp.StatusNotFound},
		{"POST", "/api/blast/nope/tick", `{"elapsed":1}`, fasthttp.StatusNotFound},
		{"GET", "/api/sessions/nope/qr", "", fasthttp.StatusNotFound},
		{"GET", "/api/ladder/nope/start", "", fasthttp.StatusNotFound},
		{"GET", "/api/unknown", "", fasthttp.StatusNotFound},
		{"GET", "/api/ladder/a/b/c", "", fasthttp.StatusNotFound},
		{"GET", "/", "", fasthttp.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.uri, func(t *testing.T) {
			ctx := do(rt, tt.method, tt.uri, tt.body)
			if got := ctx.Response.StatusCode(); got != tt.status {
				t.Errorf("status = %d, want %d (%s)", got, tt.status, ctx.Response.Body())
			}
			if origin := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")); origin != "*" {
				t.Errorf("CORS origin = %q", origin)
			}
		})
	}
}

func TestNotFoundEnvelope(t *testing.T) {
	rt := newTestRouter(t)
	ctx := do(rt, "GET", "/nope", "")

	var resp models.APIResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Success || resp.Error != "Ruta no encontrada: /nope" {
		t.Errorf("response = %+v", resp)
	}
}

func TestRoutingPathParams(t *testing.T) {
	rt := newTestRouter(t)

	ctx := do(rt, "PUT", "/api/games/blast/topics", `{"topics":["Geo"]}`)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	if game := ctx.UserValue("game"); game != "blast" {
		t.Errorf("game param = %v", game)
	}

	ctx = do(rt, "GET", "/api/ladder/abc", "")
	if id := ctx.UserValue("id"); id != "abc" {
		t.Errorf("id param = %v", id)
	}
}
