package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/GermanMalykh/quaqa/pkg/handlers"
	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/redis"
	"github.com/GermanMalykh/quaqa/pkg/services"
	"github.com/GermanMalykh/quaqa/pkg/websocket"
)

const timeout = 10 * time.Second

func newLogger(cfg *Config) zerolog.Logger {
	if cfg.verbose {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// router enruta las peticiones a los handlers
type router struct {
	question *handlers.QuestionHandler
	session  *handlers.SessionHandler
	game     *handlers.GameControlHandler
	log      zerolog.Logger
}

// Serve arranca Redis, los servicios y el servidor HTTP hasta que ctx se cancela
func Serve(ctx context.Context, cfg *Config) error {
	logger := newLogger(cfg)
	logger.Info().Str("version", releaseVersion).Msg("🚀 Iniciando servidor de trivia")

	logger.Info().Str("addr", cfg.redisAddr).Msg("🔌 Conectando a Redis")
	store, err := redis.NewRedisClient(ctx, cfg.redisAddr, cfg.redisPassword, cfg.redisDB, cfg.dataTTL, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	sessions := services.NewSessionService(cfg.sessionTimeout, logger)
	go sessions.Run(ctx)

	questions := services.NewQuestionService(store, nil, logger)
	history := services.NewHistoryService(ctx, store, logger)

	loadInitialQuestions(ctx, cfg, questions, history, logger)

	rt := &router{
		question: handlers.NewQuestionHandler(questions, history),
		session:  handlers.NewSessionHandler(sessions, services.NewPracticeService(questions, sessions, nil, logger)),
		game: handlers.NewGameControlHandler(
			services.NewLadderService(questions, history, sessions, hub, nil, logger),
			services.NewBlastService(questions, sessions, hub, nil, logger),
			hub, logger,
		),
		log: logger,
	}

	server := &fasthttp.Server{
		Handler:      rt.requestHandler,
		Name:         "Quaqa-FastHTTP/" + releaseVersion,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  10 * time.Minute,
	}

	addr := net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port))
	errs := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", "http://"+addr).Msg("🎮 Servidor iniciado")
		errs <- server.ListenAndServe(addr)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("🔄 Deteniendo servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// loadInitialQuestions carga el xlsx configurado si Redis no tiene preguntas
func loadInitialQuestions(ctx context.Context, cfg *Config, questions *services.QuestionService, history *services.HistoryService, logger zerolog.Logger) {
	if cfg.questionsFile == "" && cfg.questionsURL == "" {
		return
	}

	if total := questions.Topics(ctx).Total; total > 0 {
		logger.Info().Int("questions", total).Msg("✅ Ya hay preguntas en Redis")
		return
	}

	var err error
	if cfg.questionsFile != "" {
		_, err = questions.LoadQuestionsFromFile(ctx, cfg.questionsFile)
	} else {
		_, err = questions.LoadQuestionsFromURL(ctx, cfg.questionsURL)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ Error cargando preguntas iniciales. Se pueden subir con POST /api/questions/upload")
		return
	}
	history.Reset(ctx, "preguntas iniciales")
}

func (rt *router) requestHandler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	rt.log.Debug().Str("method", method).Str("path", path).Msg("📡 Petición")

	ctx.Response.Header.Set("Server", "Quaqa-FastHTTP/"+releaseVersion)
	ctx.Response.Header.Set("Cache-Control", "no-cache")

	// CORS para los clientes web
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if method == fasthttp.MethodOptions {
		ctx.SetStatusCode(fasthttp.StatusOK)
		return
	}

	switch {
	case path == "/ws":
		rt.game.HandleWebSocket(ctx)
	case path == "/version" && method == fasthttp.MethodGet:
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("quaqa v" + releaseVersion + "\n")

	case path == "/api/health":
		rt.question.HealthCheck(ctx)

	// Preguntas
	case path == "/api/questions/upload" && method == fasthttp.MethodPost:
		rt.question.UploadTopics(ctx)
	case path == "/api/questions/url" && method == fasthttp.MethodPost:
		rt.question.LoadFromURL(ctx)
	case path == "/api/questions/topics" && method == fasthttp.MethodGet:
		rt.question.GetTopics(ctx)
	case path == "/api/questions" && method == fasthttp.MethodDelete:
		rt.question.ClearQuestions(ctx)
	case path == "/api/millionaire/upload" && method == fasthttp.MethodPost:
		rt.question.UploadMillionaire(ctx)
	case path == "/api/millionaire/questions" && method == fasthttp.MethodGet:
		rt.question.GetMillionaireQuestions(ctx)

	// Historial
	case path == "/api/history" && method == fasthttp.MethodGet:
		rt.question.GetHistory(ctx)
	case path == "/api/history" && method == fasthttp.MethodDelete:
		rt.question.ClearHistory(ctx)

	// Creación de partidas
	case path == "/api/practice" && method == fasthttp.MethodPost:
		rt.session.StartPractice(ctx)
	case path == "/api/ladder" && method == fasthttp.MethodPost:
		rt.game.CreateLadder(ctx)
	case path == "/api/blast" && method == fasthttp.MethodPost:
		rt.game.CreateBlast(ctx)
	case path == "/api/sessions" && method == fasthttp.MethodGet:
		rt.session.GetSessions(ctx)

	case strings.HasPrefix(path, "/api/"):
		rt.handleParamRoutes(ctx, method, path)

	default:
		serve404(ctx)
	}
}

// handleParamRoutes rutas con {id} o {game} en el camino
func (rt *router) handleParamRoutes(ctx *fasthttp.RequestCtx, method, path string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[2] == "" {
		serve404(ctx)
		return
	}

	resource := parts[1]
	action := ""
	if len(parts) == 4 {
		action = parts[3]
	} else if len(parts) > 4 {
		serve404(ctx)
		return
	}

	if resource == "games" {
		ctx.SetUserValue("game", parts[2])
	} else {
		ctx.SetUserValue("id", parts[2])
	}

	switch route := method + " " + resource + "/" + action; route {
	// /api/games/{game}/topics
	case "GET games/topics":
		rt.question.GetGameTopics(ctx)
	case "PUT games/topics":
		rt.question.SetGameTopics(ctx)

	// /api/practice/{id}/...
	case "POST practice/next":
		rt.session.NextPractice(ctx)
	case "POST practice/finish":
		rt.session.FinishPractice(ctx)

	// /api/ladder/{id}/...
	case "GET ladder/":
		rt.game.GetLadder(ctx)
	case "POST ladder/start":
		rt.game.StartLadder(ctx)
	case "POST ladder/answer":
		rt.game.AnswerLadder(ctx)
	case "POST ladder/next":
		rt.game.NextLadder(ctx)
	case "POST ladder/lifeline":
		rt.game.UseLifeline(ctx)

	// /api/blast/{id}/...
	case "GET blast/":
		rt.game.GetBlast(ctx)
	case "POST blast/shoot":
		rt.game.Shoot(ctx)
	case "POST blast/tick":
		rt.game.Tick(ctx)

	// /api/sessions/{id}/qr
	case "GET sessions/qr":
		rt.session.SessionQR(ctx)

	default:
		serve404(ctx)
	}
}

func serve404(ctx *fasthttp.RequestCtx) {
	body, _ := json.Marshal(models.APIResponse{
		Success: false,
		Error:   "Ruta no encontrada: " + string(ctx.Path()),
	})
	ctx.SetStatusCode(fasthttp.StatusNotFound)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
