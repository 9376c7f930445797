package rest

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/input"
	"github.com/rocketscienceinc/gomoku-backend/internal/render"
)

//go:embed static/index.html
var static embed.FS

type gameManager interface {
	NewGame(ctx context.Context) (gomoku.Snapshot, error)
	Snapshot(ctx context.Context, id string) (gomoku.Snapshot, error)
	Move(ctx context.Context, id string, row, col int) (gomoku.MoveResult, gomoku.Snapshot, error)
	Click(ctx context.Context, id string, x, y float64) (gomoku.MoveResult, gomoku.Snapshot, error)
	Reset(ctx context.Context, id string) (gomoku.Snapshot, error)
	Close(ctx context.Context, id string) error

	Mapper() input.Mapper
	BoardSize() int
}

type Handlers struct {
	logger     *slog.Logger
	manager    gameManager
	socketPort string
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type clickRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type gameResponse struct {
	Game   gomoku.Snapshot `json:"game"`
	Status string          `json:"status"`
}

type moveResponse struct {
	Result gomoku.MoveResult `json:"result"`
	Reason string            `json:"reason,omitempty"`
	Game   gomoku.Snapshot   `json:"game"`
	Status string            `json:"status"`
}

type layoutResponse struct {
	Size       int     `json:"size"`
	Margin     float64 `json:"margin"`
	Pitch      float64 `json:"pitch"`
	WindowSize float64 `json:"window_size"`
	SocketPort string  `json:"socket_port"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHandlers(logger *slog.Logger, manager gameManager, socketPort string) *Handlers {
	return &Handlers{
		logger:     logger.With("component", "rest"),
		manager:    manager,
		socketPort: socketPort,
	}
}

// Router - wires every REST route.
func (that *Handlers) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", that.Index)
	r.Get("/ping", that.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Get("/layout", that.Layout)
		r.Post("/games", that.CreateGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", that.GetGame)
			r.Delete("/", that.DeleteGame)
			r.Post("/move", that.Move)
			r.Post("/click", that.Click)
			r.Post("/reset", that.Reset)
		})
	})

	return r
}

func (that *Handlers) Index(w http.ResponseWriter, _ *http.Request) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func (that *Handlers) Layout(w http.ResponseWriter, _ *http.Request) {
	mapper := that.manager.Mapper()
	size := that.manager.BoardSize()

	that.writeJSON(w, http.StatusOK, layoutResponse{
		Size:       size,
		Margin:     mapper.Margin,
		Pitch:      mapper.Pitch,
		WindowSize: mapper.WindowSize(size),
		SocketPort: that.socketPort,
	})
}

func (that *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.manager.NewGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, gameResponse{Game: snapshot, Status: render.Status(snapshot)})
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.manager.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: snapshot, Status: render.Status(snapshot)})
}

func (that *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.manager.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		that.writeError(w, apperror.ErrInvalidPayload)
		return
	}

	result, snapshot, err := that.manager.Move(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeMove(w, result, snapshot)
}

func (that *Handlers) Click(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.X == nil || req.Y == nil {
		that.writeError(w, apperror.ErrInvalidPayload)
		return
	}

	result, snapshot, err := that.manager.Click(r.Context(), chi.URLParam(r, "id"), *req.X, *req.Y)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeMove(w, result, snapshot)
}

func (that *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.manager.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: snapshot, Status: render.Status(snapshot)})
}

// writeMove - illegal moves are a normal answer, so they still get 200.
func (that *Handlers) writeMove(w http.ResponseWriter, result gomoku.MoveResult, snapshot gomoku.Snapshot) {
	resp := moveResponse{Result: result, Game: snapshot, Status: render.Status(snapshot)}
	if result.Reason != nil {
		resp.Reason = result.Reason.Error()
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func (that *Handlers) writeError(w http.ResponseWriter, err error) {
	log := that.logger.With("method", "writeError")

	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrGameNotFound.Error()})
	case errors.Is(err, apperror.ErrInvalidPayload):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: apperror.ErrInvalidPayload.Error()})
	default:
		log.Error("request failed", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
