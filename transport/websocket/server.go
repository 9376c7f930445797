package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/render"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second

	replyBuffer     = 8
	shutdownTimeout = 5 * time.Second
)

type gameManager interface {
	Subscribe(ctx context.Context, id string) (<-chan gomoku.Snapshot, func(), error)

	Move(ctx context.Context, id string, row, col int) (gomoku.MoveResult, gomoku.Snapshot, error)
	Click(ctx context.Context, id string, x, y float64) (gomoku.MoveResult, gomoku.Snapshot, error)
	Reset(ctx context.Context, id string) (gomoku.Snapshot, error)
}

// handlerFunc - processes one client message. A non-nil reply goes to this connection only;
// state changes reach every connection through the game feed.
type handlerFunc func(ctx context.Context, gameID string, message *Message) (*Message, error)

type Server struct {
	logger   *slog.Logger
	manager  gameManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, manager gameManager) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionClick] = server.handleClick
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionReset] = server.handleReset

	return server
}

func (that *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws/games/{id}", that.serveGame)

	return r
}

// Start - starts WebSocket server. Open connections are closed when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveGame - upgrades the request and attaches the connection to one game.
func (that *Server) serveGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	log := that.logger.With("method", "serveGame", "game_id", gameID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	feed, unsubscribe, err := that.manager.Subscribe(ctx, gameID)
	if err != nil {
		if errors.Is(err, apperror.ErrGameNotFound) {
			http.Error(w, apperror.ErrGameNotFound.Error(), http.StatusNotFound)
			return
		}

		log.Error("failed to subscribe", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer unsubscribe()

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established")

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	replies := make(chan Message, replyBuffer)
	writerDone := make(chan error, 1)
	go func() {
		writerDone <- that.writeLoop(ctx, conn, feed, replies)
		cancel()
	}()

	if err = that.readLoop(ctx, conn, gameID, replies); err != nil {
		log.Debug("read loop stopped", "error", err)
	}
	cancel()

	if err = <-writerDone; err != nil {
		log.Debug("write loop stopped", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// readLoop - processes messages from the client.
func (that *Server) readLoop(ctx context.Context, conn *websocket.Conn, gameID string, replies chan<- Message) error {
	log := that.logger.With("method", "readLoop", "game_id", gameID)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, body, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			that.reply(ctx, replies, actionError, errorPayload{Error: apperror.ErrInvalidPayload.Error()})
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			that.reply(ctx, replies, actionError, errorPayload{Error: apperror.ErrUnknownAction.Error()})
			continue
		}

		reply, err := handler(ctx, gameID, &message)
		switch {
		case errors.Is(err, apperror.ErrGameNotFound):
			return err
		case err != nil:
			log.Debug("error processing message", "action", message.Action, "error", err)
			that.reply(ctx, replies, actionError, errorPayload{Error: err.Error()})
		case reply != nil:
			that.send(ctx, replies, *reply)
		}
	}
}

// writeLoop - the only writer of conn. It forwards game snapshots and replies and keeps the
// connection alive with pings.
func (that *Server) writeLoop(ctx context.Context, conn *websocket.Conn, feed <-chan gomoku.Snapshot, replies <-chan Message) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			that.writeClose(conn, websocket.CloseGoingAway)
			return nil
		case snapshot, ok := <-feed:
			if !ok {
				that.writeClose(conn, websocket.CloseNormalClosure)
				return nil
			}

			message, err := newMessage(actionState, statePayload{Game: snapshot, Status: render.Status(snapshot)})
			if err != nil {
				return err
			}

			if err = that.write(conn, message); err != nil {
				return err
			}
		case message := <-replies:
			if err := that.write(conn, message); err != nil {
				return err
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("failed to write ping: %w", err)
			}
		}
	}
}

func (that *Server) write(conn *websocket.Conn, message Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) writeClose(conn *websocket.Conn, code int) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""), time.Now().Add(writeWait))
}

func (that *Server) reply(ctx context.Context, replies chan<- Message, action string, payload any) {
	message, err := newMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to build reply", "error", err)
		return
	}

	that.send(ctx, replies, message)
}

func (that *Server) send(ctx context.Context, replies chan<- Message, message Message) {
	select {
	case replies <- message:
	case <-ctx.Done():
	}
}
