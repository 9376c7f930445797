package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/input"
)

const subscriberBuffer = 8

type subscriber struct {
	ch        chan gomoku.Snapshot
	closeOnce sync.Once
}

func (that *subscriber) close() {
	that.closeOnce.Do(func() { close(that.ch) })
}

type session struct {
	id         string
	controller *gomoku.GameController
	subs       map[*subscriber]struct{}
}

// GameManager owns independent games. Every command holds the manager lock until the
// transition is complete and the new snapshot is queued for subscribers.
type GameManager struct {
	logger    *slog.Logger
	mapper    input.Mapper
	boardSize int

	mu    sync.Mutex
	games map[string]*session
}

func NewGameManager(logger *slog.Logger, boardSize int, mapper input.Mapper) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		mapper:    mapper,
		boardSize: boardSize,

		games: make(map[string]*session),
	}
}

func (that *GameManager) Mapper() input.Mapper {
	return that.mapper
}

func (that *GameManager) BoardSize() int {
	return that.boardSize
}

// NewGame - creates a game with an empty board and PlayerA to move.
func (that *GameManager) NewGame(ctx context.Context) (gomoku.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game := &session{
		id:         uuid.NewString(),
		controller: gomoku.NewGameController(entity.NewBoard(that.boardSize)),
		subs:       make(map[*subscriber]struct{}),
	}
	that.games[game.id] = game

	that.logger.InfoContext(ctx, "game created", "game_id", game.id, "size", that.boardSize)

	return that.snapshotLocked(game), nil
}

// Move - attempts a move in board coordinates.
func (that *GameManager) Move(ctx context.Context, id string, row, col int) (gomoku.MoveResult, gomoku.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameLocked(id)
	if err != nil {
		return gomoku.MoveResult{}, gomoku.Snapshot{}, fmt.Errorf("failed to get game: %w", err)
	}

	result := game.controller.AttemptMove(row, col)
	that.logMove(ctx, game.id, result)

	snapshot := that.snapshotLocked(game)
	if result.Outcome != gomoku.OutcomeIllegal {
		that.publishLocked(game, snapshot)
	}

	return result, snapshot, nil
}

// Click - attempts a move from a pointer position.
func (that *GameManager) Click(ctx context.Context, id string, x, y float64) (gomoku.MoveResult, gomoku.Snapshot, error) {
	cell := that.mapper.ToCell(x, y)

	return that.Move(ctx, id, cell.Row, cell.Col)
}

func (that *GameManager) Reset(ctx context.Context, id string) (gomoku.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameLocked(id)
	if err != nil {
		return gomoku.Snapshot{}, fmt.Errorf("failed to get game: %w", err)
	}

	game.controller.Reset()
	that.logger.InfoContext(ctx, "game reset", "game_id", game.id)

	snapshot := that.snapshotLocked(game)
	that.publishLocked(game, snapshot)

	return snapshot, nil
}

func (that *GameManager) Snapshot(_ context.Context, id string) (gomoku.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameLocked(id)
	if err != nil {
		return gomoku.Snapshot{}, fmt.Errorf("failed to get game: %w", err)
	}

	return that.snapshotLocked(game), nil
}

// Close - forgets the game and closes its subscriptions.
func (that *GameManager) Close(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameLocked(id)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	for sub := range game.subs {
		sub.close()
	}
	delete(that.games, id)

	that.logger.InfoContext(ctx, "game closed", "game_id", id)

	return nil
}

// Subscribe - returns a feed of snapshots published after every accepted command. The
// current snapshot is queued first. The feed is closed on unsubscribe, on ctx cancellation,
// when the game is closed, or when the subscriber falls behind.
func (that *GameManager) Subscribe(ctx context.Context, id string) (<-chan gomoku.Snapshot, func(), error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameLocked(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	sub := &subscriber{ch: make(chan gomoku.Snapshot, subscriberBuffer)}
	sub.ch <- that.snapshotLocked(game)
	game.subs[sub] = struct{}{}

	done := make(chan struct{})

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			close(done)

			that.mu.Lock()
			delete(game.subs, sub)
			that.mu.Unlock()
			sub.close()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-done:
		}
	}()

	return sub.ch, unsubscribe, nil
}

func (that *GameManager) getGameLocked(id string) (*session, error) {
	game, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return game, nil
}

func (that *GameManager) snapshotLocked(game *session) gomoku.Snapshot {
	snapshot := game.controller.Snapshot()
	snapshot.ID = game.id

	return snapshot
}

// publishLocked - queues the snapshot for every subscriber; a full queue drops the subscriber.
func (that *GameManager) publishLocked(game *session, snapshot gomoku.Snapshot) {
	for sub := range game.subs {
		select {
		case sub.ch <- snapshot:
		default:
			delete(game.subs, sub)
			sub.close()
			that.logger.Warn("slow subscriber dropped", "game_id", game.id)
		}
	}
}

func (that *GameManager) logMove(ctx context.Context, id string, result gomoku.MoveResult) {
	log := that.logger.With("method", "logMove", "game_id", id, "row", result.Row, "col", result.Col)

	switch result.Outcome {
	case gomoku.OutcomeIllegal:
		log.DebugContext(ctx, "move rejected", "reason", result.Reason)
	case gomoku.OutcomeWon:
		log.InfoContext(ctx, "game won", "winner", result.Player.String())
	case gomoku.OutcomeRestarted:
		log.InfoContext(ctx, "game restarted by click")
	default:
		log.DebugContext(ctx, "move accepted", "player", result.Player.String())
	}
}
