package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/input"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Manager *usecase.GameManager
}

// New - prepares a context bounded by maxWaitDuration and a manager with the standard board.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	manager := usecase.NewGameManager(logger, entity.DefaultBoardSize, input.NewMapper(input.DefaultMargin, input.DefaultPitch))

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Manager: manager,
	}
}

// NewGame - creates a game on the suite's manager and returns its id.
func (that *Suite) NewGame(ctx context.Context) string {
	that.Helper()

	snapshot, err := that.Manager.NewGame(ctx)
	if err != nil {
		that.Fatalf("could not create game: %v", err)
	}

	return snapshot.ID
}
