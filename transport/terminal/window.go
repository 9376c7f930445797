// Package terminal draws the board in a terminal and turns mouse clicks into moves.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/input"
	"github.com/rocketscienceinc/gomoku-backend/internal/render"
)

// cellWidth - screen columns per intersection, so the grid looks square.
const cellWidth = 2

const helpText = "click: place  r: reset  q: quit"

type gameManager interface {
	NewGame(ctx context.Context) (gomoku.Snapshot, error)
	Move(ctx context.Context, id string, row, col int) (gomoku.MoveResult, gomoku.Snapshot, error)
	Reset(ctx context.Context, id string) (gomoku.Snapshot, error)
	Close(ctx context.Context, id string) error
}

var (
	styleBoard  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTan)
	styleStatus = tcell.StyleDefault.Bold(true)
	styleHelp   = tcell.StyleDefault.Dim(true)
)

// Window is a single hot-seat game shown on a tcell screen. The caller owns the screen's
// Init and Fini.
type Window struct {
	logger  *slog.Logger
	manager gameManager
	screen  tcell.Screen

	// Screen cells are mapped with a unit pitch after the x axis is divided by cellWidth.
	mapper  input.Mapper
	marginX int
	marginY int

	gameID   string
	snapshot gomoku.Snapshot
	buttons  tcell.ButtonMask
}

func New(logger *slog.Logger, manager gameManager, screen tcell.Screen, marginX, marginY int) *Window {
	return &Window{
		logger:  logger.With("component", "terminal"),
		manager: manager,
		screen:  screen,

		mapper:  input.NewMapper(0, 1),
		marginX: marginX,
		marginY: marginY,
	}
}

// Run - plays games until the user quits or ctx is canceled.
func (that *Window) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	snapshot, err := that.manager.NewGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	that.gameID = snapshot.ID
	that.snapshot = snapshot

	defer func() {
		if closeErr := that.manager.Close(context.WithoutCancel(ctx), that.gameID); closeErr != nil {
			log.Error("failed to close game", "error", closeErr)
		}
	}()

	that.screen.EnableMouse(tcell.MouseButtonEvents)
	that.screen.HideCursor()
	that.draw()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := that.screen.PollEvent()
			if ev == nil {
				return
			}

			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("context canceled, closing window")
			return nil
		case ev := <-events:
			quit, err := that.handleEvent(ctx, ev)
			if err != nil {
				return err
			}

			if quit {
				log.Info("window closed by user")
				return nil
			}

			that.draw()
		}
	}
}

// handleEvent - applies one input event; it reports whether the window should close.
func (that *Window) handleEvent(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return that.handleKey(ctx, ev)
	case *tcell.EventMouse:
		return false, that.handleMouse(ctx, ev)
	case *tcell.EventResize:
		that.screen.Sync()
	}

	return false, nil
}

func (that *Window) handleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true, nil
		case 'r', 'R':
			snapshot, err := that.manager.Reset(ctx, that.gameID)
			if err != nil {
				return false, fmt.Errorf("failed to reset game: %w", err)
			}
			that.snapshot = snapshot
		}
	}

	return false, nil
}

// handleMouse - a press of the primary button is one click; holding or dragging is not.
func (that *Window) handleMouse(ctx context.Context, ev *tcell.EventMouse) error {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && that.buttons&tcell.Button1 == 0
	that.buttons = buttons

	if !pressed {
		return nil
	}

	x, y := ev.Position()
	cell := that.toCell(x, y)

	result, snapshot, err := that.manager.Move(ctx, that.gameID, cell.Row, cell.Col)
	if err != nil {
		return fmt.Errorf("failed to move: %w", err)
	}
	that.snapshot = snapshot

	that.logger.Debug("click", "x", x, "y", y, "row", cell.Row, "col", cell.Col, "outcome", result.Outcome)

	return nil
}

// toCell - the connector right of an intersection belongs to that intersection.
func (that *Window) toCell(x, y int) entity.Move {
	return that.mapper.ToCell(math.Floor(float64(x-that.marginX)/cellWidth), float64(y-that.marginY))
}

func (that *Window) toScreen(row, col int) (int, int) {
	x, y := that.mapper.ToPixel(row, col)

	return that.marginX + int(x)*cellWidth, that.marginY + int(y)
}

func (that *Window) draw() {
	that.screen.Clear()

	snapshot := that.snapshot
	size := snapshot.Size

	that.drawText(that.marginX, 0, styleStatus, render.Status(snapshot))

	stars := make(map[entity.Move]bool)
	for _, point := range render.StarPoints(size) {
		stars[point] = true
	}

	line := make(map[entity.Move]bool)
	for _, move := range snapshot.WinningLine {
		line[move] = true
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			x, y := that.toScreen(row, col)
			move := entity.Move{Row: row, Col: col}

			if col < size-1 {
				that.screen.SetContent(x+1, y, '─', nil, styleBoard)
			}

			player := snapshot.Cells[row][col]
			if player == entity.Empty {
				r := gridRune(row, col, size)
				if stars[move] {
					r = '╋'
				}
				that.screen.SetContent(x, y, r, nil, styleBoard)
				continue
			}

			style := styleBoard.Foreground(markerColor(player)).Bold(true)
			if line[move] {
				style = style.Reverse(true)
			}
			that.screen.SetContent(x, y, '●', nil, style)
		}
	}

	that.drawText(that.marginX, that.marginY+size+1, styleHelp, helpText)
	that.screen.Show()
}

func (that *Window) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		that.screen.SetContent(x+i, y, r, nil, style)
	}
}

func markerColor(player entity.Player) tcell.Color {
	if player == entity.PlayerA {
		return tcell.ColorRed
	}

	return tcell.ColorYellow
}

func gridRune(row, col, size int) rune {
	last := size - 1

	switch {
	case row == 0 && col == 0:
		return '┌'
	case row == 0 && col == last:
		return '┐'
	case row == last && col == 0:
		return '└'
	case row == last && col == last:
		return '┘'
	case row == 0:
		return '┬'
	case row == last:
		return '┴'
	case col == 0:
		return '├'
	case col == last:
		return '┤'
	default:
		return '┼'
	}
}
