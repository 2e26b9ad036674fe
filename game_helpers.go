package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/sim"
	"github.com/sheikhrachel/go-life/utils"
)

const (
	// Terminal columns per grid cell, so cells come out roughly square
	cellWidth = 2
	// Screen rows above the grid: status and help lines
	gridTop = 2

	helpLine = "space start/stop | n step | c clear | r randomize | click toggle | q quit"
)

var (
	errQuit = errors.New("quit")

	liveStyle   = tcell.StyleDefault.Background(tcell.ColorWhite)
	deadStyle   = tcell.StyleDefault.Background(tcell.ColorBlack)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	helpStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// initializeGame sets up the grid and statistics for the given configuration
func initializeGame(config utils.Config) (*model.Grid, *utils.Stats) {
	grid := model.NewGrid(config.Rows, config.Cols)
	if config.UseMemoryPool {
		grid.UsePool(model.NewGridPool())
	}
	return grid, utils.NewStats(config.HistorySize)
}

// cellAt maps a screen position to a grid cell. Positions off the grid report false.
func cellAt(x, y, rows, cols int) (row, col int, ok bool) {
	if x < 0 || y < gridTop {
		return 0, 0, false
	}
	row, col = y-gridTop, x/cellWidth
	if row >= rows || col >= cols {
		return 0, 0, false
	}
	return row, col, true
}

// statusLine formats the generation, population and performance summary
func statusLine(s model.Snapshot, stats *utils.Stats) string {
	gps, avg := stats.Rates()
	return fmt.Sprintf("Gen: %d | Living: %d | %s | %s | %.1f gen/sec | Avg Pop: %.1f",
		s.Generation, s.Population(), s.State, stats.Status(), gps, avg)
}

// shell is the terminal front end: it turns keys and clicks into controller
// commands and draws the snapshots the controller emits
type shell struct {
	screen  tcell.Screen
	ctrl    *sim.Controller
	stats   *utils.Stats
	latest  *sim.LatestSnapshot
	rng     model.Source
	pressed bool
}

// handleEvent applies one input event, returning errQuit when the user quits
func (sh *shell) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return sh.handleKey(ev)
	case *tcell.EventMouse:
		sh.handleMouse(ev)
	case *tcell.EventResize:
		sh.screen.Sync()
	}
	return nil
}

func (sh *shell) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return errQuit
	case tcell.KeyRune:
	default:
		return nil
	}

	switch ev.Rune() {
	case 'q':
		return errQuit
	case ' ':
		if sh.ctrl.State() == model.Running {
			sh.ctrl.Stop()
		} else {
			sh.ctrl.Start()
		}
	case 'n':
		sh.ctrl.Step()
	case 'c':
		sh.ctrl.Clear()
	case 'r':
		sh.ctrl.Randomize(sh.rng)
	}
	return nil
}

// handleMouse toggles the clicked cell on button press, ignoring drags and
// clicks outside the grid
func (sh *shell) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	wasDown := sh.pressed
	sh.pressed = down
	if !down || wasDown {
		return
	}

	snap := sh.ctrl.Snapshot()
	x, y := ev.Position()
	if row, col, ok := cellAt(x, y, snap.Rows(), snap.Cols()); ok {
		sh.ctrl.ToggleCell(row, col)
	}
}

// pollEvents feeds input events to handleEvent until quit or cancellation
func (sh *shell) pollEvents(ctx context.Context) error {
	for {
		ev := sh.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		if err := sh.handleEvent(ev); err != nil {
			return err
		}
	}
}

// renderLoop redraws whenever the controller emits a new snapshot
func (sh *shell) renderLoop(ctx context.Context) error {
	sh.draw(sh.ctrl.Snapshot())
	for {
		select {
		case <-ctx.Done():
			// wake pollEvents so the group can finish
			_ = sh.screen.PostEvent(tcell.NewEventInterrupt(nil))
			return nil
		case <-sh.latest.Updated():
			if snap, ok := sh.latest.Latest(); ok {
				sh.draw(snap)
			}
		}
	}
}

// draw renders the status lines and the grid
func (sh *shell) draw(s model.Snapshot) {
	sh.screen.Clear()
	drawText(sh.screen, 0, 0, statusStyle, statusLine(s, sh.stats))
	drawText(sh.screen, 0, 1, helpStyle, helpLine)

	for row := range s.Rows() {
		for col := range s.Cols() {
			style := deadStyle
			if s.Cells[row][col] {
				style = liveStyle
			}
			for i := range cellWidth {
				sh.screen.SetContent(col*cellWidth+i, gridTop+row, ' ', nil, style)
			}
		}
	}
	sh.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
