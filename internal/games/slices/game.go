// Package slices provides the slice-transfer puzzle for the platform: a
// cursor over the board, a deck slot selection, and turn sequencing on top
// of the simulation core.
package slices

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slicedrop/internal/config"
	platformcore "github.com/vovakirdan/slicedrop/internal/core"
	"github.com/vovakirdan/slicedrop/internal/games/slices/core"
	"github.com/vovakirdan/slicedrop/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// CampaignLevels is the number of levels in campaign mode.
const CampaignLevels = 5

// Game implements the slice puzzle.
type Game struct {
	mode       Mode
	cfg        config.SlicesConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger

	rng     *core.Rand
	session *core.Session
	seed    uint64

	levelIndex int
	score      int
	turns      int

	// Selection state
	cursorRow    int
	cursorColumn int
	slot         int

	// Status
	message        string
	lastOutcome    *core.TurnOutcome
	gameOver       bool
	levelCompleted bool
	won            bool
	paused         bool

	screenW int
	screenH int
	startAt int
}

// Package-level configuration shared by every new game instance.
var (
	defaultsMu    sync.RWMutex
	defaultConfig = config.DefaultSlicesConfig()
	defaultLogger = log.New(io.Discard)
	startLevel    int
)

// Configure sets the configuration and logger used by games created afterwards.
// A nil logger discards output.
func Configure(cfg config.SlicesConfig, logger *log.Logger) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	defaultConfig = cfg
	if logger == nil {
		logger = log.New(io.Discard)
	}
	defaultLogger = logger
}

// SetStartLevel sets the starting level (1-indexed). 0 means start from beginning.
func SetStartLevel(level int) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	startLevel = level
}

func init() {
	registry.Register("slices", func() registry.Game {
		return New()
	})
	registry.Register("slices_endless", func() registry.Game {
		return NewEndless()
	})
}

// StartAt makes the next Reset begin at the given 1-based campaign level.
// It takes precedence over SetStartLevel.
func (g *Game) StartAt(level int) {
	g.startAt = level
}

// New creates a campaign mode game.
func New() *Game {
	return newGame(ModeCampaign)
}

// NewEndless creates an endless mode game.
func NewEndless() *Game {
	return newGame(ModeEndless)
}

func newGame(mode Mode) *Game {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return NewWithConfig(mode, defaultConfig, defaultLogger)
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(mode Mode, cfg config.SlicesConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		mode:       mode,
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     logger.With("game", string(mode)),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "slices_endless"
	}
	return "slices"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Slice Drop (Endless)"
	}
	return "Slice Drop"
}

// Reset starts a fresh session.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.seed = cfg.Seed
	g.rng = core.NewRand(cfg.Seed)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.score = 0
	g.turns = 0
	g.gameOver = false
	g.won = false
	g.paused = false

	g.levelIndex = 0
	start := g.startAt
	g.startAt = 0
	if g.mode == ModeCampaign {
		defaultsMu.Lock()
		if start == 0 {
			start = startLevel
		}
		startLevel = 0 // Reset after use
		defaultsMu.Unlock()
		if start > 0 && start <= CampaignLevels {
			g.levelIndex = start - 1
		}
	}

	g.loadLevel()
	g.logger.Info("session started", "seed", cfg.Seed, "level", g.levelIndex+1)
}

// Rules returns the simulation rules for a zero-based level.
func (g *Game) Rules(levelIndex int) core.Rules {
	return core.Rules{
		Rows:              g.cfg.Board.Rows,
		Columns:           g.cfg.Board.Columns,
		MaxSlices:         g.cfg.Pieces.MaxSlices,
		DeckSize:          g.difficulty.DeckSize(g.cfg.Deck.Size, levelIndex),
		MaxColorsPerPiece: g.cfg.Pieces.MaxColors,
		XPPerPiece:        g.cfg.Progression.XPPerPiece,
		MaxXP:             g.difficulty.MaxXP(g.cfg.Progression.MaxXP, levelIndex),
	}
}

// loadLevel deals a new board for the current level. The random source
// carries over so a seed reproduces the whole run.
func (g *Game) loadLevel() {
	state := core.NewState(g.Rules(g.levelIndex), g.rng)
	state.Restart()
	g.session = core.NewSession(state)

	g.levelCompleted = false
	g.lastOutcome = nil
	g.slot = 0
	g.cursorRow = state.Rules.Rows / 2
	g.cursorColumn = state.Rules.Columns / 2
	g.message = fmt.Sprintf("Level %d: reach %d XP", g.levelIndex+1, state.Rules.MaxXP)
}

// Step consumes the input of one frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionPause) && !g.finished() {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver || g.won {
		return platformcore.StepResult{State: g.State()}
	}

	if g.levelCompleted {
		if in.Has(platformcore.ActionDrop) || in.Has(platformcore.ActionRestart) {
			g.advanceLevel()
		}
		return platformcore.StepResult{State: g.State(), Message: g.message}
	}

	g.moveCursor(in)
	g.selectSlot(in)

	msg := ""
	if in.Has(platformcore.ActionDrop) {
		msg = g.drop()
	}
	return platformcore.StepResult{State: g.State(), Message: msg}
}

func (g *Game) finished() bool {
	return g.gameOver || g.won
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	var rows, columns int
	g.session.View(func(s *core.State) {
		rows, columns = s.Board.Rows, s.Board.Columns
	})

	switch {
	case in.Has(platformcore.ActionUp):
		g.cursorRow = platformcore.Wrap(g.cursorRow-1, rows)
	case in.Has(platformcore.ActionDown):
		g.cursorRow = platformcore.Wrap(g.cursorRow+1, rows)
	}
	switch {
	case in.Has(platformcore.ActionLeft):
		g.cursorColumn = platformcore.Wrap(g.cursorColumn-1, columns)
	case in.Has(platformcore.ActionRight):
		g.cursorColumn = platformcore.Wrap(g.cursorColumn+1, columns)
	}
}

func (g *Game) selectSlot(in platformcore.InputFrame) {
	deckLen := g.deckLen()
	if deckLen == 0 {
		return
	}

	for a := platformcore.ActionSlot1; a <= platformcore.ActionSlot3; a++ {
		if slot, ok := a.SlotIndex(); ok && in.Has(a) && slot < deckLen {
			g.slot = slot
		}
	}
	switch {
	case in.Has(platformcore.ActionNextPiece):
		g.slot = platformcore.Wrap(g.slot+1, deckLen)
	case in.Has(platformcore.ActionPrevPiece):
		g.slot = platformcore.Wrap(g.slot-1, deckLen)
	}
}

func (g *Game) deckLen() int {
	n := 0
	g.session.View(func(s *core.State) {
		n = s.Deck.Len()
	})
	return n
}

// drop plays the selected deck piece on the cursor tile.
func (g *Game) drop() string {
	var id core.PieceID
	ok := false
	g.session.View(func(s *core.State) {
		id, ok = s.Deck.At(g.slot)
	})
	if !ok {
		g.message = "No piece selected"
		return g.message
	}

	out, err := g.session.Drop(id, g.cursorRow, g.cursorColumn)
	if err != nil {
		g.message = dropErrorMessage(err)
		g.logger.Debug("drop rejected", "piece", id, "row", g.cursorRow, "column", g.cursorColumn, "err", err)
		return g.message
	}

	g.apply(out)
	return g.message
}

// apply folds a turn outcome into the session status.
func (g *Game) apply(out core.TurnOutcome) {
	g.turns++
	g.score += out.Completed * g.cfg.Progression.ScorePerPiece
	g.lastOutcome = &out
	g.slot = platformcore.Clamp(g.slot, 0, max(0, g.deckLen()-1))

	g.logger.Debug("turn",
		"turn", g.turns,
		"piece", out.Piece,
		"row", out.Row,
		"column", out.Column,
		"transfers", len(out.Transfers),
		"passes", out.Passes,
		"completed", out.Completed,
		"xp_gained", out.XPGained,
	)

	g.message = turnMessage(out)

	switch {
	case out.LevelCompleted:
		g.levelCompleted = true
		if g.mode == ModeCampaign && g.levelIndex >= CampaignLevels-1 {
			g.won = true
			g.message = "All levels cleared!"
		} else {
			g.message = fmt.Sprintf("Level %d complete! Press Enter", g.levelIndex+1)
		}
		g.logger.Info("level completed", "level", g.levelIndex+1, "score", g.score, "turns", g.turns)
	case out.GameOver:
		g.gameOver = true
		g.message = "Board full. Game over"
		g.logger.Info("game over", "level", g.levelIndex+1, "score", g.score, "turns", g.turns)
	}
}

// advanceLevel moves to the next level, keeping score and turn count.
func (g *Game) advanceLevel() {
	g.levelIndex++
	g.loadLevel()
}

func turnMessage(out core.TurnOutcome) string {
	moved := 0
	for _, t := range out.Transfers {
		moved += t.Amount
	}
	switch {
	case out.Completed > 0:
		return fmt.Sprintf("%d piece(s) completed, +%d XP", out.Completed, out.XPGained)
	case moved > 0:
		return fmt.Sprintf("%d slice(s) moved", moved)
	case out.BoardRefilled:
		return "Board cleared, new pieces dealt"
	default:
		return "No transfer"
	}
}

func dropErrorMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrTileOccupied):
		return "Tile is occupied"
	case errors.Is(err, core.ErrOutOfBounds):
		return "Outside the board"
	case errors.Is(err, core.ErrUnknownPiece):
		return "Piece is not in the deck"
	default:
		return err.Error()
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Score:          g.score,
		Turns:          g.turns,
		Level:          g.levelIndex + 1,
		GameOver:       g.gameOver || g.won,
		LevelCompleted: g.levelCompleted,
		Paused:         g.paused,
	}
	if g.session != nil {
		g.session.View(func(s *core.State) {
			st.XP = s.XP()
			st.MaxXP = s.Rules.MaxXP
		})
	}
	return st
}

// Message returns the status line of the last step.
func (g *Game) Message() string {
	return g.message
}

// Cursor returns the cursor tile.
func (g *Game) Cursor() (row, column int) {
	return g.cursorRow, g.cursorColumn
}

// Level returns the 1-based level number.
func (g *Game) Level() int {
	return g.levelIndex + 1
}

// Session exposes the simulation for read access by tools and tests.
func (g *Game) Session() *core.Session {
	return g.session
}
