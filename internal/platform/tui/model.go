package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slicedrop/internal/core"
	"github.com/vovakirdan/slicedrop/internal/registry"
	"github.com/vovakirdan/slicedrop/internal/storage"
)

// DefaultAutosaveEvery is the number of turns between autosaves.
const DefaultAutosaveEvery = 5

// Options configures a play Model.
type Options struct {
	Store  *storage.Store
	Logger *log.Logger

	// SaveID is the save slot the session was loaded from. When set the game
	// is assumed to be loaded already and Init does not reset it.
	SaveID string

	// AutosaveEvery is the number of turns between autosaves. 0 disables.
	AutosaveEvery int
}

// savedMsg reports the result of a background save.
type savedMsg struct {
	id    string
	turns int
	err   error
}

// Model is the Bubble Tea model for playing one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	saveID        string
	resumed       bool
	autosaveEvery int
	savedTurns    int
	saving        bool
	status        string

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:         opts.Store,
		logger:        logger,
		config:        cfg,
		keyMapper:     NewKeyMapper(),
		inputFrame:    core.NewInputFrame(),
		saveID:        opts.SaveID,
		resumed:       opts.SaveID != "",
		autosaveEvery: opts.AutosaveEvery,
	}
	if m.resumed {
		m.gameState = game.State()
		m.savedTurns = m.gameState.Turns
	}
	return m
}

// Init starts the game unless it was resumed from a save.
func (m Model) Init() tea.Cmd {
	if !m.resumed {
		m.game.Reset(m.config)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Turn-based: a resize only changes the canvas, never the session.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case savedMsg:
		return m.handleSaved(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if m.saving {
			return m, nil
		}
		m.saving = true
		return m, m.saveCmd(true)
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Sequence(m.saveCmd(false), tea.Quit)
	}

	if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack &&
		(m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, m.saveCmd(false)
	}
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = uint64(time.Now().UnixNano())
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.saveID = ""
		m.savedTurns = 0
		m.status = ""
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}

	if m.gameState.GameOver && !m.scoreSaved {
		m.recordScore()
		m.scoreSaved = true
	} else if m.autosaveDue() {
		if cmd := m.saveCmd(false); cmd != nil {
			cmds = append(cmds, cmd)
			m.saving = true
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) autosaveDue() bool {
	return m.autosaveEvery > 0 &&
		!m.saving &&
		m.gameState.Turns > m.savedTurns &&
		m.gameState.Turns%m.autosaveEvery == 0
}

// recordScore stores the finished run and drops its save slot, which can
// no longer be resumed.
func (m *Model) recordScore() {
	st := m.gameState
	m.logger.Info("run finished", "game", m.game.ID(), "score", st.Score, "level", st.Level, "turns", st.Turns)
	if m.store == nil {
		return
	}

	if st.Score > 0 {
		if _, err := m.store.SaveScore(storage.ScoreEntry{
			GameID: m.game.ID(),
			Score:  st.Score,
			Level:  st.Level,
			Turns:  st.Turns,
		}); err != nil {
			m.logger.Error("cannot save score", "err", err)
		}
	}
	if m.saveID != "" {
		if err := m.store.DeleteSave(m.saveID); err != nil {
			m.logger.Warn("cannot delete finished save", "id", m.saveID, "err", err)
		}
		m.saveID = ""
	}
}

// saveCmd snapshots the session now and writes it in the background.
// Finished runs and games without save support are skipped.
func (m Model) saveCmd(manual bool) tea.Cmd {
	saver, ok := m.game.(registry.Saver)
	if !ok || m.store == nil || m.gameState.GameOver || m.gameState.Turns == 0 {
		if manual {
			return func() tea.Msg {
				return savedMsg{err: fmt.Errorf("nothing to save")}
			}
		}
		return nil
	}

	data, err := saver.Save()
	if err != nil {
		return func() tea.Msg { return savedMsg{err: err} }
	}

	store, id, gameID := m.store, m.saveID, m.game.ID()
	score, turns := m.gameState.Score, m.gameState.Turns
	name := fmt.Sprintf("%s L%d T%d", time.Now().Format("Jan 02 15:04"), m.gameState.Level, turns)
	return func() tea.Msg {
		if id == "" {
			newID, err := store.CreateSave(gameID, name, score, data)
			return savedMsg{id: newID, turns: turns, err: err}
		}
		return savedMsg{id: id, turns: turns, err: store.UpdateSave(id, score, data)}
	}
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.status = "Save failed: " + msg.err.Error()
		m.logger.Warn("save failed", "game", m.game.ID(), "err", msg.err)
		return m, nil
	}

	if m.gameState.GameOver {
		// The run ended while the write was in flight.
		if m.store != nil {
			if err := m.store.DeleteSave(msg.id); err != nil {
				m.logger.Warn("cannot delete finished save", "id", msg.id, "err", err)
			}
		}
		return m, nil
	}

	m.saveID = msg.id
	m.savedTurns = msg.turns
	m.status = "Saved " + shortID(msg.id)
	m.logger.Debug("session saved", "id", msg.id, "turns", msg.turns)
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	if m.status != "" && m.screen.Height() > 0 {
		x := m.screen.Width() - len(m.status) - 1
		m.screen.DrawTextColored(max(0, x), m.screen.Height()-1, m.status, core.ColorGray)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// SaveID returns the slot the session is currently saved to, if any.
func (m Model) SaveID() string {
	return m.saveID
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// ResumeGame creates the game stored in a save slot and loads the session.
// The id may be a unique prefix.
func ResumeGame(store *storage.Store, id string, cfg core.RuntimeConfig) (registry.Game, *storage.SaveSlot, error) {
	slot, err := store.LoadSave(id)
	if err != nil {
		return nil, nil, err
	}

	game, err := registry.Create(slot.GameID)
	if err != nil {
		return nil, nil, err
	}
	saver, ok := game.(registry.Saver)
	if !ok {
		return nil, nil, fmt.Errorf("game %q cannot be resumed", slot.GameID)
	}

	saver.Reset(cfg)
	if err := saver.Load(slot.Data); err != nil {
		return nil, nil, fmt.Errorf("cannot resume save %s: %w", shortID(slot.ID), err)
	}
	return saver, slot, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
