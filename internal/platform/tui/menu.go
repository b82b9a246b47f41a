package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/slicedrop/internal/core"
	"github.com/vovakirdan/slicedrop/internal/games/slices"
	"github.com/vovakirdan/slicedrop/internal/registry"
	"github.com/vovakirdan/slicedrop/internal/storage"
)

// maxResumeItems limits how many saved sessions the menu offers.
const maxResumeItems = 5

// levelStarter is implemented by games that can begin at a chosen level.
type levelStarter interface {
	StartAt(level int)
}

// MenuItem is one selectable menu entry: a new game or a saved session.
type MenuItem struct {
	GameID string
	Title  string
	SaveID string // Resume this save slot when set
	Levels int    // Selectable starting levels, 0 for none
}

// MenuModel is the Bubble Tea model for the game picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	level          int // 1-based starting level for the item under the cursor
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
	notice         string
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		level:     1,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.items = m.buildItems()
	return m
}

func (m MenuModel) buildItems() []MenuItem {
	games := registry.List()
	titles := make(map[string]string, len(games))
	items := make([]MenuItem, 0, len(games)+maxResumeItems)

	for _, g := range games {
		titles[g.ID] = g.Title
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if g.ID == "slices" {
			item.Levels = slices.CampaignLevels
		}
		items = append(items, item)
	}

	if m.store == nil {
		return items
	}
	saves, err := m.store.ListSaves("")
	if err != nil {
		return items
	}
	for i, s := range saves {
		if i == maxResumeItems {
			break
		}
		title, ok := titles[s.GameID]
		if !ok {
			continue
		}
		items = append(items, MenuItem{
			GameID: s.GameID,
			Title:  fmt.Sprintf("Resume %s: %s (score %d)", title, s.Name, s.Score),
			SaveID: s.ID,
		})
	}
	return items
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.level = 1
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.level = 1
		}

	case MenuActionLeft:
		if m.current().Levels > 0 {
			m.level = core.Wrap(m.level-2, m.current().Levels) + 1
		}

	case MenuActionRight:
		if m.current().Levels > 0 {
			m.level = core.Wrap(m.level, m.current().Levels) + 1
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionDelete:
		m.deleteSave()

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) current() MenuItem {
	if len(m.items) == 0 {
		return MenuItem{}
	}
	return m.items[m.cursor]
}

func (m *MenuModel) deleteSave() {
	item := m.current()
	if item.SaveID == "" || m.store == nil {
		return
	}
	if err := m.store.DeleteSave(item.SaveID); err != nil {
		m.notice = "Cannot delete save: " + err.Error()
		return
	}
	m.items = m.buildItems()
	m.cursor = core.Clamp(m.cursor, 0, len(m.items)-1)
	m.notice = "Save deleted"
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S L I C E   D R O P"), m.width, 19))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width, 0))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = "> " + item.Title
			if item.Levels > 0 {
				line += fmt.Sprintf("  < Level %d >", m.level)
			}
			b.WriteString(centerText(activeStyle.Render(line), m.width, len(line)))
		} else {
			b.WriteString(centerText(line, m.width, 0))
		}
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.notice, m.width, 0))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Level  |  Enter: Select  |  X: Delete save  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width, len(controls)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Level returns the chosen starting level.
func (m MenuModel) Level() int {
	return m.level
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the score table.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width. visible is the printed
// width when text carries escape sequences; 0 means len(text).
func centerText(text string, width, visible int) string {
	if visible == 0 {
		visible = len(text)
	}
	if visible >= width {
		return text
	}
	padding := (width - visible) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	SaveID          string
	Level           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.selected.GameID
		result.SaveID = m.selected.SaveID
		if m.selected.Levels > 0 {
			result.Level = m.level
		}
	}
	return result
}

// Start creates the game for a menu result: a resumed save or a new game at
// the chosen level. Returns the save id the session is bound to.
func (r MenuResult) Start(store *storage.Store) (registry.Game, string, error) {
	if r.SaveID != "" {
		if store == nil {
			return nil, "", fmt.Errorf("no save database")
		}
		game, slot, err := ResumeGame(store, r.SaveID, r.Config)
		if err != nil {
			return nil, "", err
		}
		return game, slot.ID, nil
	}

	game, err := registry.Create(r.GameID)
	if err != nil {
		return nil, "", err
	}
	if ls, ok := game.(levelStarter); ok && r.Level > 1 {
		ls.StartAt(r.Level)
	}
	return game, "", nil
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
