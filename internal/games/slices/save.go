package slices

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/slicedrop/internal/games/slices/core"
)

// saveVersion is bumped whenever SaveFile changes incompatibly.
const saveVersion = 1

// SaveFile is the persisted form of a session.
type SaveFile struct {
	Version int           `yaml:"version"`
	Mode    Mode          `yaml:"mode"`
	Level   int           `yaml:"level"` // 1-based
	Score   int           `yaml:"score"`
	Turns   int           `yaml:"turns"`
	Seed    uint64        `yaml:"seed"`
	Cursor  [2]int        `yaml:"cursor,flow"`
	State   core.Snapshot `yaml:"state"`
}

// Save encodes the session as YAML.
func (g *Game) Save() ([]byte, error) {
	if g.session == nil {
		return nil, fmt.Errorf("slices: no session to save")
	}
	snap, err := g.session.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("slices: snapshot: %w", err)
	}

	f := SaveFile{
		Version: saveVersion,
		Mode:    g.mode,
		Level:   g.levelIndex + 1,
		Score:   g.score,
		Turns:   g.turns,
		Seed:    g.seed,
		Cursor:  [2]int{g.cursorRow, g.cursorColumn},
		State:   snap,
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("slices: encode save: %w", err)
	}
	return data, nil
}

// Load replaces the session with a saved one. The save must come from the
// same mode.
func (g *Game) Load(data []byte) error {
	var f SaveFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("slices: decode save: %w", err)
	}
	if f.Version != saveVersion {
		return fmt.Errorf("slices: unsupported save version %d", f.Version)
	}
	if f.Mode != g.mode {
		return fmt.Errorf("slices: save is for %s mode, game is %s", f.Mode, g.mode)
	}

	state, err := core.FromSnapshot(f.State)
	if err != nil {
		return fmt.Errorf("slices: restore: %w", err)
	}
	rng, ok := state.RNG().(*core.Rand)
	if !ok {
		return fmt.Errorf("slices: restore: %w", core.ErrRNGNotPersistable)
	}

	g.rng = rng
	g.session = core.NewSession(state)
	g.seed = f.Seed
	g.levelIndex = max(0, f.Level-1)
	g.score = f.Score
	g.turns = f.Turns
	g.cursorRow = clampIndex(f.Cursor[0], state.Board.Rows)
	g.cursorColumn = clampIndex(f.Cursor[1], state.Board.Columns)
	g.slot = 0
	g.lastOutcome = nil
	g.paused = false
	g.levelCompleted = state.IsLevelCompleted()
	g.gameOver = state.IsGameOver()
	g.won = g.mode == ModeCampaign && g.levelCompleted && g.levelIndex >= CampaignLevels-1
	g.message = fmt.Sprintf("Resumed level %d", g.levelIndex+1)

	g.logger.Info("session restored", "level", f.Level, "score", f.Score, "turns", f.Turns)
	return nil
}

func clampIndex(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}
	return i
}
