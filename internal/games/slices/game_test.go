package slices

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/slicedrop/internal/config"
	platformcore "github.com/vovakirdan/slicedrop/internal/core"
	"github.com/vovakirdan/slicedrop/internal/games/slices/core"
)

func newTestGame(mode Mode, seed uint64) *Game {
	g := NewWithConfig(mode, config.DefaultSlicesConfig(), nil)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed})
	return g
}

func inputOf(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// firstTile returns the first tile matching the occupancy wanted.
func firstTile(t *testing.T, g *Game, occupied bool) (int, int) {
	t.Helper()
	row, column := -1, -1
	g.Session().View(func(s *core.State) {
		for r := 0; r < s.Board.Rows && row < 0; r++ {
			for c := 0; c < s.Board.Columns; c++ {
				if s.Board.Occupied(r, c) == occupied {
					row, column = r, c
					break
				}
			}
		}
	})
	if row < 0 {
		t.Fatalf("no tile with occupied=%v", occupied)
	}
	return row, column
}

func TestGameReset(t *testing.T) {
	g := newTestGame(ModeCampaign, 42)
	st := g.State()

	if st.Level != 1 || st.Score != 0 || st.XP != 0 || st.MaxXP != 100 {
		t.Errorf("state after reset = %+v", st)
	}
	if st.GameOver || st.Paused || st.LevelCompleted {
		t.Errorf("flags after reset = %+v", st)
	}
	if g.deckLen() != 3 {
		t.Errorf("deck holds %d pieces, want 3", g.deckLen())
	}
	if g.ID() != "slices" || NewEndless().ID() != "slices_endless" {
		t.Error("unexpected game ids")
	}
}

func TestCursorWraps(t *testing.T) {
	g := newTestGame(ModeCampaign, 1)
	g.cursorRow, g.cursorColumn = 0, 0

	g.Step(inputOf(platformcore.ActionUp))
	g.Step(inputOf(platformcore.ActionLeft))
	if row, column := g.Cursor(); row != 5 || column != 3 {
		t.Errorf("cursor = (%d,%d), want (5,3)", row, column)
	}

	g.Step(inputOf(platformcore.ActionDown))
	g.Step(inputOf(platformcore.ActionRight))
	if row, column := g.Cursor(); row != 0 || column != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", row, column)
	}
}

func TestSlotSelection(t *testing.T) {
	g := newTestGame(ModeCampaign, 1)

	g.Step(inputOf(platformcore.ActionSlot3))
	if g.slot != 2 {
		t.Errorf("slot = %d, want 2", g.slot)
	}
	g.Step(inputOf(platformcore.ActionNextPiece))
	if g.slot != 0 {
		t.Errorf("slot after wrap = %d, want 0", g.slot)
	}
	g.Step(inputOf(platformcore.ActionPrevPiece))
	if g.slot != 2 {
		t.Errorf("slot after reverse wrap = %d, want 2", g.slot)
	}
}

func TestDropOnOccupiedTile(t *testing.T) {
	g := newTestGame(ModeCampaign, 5)
	g.cursorRow, g.cursorColumn = firstTile(t, g, true)

	res := g.Step(inputOf(platformcore.ActionDrop))
	if res.Message != "Tile is occupied" {
		t.Errorf("message = %q", res.Message)
	}
	if res.State.Turns != 0 {
		t.Errorf("rejected drop counted as a turn")
	}
}

func TestDropOnEmptyTile(t *testing.T) {
	g := newTestGame(ModeCampaign, 5)
	g.cursorRow, g.cursorColumn = firstTile(t, g, false)

	res := g.Step(inputOf(platformcore.ActionDrop))
	if res.State.Turns != 1 {
		t.Fatalf("turns = %d, want 1 (message %q)", res.State.Turns, res.Message)
	}
	if res.Message == "" {
		t.Error("turn produced no message")
	}
	if g.deckLen() == 0 {
		t.Error("deck should never be empty after a turn")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(ModeCampaign, 5)
	row, column := g.Cursor()

	g.Step(inputOf(platformcore.ActionPause))
	g.Step(inputOf(platformcore.ActionUp, platformcore.ActionDrop))
	if r, c := g.Cursor(); r != row || c != column || g.turns != 0 {
		t.Error("input applied while paused")
	}
	if !g.State().Paused {
		t.Error("game should report paused")
	}
	g.Step(inputOf(platformcore.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

// playGreedy drives the game through its input interface using ChooseMove.
func playGreedy(t *testing.T, g *Game, turns int) {
	t.Helper()
	for i := 0; i < turns && !g.State().Finished(); i++ {
		if g.levelCompleted {
			g.Step(inputOf(platformcore.ActionDrop))
			continue
		}
		var mv Move
		ok := false
		g.Session().View(func(s *core.State) {
			mv, ok = ChooseMove(s)
		})
		if !ok {
			t.Fatal("no move available on a running game")
		}
		g.Session().View(func(s *core.State) {
			for slot, id := range s.DeckIDs() {
				if id == mv.Piece {
					g.slot = slot
				}
			}
		})
		g.cursorRow, g.cursorColumn = mv.Row, mv.Column
		g.Step(inputOf(platformcore.ActionDrop))
	}
}

func TestDeterministicSessions(t *testing.T) {
	a := newTestGame(ModeEndless, 777)
	b := newTestGame(ModeEndless, 777)
	playGreedy(t, a, 15)
	playGreedy(t, b, 15)

	sa, err := a.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	sb, _ := b.Save()
	if !bytes.Equal(sa, sb) {
		t.Error("same seed and inputs produced different sessions")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := newTestGame(ModeCampaign, 31)
	playGreedy(t, g, 6)

	data, err := g.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	restored := NewWithConfig(ModeCampaign, config.DefaultSlicesConfig(), nil)
	restored.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if err := restored.Load(data); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	again, err := restored.Save()
	if err != nil {
		t.Fatalf("Save after Load failed: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("save changed across load:\n%s\n---\n%s", data, again)
	}
	if restored.State().Score != g.State().Score || restored.State().Turns != g.State().Turns {
		t.Error("score or turns lost")
	}

	// Both continue identically.
	playGreedy(t, g, 3)
	playGreedy(t, restored, 3)
	s1, _ := g.Save()
	s2, _ := restored.Save()
	if !bytes.Equal(s1, s2) {
		t.Error("restored session diverged")
	}
}

func TestLoadRejectsOtherMode(t *testing.T) {
	data, err := newTestGame(ModeEndless, 3).Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := newTestGame(ModeCampaign, 3).Load(data); err == nil {
		t.Error("campaign game loaded an endless save")
	}
	if err := newTestGame(ModeCampaign, 3).Load([]byte("version: [")); err == nil {
		t.Error("garbage accepted")
	}
}

func TestEndlessLevelScaling(t *testing.T) {
	g := newTestGame(ModeEndless, 9)
	if r := g.Rules(10); r.MaxXP != 200 || r.DeckSize != 2 {
		t.Errorf("Rules(10) = %+v", r)
	}

	g.score, g.turns = 150, 20
	g.levelCompleted = true
	g.Step(inputOf(platformcore.ActionDrop))

	st := g.State()
	if st.Level != 2 || st.LevelCompleted || st.XP != 0 {
		t.Errorf("state after advancing = %+v", st)
	}
	if st.Score != 150 || st.Turns != 20 {
		t.Error("advancing a level should keep score and turns")
	}
	if st.MaxXP != g.Rules(1).MaxXP {
		t.Errorf("MaxXP = %d, want %d", st.MaxXP, g.Rules(1).MaxXP)
	}
}

func TestCampaignFinalLevelWins(t *testing.T) {
	g := newTestGame(ModeCampaign, 9)
	g.levelIndex = CampaignLevels - 1
	g.apply(core.TurnOutcome{LevelCompleted: true, NewlyLevelCompleted: true})

	st := g.State()
	if !st.GameOver || !g.won {
		t.Errorf("final level completion should end the campaign: %+v", st)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(ModeCampaign, 2)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Slice Drop") || !strings.Contains(out, "Deck") {
		t.Errorf("render missing title or deck:\n%s", out)
	}
	if !strings.Contains(out, "0/100") {
		t.Errorf("render missing xp:\n%s", out)
	}

	row, column := g.Cursor()
	l := computeLayout(g.Rules(0))
	x := (80-l.width)/2 + column*l.cellW
	y := l.boardY + row*cellH
	if c := screen.GetCell(x, y); c.Color != platformcore.ColorCyan {
		t.Errorf("cursor frame at (%d,%d) = %+v, want cyan", x, y, c)
	}

	small := platformcore.NewScreen(20, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Errorf("small screen render:\n%s", small.String())
	}
}

func TestAutoplayTerminates(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		s := core.NewState(core.DefaultRules(), core.NewRand(seed))
		s.Restart()

		turns := 0
		res := Autoplay(s, 50, 300, func(Move, core.TurnOutcome) { turns++ })
		if res.Turns != turns {
			t.Errorf("seed %d: callback ran %d times for %d turns", seed, turns, res.Turns)
		}
		if res.Score != res.Completed*50 {
			t.Errorf("seed %d: score %d for %d completions", seed, res.Score, res.Completed)
		}
		if res.Turns < 300 && !res.GameOver && !res.Level {
			t.Errorf("seed %d: stopped after %d turns without an ending", seed, res.Turns)
		}
	}
}

func TestStartAt(t *testing.T) {
	g := NewWithConfig(ModeCampaign, config.DefaultSlicesConfig(), nil)
	g.StartAt(3)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 4})
	if g.Level() != 3 {
		t.Errorf("Level() = %d, want 3", g.Level())
	}
	if g.State().MaxXP != g.Rules(2).MaxXP {
		t.Errorf("MaxXP = %d, want level 3 target %d", g.State().MaxXP, g.Rules(2).MaxXP)
	}

	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 4})
	if g.Level() != 1 {
		t.Errorf("StartAt should apply once, got level %d", g.Level())
	}

	e := NewWithConfig(ModeEndless, config.DefaultSlicesConfig(), nil)
	e.StartAt(3)
	e.Reset(platformcore.RuntimeConfig{Seed: 4})
	if e.Level() != 1 {
		t.Errorf("endless mode ignores start levels, got %d", e.Level())
	}
}
