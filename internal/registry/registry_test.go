package registry

import (
	"testing"

	"github.com/vovakirdan/slicedrop/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

type stubSaver struct{ stubGame }

func (g *stubSaver) Save() ([]byte, error) { return nil, nil }
func (g *stubSaver) Load([]byte) error     { return nil }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })
	Register("stub_b", func() Game { return &stubSaver{stubGame{id: "stub_b"}} })

	if !Exists("stub_a") || Exists("stub_missing") {
		t.Fatal("Exists reported the wrong registrations")
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, ok := g.(Saver); !ok {
		t.Error("created game lost its Saver implementation")
	}
	if _, err := Create("stub_missing"); err == nil {
		t.Error("Create of an unknown id should fail")
	}

	infos := map[string]GameInfo{}
	for _, info := range List() {
		infos[info.ID] = info
	}
	if infos["stub_a"].Saveable || !infos["stub_b"].Saveable {
		t.Errorf("Saveable flags wrong: %+v", infos)
	}
	if infos["stub_a"].Title != "Stub stub_a" {
		t.Errorf("title = %q", infos["stub_a"].Title)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
