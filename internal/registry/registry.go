// Package registry provides a global registry for game factories.
// Game modes register themselves in init() functions, so the CLI and the
// SSH server can list and start them by id.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/slicedrop/internal/core"
)

// Game is the interface the platform drives. Implementations hold pure
// logic; the platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh session.
	Reset(cfg core.RuntimeConfig)

	// Step consumes the input of one frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current status (score, xp, game over).
	State() core.GameState
}

// Saver is implemented by games whose sessions can be persisted and resumed.
type Saver interface {
	Game

	// Save encodes the full session.
	Save() ([]byte, error)

	// Load replaces the session with a previously saved one.
	Load(data []byte) error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID       string
	Title    string
	Saveable bool
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	_, saveable := g.(Saver)
	factories[id] = f
	infos[id] = GameInfo{ID: id, Title: g.Title(), Saveable: saveable}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
