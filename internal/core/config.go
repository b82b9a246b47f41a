package core

// RuntimeConfig is passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frames per second of the front end
	Seed     uint64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score          int
	Level          int // 1-based
	XP             int
	MaxXP          int
	Turns          int
	GameOver       bool
	LevelCompleted bool
	Paused         bool
}

// Finished returns true when the session can no longer continue as is.
func (s GameState) Finished() bool {
	return s.GameOver || s.LevelCompleted
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State   GameState
	Message string // Short status line for the last turn, empty if nothing happened
}
