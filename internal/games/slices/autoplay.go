package slices

import (
	"github.com/vovakirdan/slicedrop/internal/games/slices/core"
)

// Move is one candidate drop.
type Move struct {
	Piece  core.PieceID
	Row    int
	Column int
}

// moveScore ranks trial outcomes: completions first, then moved slices,
// then fewer pieces left on the board.
type moveScore struct {
	completed int
	moved     int
	occupied  int
}

func (a moveScore) better(b moveScore) bool {
	if a.completed != b.completed {
		return a.completed > b.completed
	}
	if a.moved != b.moved {
		return a.moved > b.moved
	}
	return a.occupied < b.occupied
}

// ChooseMove picks a greedy drop by trying every deck piece on every empty
// tile against a copy of the state. Ties keep the first candidate in deck
// then row-major order, so the choice is deterministic.
// Returns false when no drop is possible.
func ChooseMove(s *core.State) (Move, bool) {
	var best Move
	var bestScore moveScore
	found := false

	for _, id := range s.DeckIDs() {
		for row := 0; row < s.Board.Rows; row++ {
			for column := 0; column < s.Board.Columns; column++ {
				if s.Board.Occupied(row, column) {
					continue
				}
				trial := s.Clone()
				out, err := trial.DropPiece(id, row, column)
				if err != nil {
					continue
				}

				score := moveScore{completed: out.Completed, occupied: trial.Board.OccupiedCount()}
				for _, t := range out.Transfers {
					score.moved += t.Amount
				}
				if !found || score.better(bestScore) {
					best = Move{Piece: id, Row: row, Column: column}
					bestScore = score
					found = true
				}
			}
		}
	}
	return best, found
}

// RunResult summarizes a headless run.
type RunResult struct {
	Turns     int
	Completed int
	Score     int
	XP        int
	GameOver  bool
	Level     bool // Level completed
}

// Autoplay drives a state with ChooseMove until the game or level ends or
// maxTurns is reached. onTurn, if non-nil, is called after every turn.
func Autoplay(s *core.State, scorePerPiece, maxTurns int, onTurn func(Move, core.TurnOutcome)) RunResult {
	var res RunResult
	for res.Turns < maxTurns {
		if s.IsGameOver() || s.IsLevelCompleted() {
			break
		}
		mv, ok := ChooseMove(s)
		if !ok {
			break
		}
		out, err := s.DropPiece(mv.Piece, mv.Row, mv.Column)
		if err != nil {
			break
		}
		res.Turns++
		res.Completed += out.Completed
		if onTurn != nil {
			onTurn(mv, out)
		}
	}
	res.Score = res.Completed * scorePerPiece
	res.XP = s.XP()
	res.GameOver = s.IsGameOver()
	res.Level = s.IsLevelCompleted()
	return res
}
