package slices

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/slicedrop/internal/core"
	"github.com/vovakirdan/slicedrop/internal/games/slices/core"
)

// Visual characters for rendering
const (
	SliceChar = '█'
	EmptyChar = '·'
)

// Layout constants
const (
	hudHeight    = 2 // title + progress
	footerHeight = 2 // message + key help
	cellH        = 3 // box top, slices, box bottom
	deckGap      = 3 // columns between board and deck panel
)

// sliceColors maps slice colors to screen colors.
var sliceColors = map[core.Color]platformcore.Color{
	core.ColorWhite:  platformcore.ColorWhite,
	core.ColorBlack:  platformcore.ColorBlack,
	core.ColorRed:    platformcore.ColorRed,
	core.ColorYellow: platformcore.ColorYellow,
	core.ColorGreen:  platformcore.ColorGreen,
	core.ColorBlue:   platformcore.ColorBlue,
}

// layout is the computed placement of the board and the deck panel.
type layout struct {
	cellW  int
	boardX int
	boardY int
	deckX  int
	width  int
	height int
}

func computeLayout(rules core.Rules) layout {
	l := layout{cellW: rules.MaxSlices + 2, boardY: hudHeight}
	boardW := rules.Columns * l.cellW
	deckW := l.cellW + 4
	l.width = boardW + deckGap + deckW
	l.height = hudHeight + rules.Rows*cellH + footerHeight
	l.deckX = boardW + deckGap
	return l
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *platformcore.Screen) {
	if g.session == nil {
		return
	}
	g.session.View(func(s *core.State) {
		g.render(dst, s)
	})
}

func (g *Game) render(dst *platformcore.Screen, s *core.State) {
	l := computeLayout(s.Rules)
	if dst.Width() < l.width || dst.Height() < l.height {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Terminal too small: need %dx%d", l.width, l.height))
		return
	}

	// Center horizontally
	offX := (dst.Width() - l.width) / 2
	l.boardX += offX
	l.deckX += offX

	g.renderHUD(dst, s, l)

	for row := 0; row < s.Board.Rows; row++ {
		for column := 0; column < s.Board.Columns; column++ {
			r := platformcore.NewRect(l.boardX+column*l.cellW, l.boardY+row*cellH, l.cellW, cellH)
			frame := platformcore.ColorGray
			if row == g.cursorRow && column == g.cursorColumn {
				frame = platformcore.ColorCyan
			}
			p, _ := s.Board.PieceAt(s.Pieces, row, column)
			drawPiece(dst, r, p, s.Rules.MaxSlices, frame)
		}
	}

	g.renderDeck(dst, s, l)
	g.renderFooter(dst, l.boardX, l.boardY+s.Board.Rows*cellH)
}

func (g *Game) renderHUD(dst *platformcore.Screen, s *core.State, l layout) {
	title := fmt.Sprintf("%s  Level %d  Score %d  Turn %d", g.Title(), g.levelIndex+1, g.score, g.turns)
	dst.DrawText(l.boardX, 0, title)

	barW := 20
	filled := int(s.Progress.Fraction() * float64(barW))
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barW-filled)
	dst.DrawText(l.boardX, 1, "XP [")
	dst.DrawTextColored(l.boardX+4, 1, bar, platformcore.ColorGreen)
	dst.DrawText(l.boardX+4+barW, 1, fmt.Sprintf("] %d/%d", s.Progress.XP, s.Progress.Max))
}

func (g *Game) renderDeck(dst *platformcore.Screen, s *core.State, l layout) {
	dst.DrawText(l.deckX, l.boardY, "Deck")
	for i, id := range s.Deck.IDs() {
		y := l.boardY + 1 + i*cellH
		label := fmt.Sprintf("%d", i+1)
		frame := platformcore.ColorGray
		if i == g.slot {
			frame = platformcore.ColorMagenta
			label = ">"
		}
		dst.DrawTextColored(l.deckX, y+1, label, frame)
		p, _ := s.Pieces.Get(id)
		drawPiece(dst, platformcore.NewRect(l.deckX+2, y, l.cellW, cellH), p, s.Rules.MaxSlices, frame)
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen, x, y int) {
	status := g.message
	switch {
	case g.paused:
		status = "PAUSED"
	case g.won:
		status = "You win! Press R to play again"
	case g.gameOver:
		status = "GAME OVER. Press R to restart"
	}
	dst.DrawTextColored(x, y, status, platformcore.ColorYellow)
	dst.DrawTextColored(x, y+1, "arrows move  1-3/tab piece  enter drop  p pause  q quit", platformcore.ColorGray)
}

// drawPiece draws one boxed piece: slices left to right, empty slots dotted.
func drawPiece(dst *platformcore.Screen, r platformcore.Rect, p *core.Piece, capacity int, frame platformcore.Color) {
	dst.DrawBox(r, frame)
	for i := 0; i < capacity; i++ {
		x, y := r.X+1+i, r.Y+1
		if p == nil || i >= p.Len() {
			dst.SetColored(x, y, EmptyChar, platformcore.ColorGray)
			continue
		}
		dst.SetColored(x, y, SliceChar, sliceColors[p.Slices[i]])
	}
}
