package core

import (
	"fmt"
	"strings"
)

// FormatPiece renders a piece padded to capacity, e.g. "RRB...".
func FormatPiece(p *Piece, capacity int) string {
	var sb strings.Builder
	if p != nil {
		sb.WriteString(p.String())
	}
	for sb.Len() < capacity {
		sb.WriteByte('.')
	}
	return sb.String()
}

// RenderASCII draws the board, deck and progress as plain text.
// Empty cells are shown as blanks of the piece width.
func RenderASCII(s *State) string {
	width := s.Rules.MaxSlices
	blank := strings.Repeat(" ", width)

	var sb strings.Builder
	for row := 0; row < s.Board.Rows; row++ {
		for column := 0; column < s.Board.Columns; column++ {
			cell := blank
			if p, ok := s.Board.PieceAt(s.Pieces, row, column); ok {
				cell = FormatPiece(p, width)
			}
			sb.WriteString("[" + cell + "]")
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("deck:")
	for i, id := range s.Deck.IDs() {
		p, _ := s.Pieces.Get(id)
		fmt.Fprintf(&sb, " %d:%s", i+1, FormatPiece(p, 0))
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "xp: %d/%d\n", s.Progress.XP, s.Progress.Max)
	return sb.String()
}
