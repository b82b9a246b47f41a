package core

// Color is the foreground color of a screen cell. The terminal front end maps
// each value to an ANSI color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWhite
	ColorBlack
	ColorRed
	ColorYellow
	ColorGreen
	ColorBlue
	ColorCyan    // cursor
	ColorMagenta // selected deck slot
	ColorGray    // frames and empty slots
)
