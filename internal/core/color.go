package core

// Color is a terminal foreground color for a screen cell.
// Platforms map it to ANSI 256-color codes.
type Color uint8

// Palette used by the starmap renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorOrange
	ColorPink
	ColorPurple
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
)
