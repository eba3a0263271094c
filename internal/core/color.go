package core

import "github.com/vovakirdan/autostack/internal/tetromino"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// pieceColors follows the usual guideline palette.
var pieceColors = [tetromino.Count]Color{
	tetromino.I: ColorBrightCyan,
	tetromino.O: ColorBrightYellow,
	tetromino.T: ColorMagenta,
	tetromino.S: ColorBrightGreen,
	tetromino.Z: ColorBrightRed,
	tetromino.J: ColorBlue,
	tetromino.L: ColorOrange,
}

// PieceColor returns the display color of a piece type.
func PieceColor(t tetromino.Type) Color {
	if !t.Valid() {
		return ColorDefault
	}
	return pieceColors[t]
}
