package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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

// blockPalette is the color cycle used for falling blocks.
var blockPalette = []Color{
	ColorBrightCyan,
	ColorBrightYellow,
	ColorBrightMagenta,
	ColorBrightGreen,
	ColorBrightRed,
	ColorBrightBlue,
	ColorOrange,
	ColorCyan,
	ColorYellow,
	ColorMagenta,
}

// PaletteColor maps a 1-based palette index to a display color.
// Index 0 (empty) maps to ColorDefault; indices past the palette wrap around.
func PaletteColor(index int) Color {
	if index <= 0 {
		return ColorDefault
	}
	return blockPalette[(index-1)%len(blockPalette)]
}
