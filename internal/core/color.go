package core

// Color is the foreground of a screen cell. The platform maps each value
// to a terminal colour; games only pick from this palette.
type Color uint8

// Palette used by the flappy renderer.
const (
	ColorDefault      Color = iota // Message box background
	ColorRed                       // Dead character, game over title
	ColorGreen                     // Obstacle body
	ColorYellow                    // Ground top line
	ColorCyan                      // Pause title
	ColorWhite                     // Score and message text
	ColorBrightGreen               // Obstacle caps
	ColorBrightYellow              // Live character
	ColorOrange                    // Ground fill
	ColorGray                      // Passed obstacles, status line

	numColors
)

// Colors returns every palette entry in order.
func Colors() []Color {
	out := make([]Color, 0, numColors)
	for c := range numColors {
		out = append(out, c)
	}
	return out
}
