package render

import "github.com/gdamore/tcell/v2"

// Base colors
var (
	RgbBackground  = tcell.NewRGBColor(8, 10, 24)    // Night sky
	RgbStatusText  = tcell.NewRGBColor(200, 200, 220) // HUD text
	RgbStatusDim   = tcell.NewRGBColor(110, 110, 140) // HUD labels
	RgbDeadline    = tcell.NewRGBColor(120, 30, 60)   // Deadline rule
	RgbTyped       = tcell.NewRGBColor(90, 255, 140)  // Completed prefix of the target
	RgbInputBar    = tcell.NewRGBColor(30, 34, 60)    // Input bar background
	RgbInputText   = tcell.NewRGBColor(255, 255, 255) // Typed buffer
	RgbCompleted   = tcell.NewRGBColor(60, 140, 90)   // Completed word during grace
	RgbMissed      = tcell.NewRGBColor(170, 40, 40)   // Missed word during grace
	RgbOverlayBg   = tcell.NewRGBColor(20, 20, 40)    // Pause and game over panels
	RgbOverlayText = tcell.NewRGBColor(230, 230, 255) // Panel text
	RgbMessage     = tcell.NewRGBColor(255, 210, 90)  // Effect notices
	RgbDefaultWord = tcell.NewRGBColor(70, 215, 180)  // Words without a palette color
)

// WordColor parses a word's hex color, falling back to the default word color
func WordColor(hex string) tcell.Color {
	if hex == "" {
		return RgbDefaultWord
	}
	c := tcell.GetColor(hex)
	if c == tcell.ColorDefault {
		return RgbDefaultWord
	}
	return c
}

// GetLifeMeterColor returns the color for a position in the life meter gradient
// progress is 0.0 to 1.0 from empty to full: red through yellow to green
func GetLifeMeterColor(progress float64) tcell.Color {
	if progress <= 0.0 {
		return tcell.NewRGBColor(0, 0, 0)
	}
	if progress > 1.0 {
		progress = 1.0
	}

	if progress < 0.5 { // Red to Yellow
		t := progress / 0.5
		r := int32(200 + (255-200)*t)
		g := int32(30 + (215-30)*t)
		return tcell.NewRGBColor(r, g, 30)
	}
	// Yellow to Green
	t := (progress - 0.5) / 0.5
	r := int32(255 - (255-40)*t)
	g := int32(215 - (215-200)*t)
	b := int32(30 + (90-30)*t)
	return tcell.NewRGBColor(r, g, b)
}
