// Package render draws the falling-word field and HUD onto a tcell screen
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/word-rain/engine"
	"github.com/lixenwraith/word-rain/parameter"
	"github.com/lixenwraith/word-rain/rules"
)

// Layout rows
const (
	lifeMeterRow = 0
	statusRow    = 1
	fieldTop     = 2
	footerRows   = 1 // input bar
	meterLabel   = " LIFE "
	meterNumber  = 4
)

// Overlay selects the panel drawn over the field
type Overlay uint8

const (
	OverlayNone Overlay = iota
	OverlayPaused
	OverlayGameOver
)

// Frame is everything the renderer needs for one frame
type Frame struct {
	Snapshot engine.Snapshot
	Score    rules.State
	Stats    rules.Stats
	Overlay  Overlay
	Muted    bool
	Messages []string // most recent last
}

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, width: w, height: h}
}

// UpdateDimensions re-reads the screen size after a resize
func (r *TerminalRenderer) UpdateDimensions() {
	r.width, r.height = r.screen.Size()
}

// FieldHeight returns the number of rows available to falling words
func (r *TerminalRenderer) FieldHeight() int {
	return max(r.height-fieldTop-footerRows, 1)
}

// FieldRow maps a vertical percent to a screen row
func (r *TerminalRenderer) FieldRow(y float64) int {
	h := r.FieldHeight()
	row := int(math.Floor(y / 100 * float64(h)))
	return fieldTop + min(max(row, 0), h-1)
}

// FieldColumn maps a horizontal percent to the first column of a centered word
func (r *TerminalRenderer) FieldColumn(x float64, textLen int) int {
	col := int(math.Round(x/100*float64(r.width))) - textLen/2
	return min(max(col, 0), max(r.width-textLen, 0))
}

// RenderFrame renders the entire game frame
func (r *TerminalRenderer) RenderFrame(f Frame) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.fill(0, 0, r.width, r.height, defaultStyle)

	r.drawLifeMeter(f.Score.Life, defaultStyle)
	r.drawStatusBar(f, defaultStyle)
	r.drawDeadline(defaultStyle)
	r.drawWords(f.Snapshot, defaultStyle)
	r.drawMessages(f.Messages, defaultStyle)
	r.drawInputBar(f.Snapshot.Typed)

	switch f.Overlay {
	case OverlayPaused:
		r.drawPanel(pausedLines(f))
	case OverlayGameOver:
		r.drawPanel(gameOverLines(f))
	}

	r.screen.Show()
}

// drawLifeMeter draws the life bar on the top row
func (r *TerminalRenderer) drawLifeMeter(life int, defaultStyle tcell.Style) {
	labelStyle := defaultStyle.Foreground(RgbStatusDim)
	x := r.drawText(0, lifeMeterRow, meterLabel, labelStyle)

	barWidth := r.width - x - meterNumber - 1
	if barWidth < 1 {
		return
	}
	filled := life * barWidth / parameter.LifeMax

	for i := 0; i < barWidth; i++ {
		style := defaultStyle.Foreground(tcell.NewRGBColor(30, 30, 40))
		if i < filled {
			style = defaultStyle.Foreground(GetLifeMeterColor(float64(i+1) / float64(barWidth)))
		}
		r.screen.SetContent(x+i, lifeMeterRow, '█', nil, style)
	}
	r.drawText(r.width-meterNumber, lifeMeterRow, fmt.Sprintf("%*d", meterNumber, life), defaultStyle.Foreground(RgbStatusText))
}

// drawStatusBar draws score, countdown, streak and settings
func (r *TerminalRenderer) drawStatusBar(f Frame, defaultStyle tcell.Style) {
	textStyle := defaultStyle.Foreground(RgbStatusText)
	dimStyle := defaultStyle.Foreground(RgbStatusDim)

	left := fmt.Sprintf(" Score %d  High %d  Streak %d", f.Score.Score, f.Score.HighScore, f.Snapshot.Streak)
	if f.Score.Timed {
		left += "  Time " + formatClock(f.Score.TimeLeft)
	}
	r.drawText(0, statusRow, left, textStyle)

	s := f.Snapshot.Settings
	right := fmt.Sprintf("%s/%s/%s ", s.Mode, s.Difficulty, s.Category)
	if f.Muted {
		right = "muted  " + right
	}
	if x := r.width - len(right); x > len(left) {
		r.drawText(x, statusRow, right, dimStyle)
	}
}

// drawDeadline draws the rule a word must not reach
func (r *TerminalRenderer) drawDeadline(defaultStyle tcell.Style) {
	row := r.FieldRow(parameter.Deadline)
	style := defaultStyle.Foreground(RgbDeadline)
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, row, '┄', nil, style)
	}
}

// drawWords draws live words over resolved ones so the target is never hidden
func (r *TerminalRenderer) drawWords(snap engine.Snapshot, defaultStyle tcell.Style) {
	for _, w := range snap.Words {
		if w.State.Terminal() {
			r.drawWord(w, defaultStyle)
		}
	}
	for _, w := range snap.Words {
		if w.State == engine.StateFalling {
			r.drawWord(w, defaultStyle)
		}
	}
	if t, ok := snap.Target(); ok {
		r.drawWord(t, defaultStyle)
	}
}

func (r *TerminalRenderer) drawWord(w engine.Word, defaultStyle tcell.Style) {
	row := r.FieldRow(w.Y)
	col := r.FieldColumn(w.X, len(w.Text))

	base := defaultStyle.Foreground(WordColor(w.Color))
	if w.Scale >= 1.1 {
		base = base.Bold(true)
	}

	switch w.State {
	case engine.StateCompleted:
		r.drawText(col, row, w.Text, defaultStyle.Foreground(RgbCompleted).Dim(true))
	case engine.StateMissed:
		r.drawText(col, row, w.Text, defaultStyle.Foreground(RgbMissed).StrikeThrough(true))
	case engine.StateTargeted:
		x := r.drawText(col, row, w.Completed, defaultStyle.Foreground(RgbTyped).Bold(true))
		r.drawText(x, row, w.Remaining, base.Underline(true))
	default:
		r.drawText(col, row, w.Text, base)
	}
}

// drawMessages stacks effect notices above the deadline, newest lowest
func (r *TerminalRenderer) drawMessages(msgs []string, defaultStyle tcell.Style) {
	style := defaultStyle.Foreground(RgbMessage).Bold(true)
	row := r.FieldRow(parameter.Deadline) - 1
	for i := len(msgs) - 1; i >= 0 && row >= fieldTop; i-- {
		r.drawText(r.width-len(msgs[i])-1, row, msgs[i], style)
		row--
	}
}

// drawInputBar draws the typed buffer on the bottom row
func (r *TerminalRenderer) drawInputBar(typed string) {
	row := r.height - 1
	barStyle := tcell.StyleDefault.Background(RgbInputBar).Foreground(RgbInputText)
	r.fill(0, row, r.width, 1, barStyle)

	x := r.drawText(0, row, " > ", barStyle.Foreground(RgbStatusDim))
	x = r.drawText(x, row, typed, barStyle.Bold(true))
	if x < r.width {
		r.screen.SetContent(x, row, ' ', nil, barStyle.Reverse(true))
	}
}

// drawPanel draws a centered box with the given lines
func (r *TerminalRenderer) drawPanel(lines []string) {
	inner := 0
	for _, l := range lines {
		inner = max(inner, len(l))
	}
	w := min(inner+4, r.width)
	h := min(len(lines)+2, r.height)
	x0 := (r.width - w) / 2
	y0 := (r.height - h) / 2

	style := tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbOverlayText)
	r.fill(x0, y0, w, h, style)
	for i, l := range lines {
		if y0+1+i >= r.height {
			break
		}
		r.drawText(x0+(w-len(l))/2, y0+1+i, l, style)
	}
}

func pausedLines(f Frame) []string {
	s := f.Snapshot.Settings
	return []string{
		"PAUSED",
		"",
		fmt.Sprintf("mode %s   difficulty %s   category %s", s.Mode, s.Difficulty, s.Category),
		"",
		"esc/space resume   m/d/c change setting   ctrl+r restart   q quit",
	}
}

func gameOverLines(f Frame) []string {
	st := f.Stats
	lines := []string{
		"GAME OVER: " + strings.ToUpper(f.Score.Reason.String()),
		"",
		fmt.Sprintf("score %d   high score %d", f.Score.Score, f.Score.HighScore),
		fmt.Sprintf("words %d   wpm %.0f   accuracy %.0f%%", st.WordsTyped, st.WPM, st.Accuracy),
		fmt.Sprintf("longest streak %d   avg length %.1f   time %s", st.LongestStreak, st.AverageWordLength, formatClock(st.Elapsed)),
		"",
		"enter/r play again   q quit",
	}
	return lines
}

// drawText writes s from (x, y), clipped to the screen; returns the column after the text
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	if y < 0 || y >= r.height {
		return x + len(s)
	}
	for _, ch := range s {
		if x >= 0 && x < r.width {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}

func (r *TerminalRenderer) fill(x0, y0, w, h int, style tcell.Style) {
	for y := y0; y < y0+h && y < r.height; y++ {
		for x := x0; x < x0+w && x < r.width; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// formatClock renders a duration as m:ss, rounding up partial seconds
func formatClock(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
