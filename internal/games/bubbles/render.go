package bubbles

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bubblepop/internal/core"
)

// Visual characters for rendering
const (
	BubbleChar    = '█'
	CrosshairChar = '+'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}
	snap := g.sim.Snapshot()

	for _, b := range snap.Bubbles {
		g.drawBubble(dst, b)
	}
	if !snap.Over {
		dst.SetColored(g.cursor.X, g.cursor.Y, CrosshairChar, core.ColorBrightWhite)
	}

	g.drawHUD(dst, snap)

	if g.paused {
		drawMessageBox(dst, "PAUSED", "Press P to resume")
	}
	if snap.Over && snap.SummaryVisible {
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", snap.Score)}
		switch {
		case snap.NewBest:
			lines = append(lines, "NEW BEST!")
		case snap.HighScore > 0:
			lines = append(lines, fmt.Sprintf("Best: %d", snap.HighScore))
		}
		drawMessageBox(dst, append(lines, "R: restart  Esc: back")...)
	}
}

// drawBubble fills every cell whose center lies inside the bubble.
// A bubble too small to cover any cell center still marks its own cell.
func (g *Game) drawBubble(dst *core.Screen, b Bubble) {
	r := g.cfg.Render
	color := core.NearestColor(b.Color.R, b.Color.G, b.Color.B)

	x0 := int(math.Floor((b.Pos.X - b.Radius) / r.UnitsPerCol))
	x1 := int(math.Ceil((b.Pos.X + b.Radius) / r.UnitsPerCol))
	y0 := int(math.Floor((b.Pos.Y - b.Radius) / r.UnitsPerRow))
	y1 := int(math.Ceil((b.Pos.Y + b.Radius) / r.UnitsPerRow))

	drawn := false
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			p := core.CellPoint{X: cx, Y: cy + hudRows}
			if b.Contains(g.cellToArena(p)) {
				dst.SetColored(p.X, p.Y, BubbleChar, color)
				drawn = true
			}
		}
	}
	if !drawn {
		dst.SetColored(int(b.Pos.X/r.UnitsPerCol), int(b.Pos.Y/r.UnitsPerRow)+hudRows, BubbleChar, color)
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawHLine(0, 0, dst.Width(), ' ')

	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d ", snap.Score))

	timeColor := core.ColorDefault
	if snap.TimeLeft <= 10 {
		timeColor = core.ColorBrightRed
	}
	timeText := fmt.Sprintf(" Time: %ds ", snap.TimeLeft)
	dst.DrawTextColored((dst.Width()-len(timeText))/2, 0, timeText, timeColor)

	bestText := fmt.Sprintf(" Best: %d ", snap.HighScore)
	bestX := dst.Width() - len(bestText) - 1
	dst.DrawText(bestX, 0, bestText)

	if snap.Combo > 1 {
		comboText := fmt.Sprintf(" Combo x%d ", snap.Combo)
		dst.DrawTextColored(bestX-len(comboText), 0, comboText, core.ColorBrightYellow)
	}
}

// drawMessageBox draws a framed message box in the center of the screen.
func drawMessageBox(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}

	boxW := width + 4
	boxH := len(lines)*2 + 1
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawText(x, boxY+1+i*2, l)
	}
}
