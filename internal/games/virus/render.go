package virus

import (
	"fmt"

	"github.com/vovakirdan/pillbox/internal/core"
	"github.com/vovakirdan/pillbox/internal/games/virus/engine"
)

const (
	cellWidth  = 2 // Each board slot is drawn two columns wide
	boardW     = engine.Cols*cellWidth + 2
	boardH     = engine.Rows + 2
	panelGap   = 2
	panelW     = 18
	minScreenW = boardW + panelGap + panelW + 2
	minScreenH = boardH + 2
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	totalW := boardW + panelGap + panelW
	boardX := max(0, (g.screenW-totalW)/2)
	boardY := max(1, (g.screenH-boardH)/2)

	g.renderTitle(dst, boardX, boardY-1)
	g.renderBoard(dst, boardX, boardY)
	g.renderPanel(dst, boardX+boardW+panelGap, boardY)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

func (g *Game) renderTitle(dst *core.Screen, x, y int) {
	title := "PILLBOX"
	if g.mode == ModeEndless {
		title = "PILLBOX ENDLESS"
	}
	dst.DrawTextColor(x+(boardW-len(title))/2, y, title, core.ColorTitle)
}

// renderBoard draws the bottle and its contents.
func (g *Game) renderBoard(dst *core.Screen, x, y int) {
	dst.DrawBoxColor(core.NewRect(x, y, boardW, boardH), core.ColorFrame)

	view := g.round.Grid()
	for row := 0; row < engine.Rows; row++ {
		for col := 0; col < engine.Cols; col++ {
			cell := view.At(engine.At(row, col))
			if cell.IsEmpty() {
				continue
			}
			left, right := glyph(cell)
			color := colorFor(cell.Color)
			if cell.IsContaminant() {
				color = color.Virus()
			}
			px := x + 1 + col*cellWidth
			py := y + 1 + row
			dst.SetColor(px, py, left, color)
			dst.SetColor(px+1, py, right, color)
		}
	}
}

// glyph returns the two runes used to draw a cell.
func glyph(c engine.Cell) (rune, rune) {
	if c.IsContaminant() {
		return '>', '<'
	}
	switch c.Pair {
	case engine.PairRight:
		return '(', '='
	case engine.PairLeft:
		return '=', ')'
	case engine.PairDown:
		return '/', '\\'
	case engine.PairUp:
		return '\\', '/'
	default:
		return '(', ')'
	}
}

// colorFor maps a board color to a terminal color.
func colorFor(c engine.Color) core.Color {
	switch c {
	case engine.ColorRed:
		return core.ColorRed
	case engine.ColorYellow:
		return core.ColorYellow
	case engine.ColorBlue:
		return core.ColorBlue
	default:
		return core.ColorDefault
	}
}

// renderPanel draws level info, the next piece and key hints.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	level := fmt.Sprintf("Level  %d", g.levelIndex+1)
	if g.mode == ModeCampaign {
		level = fmt.Sprintf("Level  %d/%d", g.levelIndex+1, LevelCount())
	}
	dst.DrawText(x, y, level)
	dst.DrawText(x, y+1, g.currentLevel().Name)
	dst.DrawText(x, y+3, fmt.Sprintf("Score  %d", g.score))
	dst.DrawText(x, y+4, fmt.Sprintf("Virus  %d", g.round.RemainingContaminants()))
	dst.DrawText(x, y+5, fmt.Sprintf("Speed  %dms", g.round.FallIntervalMs()))

	dst.DrawText(x, y+7, "Next")
	hinge, sat := g.round.Next()
	dst.SetColor(x+1, y+8, '(', colorFor(hinge))
	dst.SetColor(x+2, y+8, '=', colorFor(hinge))
	dst.SetColor(x+3, y+8, '=', colorFor(sat))
	dst.SetColor(x+4, y+8, ')', colorFor(sat))

	if g.chainTicks > 0 && g.lastChain > 1 {
		dst.DrawTextColor(x, y+10, fmt.Sprintf("Chain x%d!", g.lastChain), core.ColorAccent)
	}

	hints := []string{
		"←/→  move",
		"↓    drop",
		"z/x  rotate",
		"p    pause",
	}
	for i, h := range hints {
		dst.DrawTextColor(x, y+boardH-len(hints)+i, h, core.ColorDim)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.won:
		drawOverlay(dst, centerX, centerY, "ALL CLEAR!", fmt.Sprintf("Score %d", g.score), "Press R to restart")
	case g.gameOver:
		drawOverlay(dst, centerX, centerY, "GAME OVER", fmt.Sprintf("Score %d", g.score), "Press R to restart")
	case g.levelCleared:
		msg := fmt.Sprintf("Level %d clear", g.levelIndex+1)
		if g.mode == ModeCampaign && g.levelIndex >= LevelCount()-1 {
			drawOverlay(dst, centerX, centerY, msg, "Final level!")
		} else {
			drawOverlay(dst, centerX, centerY, msg, fmt.Sprintf("Next: Level %d", g.levelIndex+2))
		}
	}
}

// drawOverlay draws a boxed, centered block of text.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	for i, line := range lines {
		lineX := centerX - len([]rune(line))/2
		dst.DrawText(lineX, boxY+1+i, line)
	}
}
