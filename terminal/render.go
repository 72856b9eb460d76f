package main

import (
	"fmt"

	"github.com/nsf/termbox-go"

	"gridsnake/engine"
)

// Each grid cell is drawn two columns wide so the board looks square.
const (
	cellWidth = 2
	originX   = 1
	originY   = 2
)

var playerColors = [2]termbox.Attribute{termbox.ColorBlue, termbox.ColorGreen}

func setCell(c engine.Cell, ch rune, fg termbox.Attribute) {
	x := originX + c.Col*cellWidth
	y := originY + c.Row
	for i := 0; i < cellWidth; i++ {
		termbox.SetCell(x+i, y, ch, fg, termbox.ColorDefault)
	}
}

func printText(x, y int, fg termbox.Attribute, s string) {
	for _, r := range s {
		termbox.SetCell(x, y, r, fg, termbox.ColorDefault)
		x++
	}
}

func drawBorder(g engine.Grid) {
	w := g.Cols*cellWidth + 2
	h := g.Rows + 2
	for x := 0; x < w; x++ {
		termbox.SetCell(originX-1+x, originY-1, '─', termbox.ColorWhite, termbox.ColorDefault)
		termbox.SetCell(originX-1+x, originY+g.Rows, '─', termbox.ColorWhite, termbox.ColorDefault)
	}
	for y := 0; y < h; y++ {
		termbox.SetCell(originX-1, originY-1+y, '│', termbox.ColorWhite, termbox.ColorDefault)
		termbox.SetCell(originX+g.Cols*cellWidth, originY-1+y, '│', termbox.ColorWhite, termbox.ColorDefault)
	}
	termbox.SetCell(originX-1, originY-1, '┌', termbox.ColorWhite, termbox.ColorDefault)
	termbox.SetCell(originX+g.Cols*cellWidth, originY-1, '┐', termbox.ColorWhite, termbox.ColorDefault)
	termbox.SetCell(originX-1, originY+g.Rows, '└', termbox.ColorWhite, termbox.ColorDefault)
	termbox.SetCell(originX+g.Cols*cellWidth, originY+g.Rows, '┘', termbox.ColorWhite, termbox.ColorDefault)
}

// render paints one frame; it runs on the loop goroutine.
func render(snap engine.Snapshot) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	printText(0, 0, termbox.ColorWhite, scoreLine(snap))
	drawBorder(snap.Grid)

	if snap.HasFood {
		setCell(snap.Food, '●', termbox.ColorRed)
	}
	for _, s := range snap.Snakes {
		fg := playerColors[s.Player%len(playerColors)]
		for i, c := range s.Segments {
			ch := '█'
			if i == 0 {
				ch = '▓'
			}
			setCell(c, ch, fg)
		}
	}

	if banner := bannerText(snap); banner != "" {
		x := originX + (snap.Grid.Cols*cellWidth-len([]rune(banner)))/2
		if x < 0 {
			x = 0
		}
		printText(x, originY+snap.Grid.Rows/2, termbox.ColorYellow|termbox.AttrBold, banner)
	}
	printText(0, originY+snap.Grid.Rows+1, termbox.ColorDefault, "WASD / arrows steer  d / → ready  q quit")
	termbox.Flush()
}

func scoreLine(snap engine.Snapshot) string {
	line := fmt.Sprintf("round %d", snap.Round)
	for p, score := range snap.Scores {
		line += fmt.Sprintf("  %s %d", engine.PlayerNames[p], score)
	}
	return line
}

// bannerText is the centered overlay for the current phase, empty while
// playing.
func bannerText(snap engine.Snapshot) string {
	switch snap.Phase {
	case engine.AwaitingReady:
		text := "press"
		for p, ok := range snap.Ready {
			if ok {
				continue
			}
			if p == 0 {
				text += " d"
			} else {
				text += " →"
			}
		}
		return text + " to start"
	case engine.Countdown:
		return fmt.Sprintf("%d", snap.Countdown)
	case engine.RoundOver:
		out := snap.Outcome
		switch out.Result {
		case engine.Tie:
			if out.HeadOn {
				return fmt.Sprintf("head-on at %s: tie", out.At)
			}
			return "tie"
		case engine.Win:
			return engine.PlayerNames[out.Winner] + " wins"
		case engine.Loss:
			return fmt.Sprintf("game over (%s)", out.Losers[0].Cause)
		}
	}
	return ""
}
