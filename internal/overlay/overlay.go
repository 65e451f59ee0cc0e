// Package overlay draws the 2D layers over the 3D view: the outcome alert and the loading indicator.
package overlay

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	alertFontSize = 40
	hintFontSize  = 18
	alertPadding  = 32
	spinnerFrames = 4
)

var (
	shade      = rl.NewColor(0, 0, 0, 160)
	alertBg    = rl.NewColor(40, 40, 40, 240)
	alertFrame = rl.NewColor(200, 200, 200, 255)
)

// Alert is a modal message. Once shown it stays until the window closes or a new game starts.
type Alert struct {
	message string
}

// Show displays msg. Only the first call has an effect.
func (a *Alert) Show(msg string) {
	if a.message == "" {
		a.message = msg
	}
}

// Reset takes the alert down for a new game.
func (a *Alert) Reset() {
	a.message = ""
}

// Visible reports whether the alert is up. While it is, game input is ignored.
func (a *Alert) Visible() bool {
	return a.message != ""
}

// Draw draws the alert centered on the window.
func (a *Alert) Draw() {
	if a.message == "" {
		return
	}
	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, sw, sh, shade)

	const hint = "close the window to quit"
	tw := rl.MeasureText(a.message, alertFontSize)
	hw := rl.MeasureText(hint, hintFontSize)
	w := max(tw, hw) + 2*alertPadding
	h := int32(alertFontSize + hintFontSize + 3*alertPadding)
	x, y := (sw-w)/2, (sh-h)/2
	rl.DrawRectangle(x, y, w, h, alertBg)
	rl.DrawRectangleLines(x, y, w, h, alertFrame)
	rl.DrawText(a.message, x+(w-tw)/2, y+alertPadding, alertFontSize, rl.White)
	rl.DrawText(hint, x+(w-hw)/2, y+2*alertPadding+alertFontSize, hintFontSize, rl.LightGray)
}

// Loading is the indicator shown while the pose source warms up.
type Loading struct {
	Active bool
	Label  string
	frame  int
}

// Draw draws the indicator centered near the top of the window while Active.
func (l *Loading) Draw() {
	if !l.Active {
		return
	}
	l.frame++
	dots := strings.Repeat(".", (l.frame/15)%spinnerFrames)
	text := l.Label + dots
	sw := int32(rl.GetScreenWidth())
	tw := rl.MeasureText(l.Label+"...", hintFontSize)
	rl.DrawText(text, (sw-tw)/2, alertPadding, hintFontSize, rl.RayWhite)
}
