// Package terminal is the in-game console: a log view with an input bar, toggled with ESC.
package terminal

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"tilt-maze/internal/commands"
	"tilt-maze/internal/logger"
)

const (
	barHeight = 40
	// windowedLift keeps the bar above the taskbar when not fullscreen.
	windowedLift = 56
	prompt       = "> "
	fontSize     = 20
	padding      = 8
	visibleLines = 14
	lineHeight   = fontSize + 4
	maxLineLen   = 200
)

var (
	barColor  = rl.NewColor(40, 40, 40, 255)
	edgeColor = rl.NewColor(80, 80, 80, 255)
	logBg     = rl.NewColor(24, 24, 24, 240)
)

// Terminal shows the log and runs "cmd ..." lines through a command registry. While open it
// captures the keyboard, so arrow keys browse history instead of moving the player.
type Terminal struct {
	log    *logger.Logger
	reg    *commands.Registry
	line   commands.Line
	scroll int
	open   bool
	font   rl.Font
}

func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

func (t *Terminal) IsOpen() bool {
	return t.open
}

// SetFont sets the console font. The zero Font uses raylib's default.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
}

func pressed(key int32) bool {
	return rl.IsKeyPressed(key) || rl.IsKeyPressedRepeat(key)
}

func pasteChord() bool {
	mod := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	return mod && rl.IsKeyPressed(rl.KeyV)
}

// Update handles one frame of console input. Call once per frame before game input.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
		t.scroll = 0
	}
	if !t.open {
		return
	}

	if pasteChord() {
		t.line.Insert(rl.GetClipboardText())
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.line.Insert(string(rune(c)))
		}
	}
	switch {
	case pressed(rl.KeyBackspace):
		t.line.Backspace()
	case pressed(rl.KeyUp):
		t.line.Prev()
	case pressed(rl.KeyDown):
		t.line.Next()
	case pressed(rl.KeyPageUp):
		t.scroll += visibleLines / 2
	case pressed(rl.KeyPageDown):
		t.scroll = max(0, t.scroll-visibleLines/2)
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		t.submit()
	}
}

func (t *Terminal) submit() {
	s, ok := t.line.Submit()
	if !ok {
		return
	}
	t.scroll = 0
	t.log.Log(prompt + s)
	isCmd, err := t.reg.RunLine(s)
	if err != nil {
		t.log.Errorf("%v", err)
	} else if !isCmd {
		t.log.Log(`commands start with "cmd "; try cmd help`)
	}
}

// Draw draws the log panel and the input bar at the bottom of the window.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	w := rl.GetScreenWidth()
	barY := rl.GetScreenHeight() - barHeight
	if !rl.IsWindowFullscreen() {
		barY -= windowedLift
	}

	panelY := max(0, barY-visibleLines*lineHeight)
	if barY > panelY {
		rl.DrawRectangle(0, int32(panelY), int32(w), int32(barY-panelY), logBg)
	}
	lines := t.log.Lines()
	start, end := commands.Window(len(lines), visibleLines, t.scroll)
	for i, s := range lines[start:end] {
		if len(s) > maxLineLen {
			s = s[:maxLineLen-3] + "..."
		}
		t.text(s, padding, panelY+padding+i*lineHeight, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(w), barHeight, barColor)
	rl.DrawRectangle(0, int32(barY), int32(w), 1, edgeColor)
	t.text(prompt+t.line.String()+"|", padding, barY+padding, rl.White)
}

func (t *Terminal) text(s string, x, y int, c rl.Color) {
	if t.font.Texture.ID == 0 {
		rl.DrawText(s, int32(x), int32(y), fontSize, c)
		return
	}
	rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
}
