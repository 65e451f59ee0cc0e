// Package termview renders a session as a side view in a terminal and drives the loop from
// terminal key events. It is the headless alternative to the raylib window.
package termview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"tilt-maze/internal/game"
	"tilt-maze/internal/input"
	"tilt-maze/internal/physics"
)

// Viewport is the world rectangle (x right, y up) mapped onto the terminal below the status line.
type Viewport struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// DefaultViewport frames the stage from the ground to above the ball's drop height.
var DefaultViewport = Viewport{MinX: -16, MaxX: 16, MinY: -2, MaxY: 42}

var (
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkBlue)
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite).Bold(true)
)

// View is a game.Surface drawing into a tcell screen.
type View struct {
	Screen   tcell.Screen
	Viewport Viewport
}

// New returns a view over an initialized screen.
func New(screen tcell.Screen) *View {
	return &View{Screen: screen, Viewport: DefaultViewport}
}

// layer is one body drawn with one glyph. Later layers overwrite earlier ones.
type layer struct {
	body  *physics.Body
	glyph rune
	color uint32
}

func layers(s *game.Session) []layer {
	st := s.Stage
	colors := st.Colors
	out := []layer{{st.Ground, '_', colors[st.Ground]}}
	for _, m := range s.Mirrors {
		out = append(out, layer{m.Body, '#', colors[m.Body]})
	}
	return append(out,
		layer{st.Seesaw, '=', colors[st.Seesaw]},
		layer{st.Goal, '*', colors[st.Goal]},
		layer{st.Player, '@', colors[st.Player]},
		layer{st.Ball, 'O', colors[st.Ball]},
	)
}

// Cell returns the world point at the center of terminal cell (col, row) for a w by h screen.
// Row 0 is the status line.
func (v *View) Cell(col, row, w, h int) (float32, float32) {
	vp := v.Viewport
	rows := h - 1
	x := vp.MinX + (float32(col)+0.5)/float32(w)*(vp.MaxX-vp.MinX)
	y := vp.MaxY - (float32(row-1)+0.5)/float32(rows)*(vp.MaxY-vp.MinY)
	return x, y
}

// Render draws the session: status line, bodies rasterized at their z center, and the outcome
// message once the game has ended.
func (v *View) Render(s *game.Session) {
	scr := v.Screen
	scr.Clear()
	w, h := scr.Size()
	if w < 1 || h < 2 {
		scr.Show()
		return
	}

	ls := layers(s)
	for row := 1; row < h; row++ {
		for col := 0; col < w; col++ {
			x, y := v.Cell(col, row, w, h)
			for i := len(ls) - 1; i >= 0; i-- {
				l := ls[i]
				if l.body != nil && l.body.CoversXY(x, y) {
					scr.SetContent(col, row, l.glyph, nil, tcell.StyleDefault.Foreground(color(l.color)))
					break
				}
			}
		}
	}

	drawText(scr, 0, 0, w, pad(s.Status(), w), statusStyle)
	if s.Reactor.Ended() {
		msg := "  " + s.Reactor.Outcome().Message() + "  "
		drawText(scr, (w-len(msg))/2, h/2, w, msg, alertStyle)
	}
	scr.Show()
}

func color(rgb uint32) tcell.Color {
	if rgb == 0 {
		return tcell.ColorGray
	}
	return tcell.NewHexColor(int32(rgb))
}

func pad(s string, w int) string {
	return fmt.Sprintf("%-*s", w, s)
}

func drawText(scr tcell.Screen, x, y, w int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if x+i < 0 || x+i >= w {
			continue
		}
		scr.SetContent(x+i, y, r, nil, style)
	}
}

// KeyCode translates arrow keys into the keyboard codes the input adapter understands.
func KeyCode(ev *tcell.EventKey) (int, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return input.KeyCodeLeft, true
	case tcell.KeyRight:
		return input.KeyCodeRight, true
	}
	return 0, false
}

// IsQuit reports whether ev asks to leave the game: Esc, Ctrl-C or q.
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Runner drives a loop at a fixed rate from a terminal.
type Runner struct {
	Loop *game.Loop
	// Keys enables arrow-key control of the player.
	Keys bool
	// Interval between ticks; zero means one physics step of wall time.
	Interval time.Duration
	// OnKey, if set, observes every arrow key that moved the player.
	OnKey func(code int)
	// BeforeTick, if set, runs before every tick.
	BeforeTick func()
}

// HandleEvent applies one terminal event and reports whether the runner should keep going.
// Arrow keys are ignored once the game has ended.
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if IsQuit(ev) {
			return false
		}
		if !r.Keys || r.Loop.Session.Reactor.Ended() {
			return true
		}
		if code, ok := KeyCode(ev); ok && r.Loop.HandleKey(code) && r.OnKey != nil {
			r.OnKey(code)
		}
	case *tcell.EventResize:
		if v, ok := r.Loop.Surface.(*View); ok {
			v.Screen.Sync()
		}
	}
	return true
}

// TickInterval is the wall-clock period of one fixed game step.
func TickInterval() time.Duration {
	step := float64(game.TimeStep)
	return time.Duration(step * float64(time.Second))
}

// Run ticks the loop until ctx is done or a quit key arrives.
func (r *Runner) Run(ctx context.Context, screen tcell.Screen) {
	interval := r.Interval
	if interval <= 0 {
		interval = TickInterval()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !r.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			if r.BeforeTick != nil {
				r.BeforeTick()
			}
			r.Loop.Tick()
		}
	}
}
