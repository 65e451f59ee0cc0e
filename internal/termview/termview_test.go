package termview

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilt-maze/internal/game"
	"tilt-maze/internal/stage"
)

// gridViewport on a 32x45 screen makes every cell one world unit with centers clear of the
// stage's half-unit edges: col c is x = c-15.5, row r is y = 42-r.
var gridViewport = Viewport{MinX: -16, MaxX: 16, MinY: -2.5, MaxY: 41.5}

func newTestView(t *testing.T) (*View, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(32, 45)
	t.Cleanup(screen.Fini)
	v := New(screen)
	v.Viewport = gridViewport
	return v, screen
}

func newLoop(t *testing.T, v *View) *game.Loop {
	t.Helper()
	d, err := stage.Default()
	require.NoError(t, err)
	s, err := game.NewSession(d)
	require.NoError(t, err)
	return game.NewLoop(s, v)
}

func glyph(scr tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := scr.GetContent(x, y)
	return r
}

func rowText(scr tcell.SimulationScreen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteRune(glyph(scr, x, y))
	}
	return sb.String()
}

func TestCellMapping(t *testing.T) {
	v := &View{Viewport: DefaultViewport}
	x, y := v.Cell(16, 2, 32, 45)
	assert.InDelta(t, 0.5, x, 1e-5)
	assert.InDelta(t, 40.5, y, 1e-5)
	x, y = v.Cell(0, 44, 32, 45)
	assert.InDelta(t, -15.5, x, 1e-5)
	assert.InDelta(t, -1.5, y, 1e-5)
}

func TestRenderInitialStage(t *testing.T) {
	v, scr := newTestView(t)
	l := newLoop(t, v)
	v.Render(l.Session)

	assert.True(t, strings.HasPrefix(rowText(scr, 0, 32), "tick 0, playing"))
	assert.Equal(t, 'O', glyph(scr, 16, 2), "ball at (0, 40)")
	assert.Equal(t, '@', glyph(scr, 16, 36), "player at (0, 6)")
	assert.Equal(t, '*', glyph(scr, 24, 29), "goal at (8, 13)")
	assert.Equal(t, '#', glyph(scr, 20, 7), "bar1 at y 35")
	assert.Equal(t, '_', glyph(scr, 0, 44), "ground below y 0")
	assert.Equal(t, ' ', glyph(scr, 0, 10), "empty air")

	_, _, style, _ := scr.GetContent(16, 2)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.NewHexColor(0xff6666), fg)
}

func TestRenderEndedShowsMessage(t *testing.T) {
	v, scr := newTestView(t)
	l := newLoop(t, v)
	l.Session.Reactor.React(game.TagGoal)
	v.Render(l.Session)

	assert.Contains(t, rowText(scr, 22, 32), "Game Clear")
	assert.Contains(t, rowText(scr, 0, 32), "ended (win)")
}

func TestKeyTranslation(t *testing.T) {
	code, ok := KeyCode(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.True(t, ok)
	assert.Equal(t, 37, code)
	code, ok = KeyCode(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	assert.True(t, ok)
	assert.Equal(t, 39, code)
	_, ok = KeyCode(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	assert.False(t, ok)

	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, IsQuit(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestHandleEventMovesPlayer(t *testing.T) {
	v, _ := newTestView(t)
	l := newLoop(t, v)
	var seen []int
	r := &Runner{Loop: l, Keys: true, OnKey: func(code int) { seen = append(seen, code) }}

	right := tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)
	assert.True(t, r.HandleEvent(right))
	assert.True(t, r.HandleEvent(right))
	assert.InDelta(t, 2, l.Session.Player.X(), 1e-5)
	assert.Equal(t, []int{39, 39}, seen)

	assert.False(t, r.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestHandleEventIgnoresKeys(t *testing.T) {
	v, _ := newTestView(t)
	right := tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)

	t.Run("keyboard disabled", func(t *testing.T) {
		l := newLoop(t, v)
		r := &Runner{Loop: l}
		assert.True(t, r.HandleEvent(right))
		assert.Zero(t, l.Session.Player.X())
	})
	t.Run("game ended", func(t *testing.T) {
		l := newLoop(t, v)
		l.Session.Reactor.React(game.TagGround)
		r := &Runner{Loop: l, Keys: true}
		assert.True(t, r.HandleEvent(right))
		assert.Zero(t, l.Session.Player.X())
	})
}

func TestRunTicksUntilCancelled(t *testing.T) {
	v, scr := newTestView(t)
	l := newLoop(t, v)
	before := 0
	r := &Runner{Loop: l, Interval: time.Millisecond, BeforeTick: func() { before++ }}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	r.Run(ctx, scr)

	assert.Positive(t, l.Session.Ticks)
	assert.Equal(t, int(l.Session.Ticks), before)
}

func TestRunStopsOnQuitKey(t *testing.T) {
	v, scr := newTestView(t)
	l := newLoop(t, v)
	r := &Runner{Loop: l, Interval: time.Hour}

	done := make(chan struct{})
	go func() {
		r.Run(context.Background(), scr)
		close(done)
	}()
	scr.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on q")
	}
	assert.Zero(t, l.Session.Ticks)
}

func TestTickInterval(t *testing.T) {
	assert.InDelta(t, float64(time.Second/60), float64(TickInterval()), float64(time.Microsecond))
}
