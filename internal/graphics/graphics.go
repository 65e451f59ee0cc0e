package graphics

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TargetFPS matches the fixed physics step of one tick per frame.
const TargetFPS = 60

// Window describes the window Run opens.
type Window struct {
	Title      string
	Fullscreen bool
	// Width and Height are used when not fullscreen.
	Width  int32
	Height int32
}

// Run opens the window and runs the frame loop until the window is closed or ctx is done. Each
// frame it calls update (input, game tick), then clears the screen and calls draw (3D view and
// overlays). ESC toggles the console, so the window is closed only via the window button.
func Run(ctx context.Context, w Window, update, draw func()) {
	width, height := w.Width, w.Height
	if w.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
		// Zero size makes raylib use the monitor resolution.
		width, height = 0, 0
	}
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(TargetFPS)

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
