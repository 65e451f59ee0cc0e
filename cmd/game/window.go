package main

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tilt-maze/internal/commands"
	"tilt-maze/internal/config"
	"tilt-maze/internal/debug"
	"tilt-maze/internal/fonts"
	"tilt-maze/internal/graphics"
	"tilt-maze/internal/input"
	"tilt-maze/internal/preview"
	"tilt-maze/internal/scene"
	"tilt-maze/internal/terminal"
)

var arrowKeys = []struct {
	key  int32
	code int
}{
	{rl.KeyLeft, input.KeyCodeLeft},
	{rl.KeyRight, input.KeyCodeRight},
}

// runWindow plays in a raylib window with the console, debug overlays and pose preview.
func (a *app) runWindow(ctx context.Context) {
	scn := scene.New(a.def)
	scn.ReserveBand = a.cfg.UsesPose()
	scn.SetDebug(a.sess.Debug)
	defer scn.Close()
	a.scene = scn
	a.loop.Surface = scn

	reg := commands.NewRegistry()
	term := terminal.New(a.log, reg)
	dbg := debug.New()
	prefs := config.LoadPrefs(config.PrefsPath)
	dbg.ShowFPS, dbg.ShowMemAlloc, dbg.ShowStatus = prefs.ShowFPS, prefs.ShowMemAlloc, prefs.ShowStatus
	dbg.Status = func() string { return a.sess.Status() }
	a.registerCommands(reg, dbg, &prefs)
	panel := preview.New(a.slot)

	// Fonts need the GL context, which exists from the first frame on.
	var font rl.Font
	fontTried := false
	defer func() {
		if font.Texture.ID != 0 {
			rl.UnloadFont(font)
		}
	}()

	update := func() {
		if !fontTried {
			fontTried = true
			font = a.loadFont()
			term.SetFont(font)
			dbg.SetFont(font)
		}
		term.Update()
		if a.keysAllowed() && !term.IsOpen() {
			for _, k := range arrowKeys {
				if rl.IsKeyPressed(k.key) || rl.IsKeyPressedRepeat(k.key) {
					a.loop.HandleKey(k.code)
				}
			}
		}
		scn.Update(!term.IsOpen())
		a.applyReloads()
		a.updateLoading()
		a.loop.Tick()
	}
	draw := func() {
		scn.Draw()
		if scn.ReserveBand {
			_, h := scn.ViewSize()
			panel.Draw(0, h)
		}
		a.loading.Draw()
		a.alert.Draw()
		term.Draw()
		dbg.Draw()
	}

	w := a.cfg.Window
	graphics.Run(ctx, graphics.Window{Title: w.Title, Fullscreen: w.Fullscreen, Width: w.Width, Height: w.Height}, update, draw)
}

// loadFont loads the configured console font. The zero Font means raylib's default.
func (a *app) loadFont() rl.Font {
	name := a.cfg.Window.Font
	if name == "" {
		return rl.Font{}
	}
	path, err := fonts.Find(name)
	if err != nil {
		a.log.Errorf("font %q not found under %v", name, fonts.Dirs)
		return rl.Font{}
	}
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		a.log.Errorf("font %s could not be loaded", path)
		return rl.Font{}
	}
	return f
}
