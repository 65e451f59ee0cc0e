package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"tilt-maze/internal/termview"
)

// runTerm plays in the terminal. There is no console here; logs go to the log file.
func (a *app) runTerm(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	a.loop.Surface = termview.New(screen)
	r := &termview.Runner{
		Loop: a.loop,
		Keys: a.cfg.UsesKeyboard(),
		OnKey: func(code int) {
			a.log.Debugf("key %d, player x %.0f", code, a.sess.Player.X())
		},
		BeforeTick: func() {
			a.applyReloads()
			a.updateLoading()
		},
	}
	r.Run(ctx, screen)
	return nil
}
