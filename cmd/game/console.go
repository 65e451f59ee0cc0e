package main

import (
	"errors"

	"tilt-maze/internal/commands"
	"tilt-maze/internal/config"
	"tilt-maze/internal/debug"
	"tilt-maze/internal/stage"
)

var errOnOff = errors.New("use exactly one of the two flags")

// registerCommands adds the console commands. Overlay toggles are saved to the prefs file.
func (a *app) registerCommands(reg *commands.Registry, dbg *debug.Debug, prefs *config.Prefs) {
	savePrefs := func() {
		prefs.ShowFPS, prefs.ShowMemAlloc, prefs.ShowStatus = dbg.ShowFPS, dbg.ShowMemAlloc, dbg.ShowStatus
		if err := config.SavePrefs(config.PrefsPath, *prefs); err != nil {
			a.log.Errorf("save prefs: %v", err)
		}
	}

	{
		fs := commands.NewFlagSet("debug")
		on := fs.Bool("on", false, "enable debug mode")
		off := fs.Bool("off", false, "disable debug mode")
		reg.Register("debug", "debug --on|--off: wireframes, free camera and keyboard control", fs, func() error {
			if *on == *off {
				return errOnOff
			}
			a.setDebug(*on)
			a.log.Infof("debug %t", *on)
			return nil
		})
	}

	toggle := func(name, usage string, dst *bool) {
		fs := commands.NewFlagSet(name)
		show := fs.Bool("show", false, "show the overlay")
		hide := fs.Bool("hide", false, "hide the overlay")
		reg.Register(name, usage, fs, func() error {
			if *show == *hide {
				return errOnOff
			}
			*dst = *show
			savePrefs()
			return nil
		})
	}
	toggle("fps", "fps --show|--hide: frames per second overlay", &dbg.ShowFPS)
	toggle("mem", "mem --show|--hide: heap allocation overlay", &dbg.ShowMemAlloc)

	{
		fs := commands.NewFlagSet("status")
		show := fs.Bool("show", false, "keep the status line on screen")
		hide := fs.Bool("hide", false, "remove the status line from the screen")
		reg.Register("status", "status [--show|--hide]: print the session state", fs, func() error {
			if *show && *hide {
				return errOnOff
			}
			if *show || *hide {
				dbg.ShowStatus = *show
				savePrefs()
			}
			a.log.Infof("%s", a.sess.Status())
			return nil
		})
	}

	reg.Register("reload", "reload: rebuild the stage from its file and start over", nil, func() error {
		def, err := stage.Load(a.cfg.Stage)
		if err != nil {
			return err
		}
		a.reload(def)
		return nil
	})

	reg.Register("help", "help: list commands", nil, func() error {
		for _, line := range reg.Help() {
			a.log.Log(line)
		}
		return nil
	})
}
