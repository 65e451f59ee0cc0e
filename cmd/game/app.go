package main

import (
	"context"
	"fmt"
	"time"

	"tilt-maze/internal/audio"
	"tilt-maze/internal/config"
	"tilt-maze/internal/game"
	"tilt-maze/internal/input"
	"tilt-maze/internal/logger"
	"tilt-maze/internal/overlay"
	"tilt-maze/internal/pose"
	"tilt-maze/internal/scene"
	"tilt-maze/internal/stage"
)

// app owns the session and everything wired around it. All fields are used from the frame
// goroutine only, except slot and reloads which are filled by background goroutines.
type app struct {
	cfg  config.Config
	log  *logger.Logger
	def  stage.Def
	sess *game.Session
	loop *game.Loop

	slot    *pose.Slot
	feed    *pose.Feed
	sound   *audio.Player
	alert   overlay.Alert
	loading overlay.Loading
	reloads chan stage.Def

	// scene is set by the window surface.
	scene *scene.Scene
}

func newApp(cfg config.Config, log *logger.Logger) (*app, error) {
	def, err := stage.Load(cfg.Stage)
	if err != nil {
		return nil, err
	}
	sess, err := game.NewSession(def)
	if err != nil {
		return nil, err
	}
	sess.Debug = cfg.Debug

	a := &app{
		cfg:     cfg,
		log:     log,
		def:     def,
		sess:    sess,
		loop:    game.NewLoop(sess, nil),
		slot:    &pose.Slot{},
		sound:   audio.NewPlayer(cfg.Audio.Volume),
		reloads: make(chan stage.Def, 1),
	}
	a.loop.Mapper = input.NewPoseMapper(cfg.Pose.Scale)
	a.hook(sess)

	if cfg.Audio.Enabled {
		if err := a.sound.Init(); err != nil {
			log.Errorf("%v (continuing without sound)", err)
		}
	}
	return a, nil
}

// hook wires the session's reactor to logging, the alert and the sound cue.
func (a *app) hook(sess *game.Session) {
	sess.Reactor.OnContact(func(tag string) {
		a.log.Debugf("collided with body: %s", tag)
	})
	sess.Reactor.OnEnd(func(o game.Outcome) {
		a.log.Infof("%s after %d ticks", o.Message(), sess.Ticks)
		a.alert.Show(o.Message())
		a.sound.Play(o)
	})
}

// startPose opens the configured pose source and starts sampling it. Failure to open the source
// stops the game before it starts.
func (a *app) startPose(ctx context.Context) error {
	if !a.cfg.UsesPose() {
		return nil
	}

	var src pose.Source
	if path := a.cfg.Pose.Recording; path != "" {
		rec, err := pose.LoadRecording(path)
		if err != nil {
			return fmt.Errorf("pose source: %w", err)
		}
		a.log.Infof("replaying %d poses from %s", len(rec.Frames), path)
		src = rec
	} else {
		feed := pose.NewFeed(a.cfg.Pose.Addr, a.cfg.Pose.Path)
		feed.OnConnect = func(remote string) { a.log.Infof("pose estimator connected from %s", remote) }
		feed.OnMessageError = func(err error) { a.log.Errorf("%v", err) }
		if err := feed.Start(); err != nil {
			return fmt.Errorf("pose source: %w", err)
		}
		a.log.Infof("waiting for poses on ws://%s%s", feed.Addr(), a.cfg.Pose.Path)
		a.feed = feed
		src = feed
	}

	interval := time.Duration(a.cfg.Pose.IntervalMS) * time.Millisecond
	sampler := pose.NewSampler(src, a.slot, interval)
	sampler.OnError = func(err error) { a.log.Errorf("pose: %v", err) }
	go sampler.Run(ctx)

	a.loop.Poses = a.slot
	a.loading = overlay.Loading{Active: true, Label: "waiting for pose"}
	return nil
}

// updateLoading hides the loading indicator once the first pose has arrived.
func (a *app) updateLoading() {
	if !a.loading.Active {
		return
	}
	if _, ok := a.slot.Peek(); ok {
		a.loading.Active = false
		a.log.Infof("first pose received")
	}
}

// watchStage reloads the stage file on save while in debug mode.
func (a *app) watchStage(ctx context.Context) {
	if !a.cfg.Debug || a.cfg.Stage == "" {
		return
	}
	w, err := stage.NewWatcher(a.cfg.Stage)
	if err != nil {
		a.log.Errorf("%v", err)
		return
	}
	w.OnChange = func(d stage.Def) {
		select {
		case a.reloads <- d:
		default:
		}
	}
	w.OnError = func(err error) { a.log.Errorf("%v", err) }
	go w.Run(ctx)
	a.log.Infof("watching %s", a.cfg.Stage)
}

// applyReloads swaps in a stage saved since the last frame.
func (a *app) applyReloads() {
	select {
	case d := <-a.reloads:
		a.reload(d)
	default:
	}
}

// reload starts a new game on def. On failure the current game continues.
func (a *app) reload(def stage.Def) {
	sess, err := game.NewSession(def)
	if err != nil {
		a.log.Errorf("reload: %v", err)
		return
	}
	sess.Debug = a.sess.Debug
	a.hook(sess)
	a.def, a.sess = def, sess
	a.loop.Session, a.loop.Stepper = sess, sess.World
	a.alert.Reset()
	if a.scene != nil {
		a.scene.SetStage(def)
	}
	a.log.Infof("stage reloaded")
}

// setDebug switches debug mode for the session, the logger and the scene.
func (a *app) setDebug(on bool) {
	a.sess.Debug = on
	a.log.Verbose = on
	if a.scene != nil {
		a.scene.SetDebug(on)
	}
}

// keysAllowed reports whether arrow keys may move the player this frame.
func (a *app) keysAllowed() bool {
	return (a.cfg.UsesKeyboard() || a.sess.Debug) && !a.alert.Visible()
}

func (a *app) close() {
	if a.feed != nil {
		if err := a.feed.Close(); err != nil {
			a.log.Errorf("%v", err)
		}
	}
	a.sound.Close()
}
