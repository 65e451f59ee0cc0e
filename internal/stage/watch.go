package stage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a stage file whenever it is written. The file's directory is watched, not the
// file, so editors that save by rename are seen too.
type Watcher struct {
	path string
	w    *fsnotify.Watcher

	// OnChange receives each successfully parsed definition.
	OnChange func(Def)
	// OnError receives read and parse failures. The previous stage stays in use.
	OnError func(error)
}

// NewWatcher starts watching path's directory.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("stage: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("stage: watch %s: %w", path, err)
	}
	return &Watcher{path: filepath.Clean(path), w: w}, nil
}

// Run delivers reloads until ctx is done, then closes the watcher.
func (sw *Watcher) Run(ctx context.Context) {
	defer sw.w.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != sw.path || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			sw.reload()
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			sw.fail(fmt.Errorf("stage: watch: %w", err))
		}
	}
}

func (sw *Watcher) reload() {
	d, err := Load(sw.path)
	if err != nil {
		sw.fail(err)
		return
	}
	if sw.OnChange != nil {
		sw.OnChange(d)
	}
}

func (sw *Watcher) fail(err error) {
	if sw.OnError != nil {
		sw.OnError(err)
	}
}
