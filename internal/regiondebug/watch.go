package regiondebug

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// TriggerWatcher invokes a callback whenever a trigger file is created or
// written, using OS-native notifications. Touching the file from a shell is
// enough to request a stats dump from a live process.
type TriggerWatcher struct {
	w    *fsnotify.Watcher
	done chan struct{}
}

// WatchDumpTrigger watches path and calls dump on every create or write to
// it. The parent directory must exist; the file itself need not.
func WatchDumpTrigger(path string, dump func()) (*TriggerWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	// Watch the directory: the trigger file may not exist yet, and editors
	// replace files on save.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	tw := &TriggerWatcher{w: w, done: make(chan struct{})}
	go tw.loop(abs, dump)
	return tw, nil
}

func (tw *TriggerWatcher) loop(abs string, dump func()) {
	defer close(tw.done)
	for {
		select {
		case ev, ok := <-tw.w.Events:
			if !ok {
				return
			}
			if ev.Name != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				dump()
			}
		case _, ok := <-tw.w.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher and waits for its loop to exit.
func (tw *TriggerWatcher) Close() error {
	err := tw.w.Close()
	<-tw.done
	return err
}
