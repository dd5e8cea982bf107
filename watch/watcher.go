// Package watch reports on-disk changes to the viewed file so the
// editor can reload it on an idle tick.
package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher coalesces change events for one file into at most a single
// pending notification
type Watcher struct {
	fw   *fsnotify.Watcher
	ch   chan struct{}
	done chan struct{}
}

// New watches path. The parent directory is watched rather than the
// file itself: editors that write via rename replace the inode, which
// would silently drop a direct file watch.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fw:   fw,
		ch:   make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go w.loop(filepath.Base(abs))
	return w, nil
}

// loop filters directory events down to the watched file
func (w *Watcher) loop(base string) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.ch <- struct{}{}:
			default:
				// Notification already pending
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}

// Changes returns the notification channel
func (w *Watcher) Changes() <-chan struct{} {
	return w.ch
}

// Close stops the watcher and waits for the event loop to drain
func (w *Watcher) Close() {
	w.fw.Close()
	<-w.done
}
