package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// sessionWatcher refreshes the session list when checkbox creates or
// removes sessions while the selector is open.
type sessionWatcher struct {
	watcher *fsnotify.Watcher
	events  chan struct{}
}

func newSessionWatcher(root string) (*sessionWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(root); err != nil {
		w.Close()
		return nil, err
	}

	sw := &sessionWatcher{
		watcher: w,
		events:  make(chan struct{}, 1),
	}
	go sw.pump()
	return sw, nil
}

func (sw *sessionWatcher) pump() {
	for {
		select {
		case _, ok := <-sw.watcher.Events:
			if !ok {
				close(sw.events)
				return
			}
			// coalesce bursts; the reload rescans everything anyway
			select {
			case sw.events <- struct{}{}:
			default:
			}
		case _, ok := <-sw.watcher.Errors:
			if !ok {
				close(sw.events)
				return
			}
		}
	}
}

// waitCmd blocks until the next change notification.
func (sw *sessionWatcher) waitCmd() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-sw.events; !ok {
			return nil
		}
		return sessionsChangedMsg{}
	}
}

func (sw *sessionWatcher) Close() {
	sw.watcher.Close()
}
