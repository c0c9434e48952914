package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// watcher wraps an fsnotify watcher on the organized directory so the plan
// view can refresh when files appear, vanish, or get renamed underneath it.
type watcher struct {
	fw  *fsnotify.Watcher
	dir string
}

func newWatcher(dir string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &watcher{fw: fw, dir: dir}, nil
}

// wait blocks on the next filesystem event. Closing the watcher delivers a
// watchErrMsg, which the model treats as end-of-watch rather than a failure.
// Messages carry their source so the model can discard waits from a watcher
// it has since replaced.
func (w *watcher) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case _, ok := <-w.fw.Events:
			if !ok {
				return watchErrMsg{src: w}
			}
			return fsEventMsg{src: w}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return watchErrMsg{src: w}
			}
			return watchErrMsg{src: w, err: err}
		}
	}
}

func (w *watcher) close() {
	_ = w.fw.Close()
}
