package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/odesza/chargehud/internal/config"
)

// configReloadMsg carries the re-read config file after an on-disk change.
type configReloadMsg struct {
	cfg config.FileConfig
	err error
}

// ConfigWatcher reloads the TOML config when it changes on disk, so hold
// timeout or gamepad binding edits apply without restarting the HUD.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewConfigWatcher watches the directory containing the config file.
// Editors replace the file on save, so watching the file itself would lose
// the watch after the first write.
func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		if cerr := watcher.Close(); cerr != nil {
			_ = cerr
		}
		return nil, err
	}
	return &ConfigWatcher{path: path, watcher: watcher}, nil
}

// waitCmd blocks until the config file changes, then emits a reload message.
func (w *ConfigWatcher) waitCmd() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if event.Name != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				cfg, err := config.LoadConfig(w.path)
				return configReloadMsg{cfg: cfg, err: err}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				return configReloadMsg{err: err}
			}
		}
	}
}

// Close releases the watcher.
func (w *ConfigWatcher) Close() error {
	return w.watcher.Close()
}
