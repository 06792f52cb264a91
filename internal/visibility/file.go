package visibility

import (
	"fmt"
	"os"
	"path/filepath"

	"git.sr.ht/~spc/go-log"
	"github.com/fsnotify/fsnotify"
)

// FileSource reports Hidden while the pause file exists and Visible otherwise.
type FileSource struct {
	broadcaster
	path      string
	fsWatcher *fsnotify.Watcher
	done      chan struct{}
}

func NewFileSource(path string) *FileSource {
	path = filepath.Clean(path)
	return &FileSource{
		broadcaster: broadcaster{current: stateOf(path)},
		path:        path,
	}
}

// Start watches the directory of the pause file, which must exist.
func (f *FileSource) Start() error {
	dir := filepath.Dir(f.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("pause file directory not found: %s", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	err = watcher.Add(dir)
	if err != nil {
		_ = watcher.Close()
		return err
	}

	f.fsWatcher = watcher
	f.done = make(chan struct{})
	log.Infof("watching pause file %s", f.path)

	// the file may have changed before the watch was in place
	f.refresh()
	go f.watchFSEvents()
	return nil
}

func (f *FileSource) Close() error {
	if f.fsWatcher == nil {
		return nil
	}
	err := f.fsWatcher.Close()
	<-f.done
	return err
}

func (f *FileSource) watchFSEvents() {
	defer close(f.done)
	for {
		select {
		case event, ok := <-f.fsWatcher.Events:
			if !ok {
				log.Debugf("stopped watching pause file %s", f.path)
				return
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			log.Debugf("captured file system event: %s", event)
			f.refresh()
		case err, ok := <-f.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Errorf("error detected on pause file watcher: %s", err)
		}
	}
}

func (f *FileSource) refresh() {
	state := stateOf(f.path)
	if f.set(state) {
		log.Infof("pause file %s changed visibility to '%s'", f.path, state)
	}
}

func stateOf(path string) State {
	if _, err := os.Stat(path); err == nil {
		return Hidden
	}
	return Visible
}
