package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// ChangeKind says which loader a changed file feeds.
type ChangeKind int

const (
	ChangeTuning ChangeKind = iota
	ChangeFiring
)

func (k ChangeKind) String() string {
	if k == ChangeFiring {
		return "firing"
	}
	return "tuning"
}

// Change is one debounced edit under a watched directory.
type Change struct {
	Path string
	Kind ChangeKind
}

// Classify maps a changed path to the data it affects. Tuning is
// tuning.yaml; any other yaml file or tengo script belongs to the firing
// table.
func Classify(path string, op fsnotify.Op) (Change, bool) {
	if op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return Change{}, false
	}
	base := strings.ToLower(filepath.Base(path))
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml":
		if strings.TrimSuffix(base, filepath.Ext(base)) == "tuning" {
			return Change{Path: path, Kind: ChangeTuning}, true
		}
		return Change{Path: path, Kind: ChangeFiring}, true
	case ".tengo":
		return Change{Path: path, Kind: ChangeFiring}, true
	}
	return Change{}, false
}

// Watcher reports edits to tuning files and firing scripts. Reloaded data is
// only applied at the next level setup, so a burst of writes from an editor
// collapses into one Change per file.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.Changes)
	defer close(w.Errors)

	seen := make(map[string]time.Time)
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Drop the error if the last one was never read.
			select {
			case w.Errors <- err:
			default:
			}
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			change, ok := Classify(evt.Name, evt.Op)
			if !ok {
				continue
			}
			now := time.Now()
			if prev, ok := seen[evt.Name]; ok && now.Sub(prev) < debounce {
				continue
			}
			seen[evt.Name] = now
			select {
			case w.Changes <- change:
			case <-w.done:
				return
			}
		}
	}
}
