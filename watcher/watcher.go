//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package watcher notices when the file being edited changes on disk.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const quietPeriod = 100 * time.Millisecond

// A Watcher watches the directory of one file at a time. Changes are
// queued for Drain and announced by calling notify from the watching
// goroutine, so notify must be safe to call from any goroutine.
type Watcher struct {
	watcher *fsnotify.Watcher
	notify  func()

	mutex   sync.Mutex
	dir     string // directory being watched
	target  string // absolute path of the watched file
	name    string // path of the watched file as given to Watch
	pending []string
	done    chan struct{}
}

func New(notify func()) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	w := &Watcher{watcher: watcher, notify: notify, done: make(chan struct{})}
	go w.run()
	return w, nil
}

// Watch replaces the watched file.
func (w *Watcher) Watch(path string) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return errors.WithStack(err)
	}
	dir := filepath.Dir(target)

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if dir != w.dir {
		if w.dir != "" {
			w.watcher.Remove(w.dir)
		}
		// editors often save by renaming, so watch the directory
		if err := w.watcher.Add(dir); err != nil {
			w.dir = ""
			return errors.Wrapf(err, "could not watch %s", dir)
		}
		w.dir = dir
	}
	w.target = target
	w.name = path
	return nil
}

// Drain returns the files that changed since the last call.
func (w *Watcher) Drain() []string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	pending := w.pending
	w.pending = nil
	return pending
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	// wait for a quiet period so that one save is reported once
	timer := time.NewTimer(quietPeriod)
	timer.Stop()
	changed := false
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.mutex.Lock()
			matches := filepath.Clean(event.Name) == w.target
			w.mutex.Unlock()
			if matches {
				changed = true
				timer.Reset(quietPeriod)
			}
		case <-timer.C:
			if !changed {
				continue
			}
			changed = false
			w.mutex.Lock()
			w.pending = append(w.pending, w.name)
			w.mutex.Unlock()
			if w.notify != nil {
				w.notify()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		}
	}
}
