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
package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0644))

	notified := make(chan struct{}, 10)
	w, err := New(func() { notified <- struct{}{} })
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(path))

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("two"), 0644))

	select {
	case <-notified:
	case <-time.After(5 * time.Second):
		t.Fatal("no notification")
	}
	assert.Equal(t, []string{path}, w.Drain())
	assert.Empty(t, w.Drain())
}

func TestWatchMissingDirectory(t *testing.T) {
	w, err := New(nil)
	require.NoError(t, err)
	defer w.Close()
	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing", "file.txt")))
}
