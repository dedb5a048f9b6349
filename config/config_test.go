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
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/notepad/theme"
)

func write(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "notepad.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.NoError(t, c.Validate())
	assert.False(t, c.FormatOnSave)
	assert.False(t, c.NativeDialogs)
}

func TestLoad(t *testing.T) {
	path := write(t, `
theme = "dark"
tab_width = 4
native_dialogs = true
watch_files = false
log_file = "/tmp/np.log"

[languages]
jsx = "JavaScript"
".pyw" = "python"

[themes.solar]
base = "dark"
background = "#002b36"
keyword = "yellow"
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", c.Theme)
	assert.Equal(t, 4, c.TabWidth)
	assert.True(t, c.NativeDialogs)
	assert.False(t, c.WatchFiles)
	assert.True(t, c.SystemClipboard)
	assert.Equal(t, "/tmp/np.log", c.LogPath())
	assert.Equal(t, map[string]string{".jsx": "javascript", ".pyw": "python"}, c.Languages)

	r, err := c.Registry()
	require.NoError(t, err)
	solar, err := r.Get("solar")
	require.NoError(t, err)
	dark, err := r.Get(theme.Dark)
	require.NoError(t, err)
	background, _ := theme.Parse("#002b36")
	assert.Equal(t, background, solar.Background)
	assert.Equal(t, dark.Foreground, solar.Foreground)
	assert.NoError(t, c.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(write(t, "theme = "))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := map[string]string{
		"tab width":     "tab_width = 40",
		"unknown theme": `theme = "plaid"`,
		"bad color":     "[themes.x]\nbackground = \"#zzzzzz\"",
		"unknown color": "[themes.x]\nborder = \"red\"",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := Load(write(t, text))
			require.NoError(t, err)
			assert.Error(t, c.Validate())
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "notepad.toml")
	require.NoError(t, WriteDefault(path))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	// an existing file is left alone
	require.NoError(t, os.WriteFile(path, []byte("tab_width = 2\n"), 0644))
	require.NoError(t, WriteDefault(path))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.TabWidth)
}
