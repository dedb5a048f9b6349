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
// Package config reads the notepad settings file.
package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/timburks/notepad/theme"
)

const (
	DefaultPath    = "~/.notepad.toml"
	DefaultLogFile = "~/.notepadlog"
)

// Config holds the user's settings. Zero values are replaced by defaults.
type Config struct {
	Theme           string                       `toml:"theme"`
	TabWidth        int                          `toml:"tab_width"`
	NativeDialogs   bool                         `toml:"native_dialogs"`
	SystemClipboard bool                         `toml:"system_clipboard"`
	WatchFiles      bool                         `toml:"watch_files"`
	FormatOnSave    bool                         `toml:"format_on_save"`
	LogFile         string                       `toml:"log_file"`
	Languages       map[string]string            `toml:"languages"`
	Themes          map[string]map[string]string `toml:"themes"`
}

func Default() *Config {
	return &Config{
		Theme:           theme.Light,
		TabWidth:        8,
		SystemClipboard: true,
		WatchFiles:      true,
		LogFile:         DefaultLogFile,
		Languages:       map[string]string{},
		Themes:          map[string]map[string]string{},
	}
}

// Load reads the settings at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c, nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	for _, key := range md.Undecoded() {
		log.Printf("%s: ignoring unknown setting %s", path, key)
	}
	c.normalize()
	return c, nil
}

func (c *Config) normalize() {
	if c.Theme == "" {
		c.Theme = theme.Light
	}
	if c.TabWidth == 0 {
		c.TabWidth = 8
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	languages := make(map[string]string, len(c.Languages))
	for ext, name := range c.Languages {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		languages[ext] = strings.ToLower(name)
	}
	c.Languages = languages
}

// Registry returns the built-in themes plus those declared in the file.
// A declared theme may name its base with a "base" entry.
func (c *Config) Registry() (*theme.Registry, error) {
	r := theme.NewRegistry()
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		colors := make(map[string]string)
		base := ""
		for key, value := range c.Themes[name] {
			if key == "base" {
				base = value
			} else {
				colors[key] = value
			}
		}
		if err := r.Define(name, base, colors); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Validate checks the settings against the available themes.
func (c *Config) Validate() error {
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return errors.Errorf("tab_width must be between 1 and 16, not %d", c.TabWidth)
	}
	r, err := c.Registry()
	if err != nil {
		return err
	}
	if _, err := r.Get(c.Theme); err != nil {
		return err
	}
	return nil
}

// LogPath is the expanded path of the log file.
func (c *Config) LogPath() string {
	path, err := homedir.Expand(c.LogFile)
	if err != nil {
		return c.LogFile
	}
	return path
}

// WriteDefault creates a settings file with the default values if none
// exists at path.
func WriteDefault(path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	var b bytes.Buffer
	b.WriteString("# notepad settings\n\n")
	if err := toml.NewEncoder(&b).Encode(Default()); err != nil {
		return errors.WithStack(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(path, b.Bytes(), 0644))
}
