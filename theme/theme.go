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

// Package theme holds the color schemes used to draw the editor.
package theme

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	np "github.com/timburks/notepad/types"
)

const (
	Light = "light"
	Dark  = "dark"
	Blue  = "blue"
)

// A Theme assigns colors to every part of the screen.
type Theme struct {
	Name                string
	Background          np.Color
	Foreground          np.Color
	GutterBackground    np.Color
	GutterForeground    np.Color
	StatusBackground    np.Color
	StatusForeground    np.Color
	SelectionBackground np.Color
	SelectionForeground np.Color
	FoundBackground     np.Color
	FoundForeground     np.Color
	Keyword             np.Color
	Comment             np.Color
	String              np.Color
	Number              np.Color
	Function            np.Color
}

// Dark reports whether the theme counts as dark mode.
func (t *Theme) Dark() bool {
	return t.Name == Dark
}

// TagColor returns the foreground color for a highlighted rune.
func (t *Theme) TagColor(tag np.Tag) np.Color {
	switch tag {
	case np.TagKeyword:
		return t.Keyword
	case np.TagComment:
		return t.Comment
	case np.TagString:
		return t.String
	case np.TagNumber:
		return t.Number
	case np.TagFunction:
		return t.Function
	default:
		return t.Foreground
	}
}

// named colors understood by Parse
var named = map[string]np.Color{
	"white":      0xffffff,
	"black":      0x000000,
	"lightgray":  0xd3d3d3,
	"gray":       0x808080,
	"blue":       0x0000ff,
	"darkblue":   0x00008b,
	"green":      0x008000,
	"red":        0xff0000,
	"purple":     0x800080,
	"darkorange": 0xff8c00,
	"yellow":     0xffff00,
	"navy":       0x000080,
}

// Parse reads a color written as "#rrggbb" or as a color name.
func Parse(s string) (np.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return np.Color(v), nil
		}
	}
	return 0, errors.Errorf("invalid color %q", s)
}

func mustParse(s string) np.Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func newLight() *Theme {
	return &Theme{
		Name:                Light,
		Background:          mustParse("white"),
		Foreground:          mustParse("black"),
		GutterBackground:    mustParse("lightgray"),
		GutterForeground:    mustParse("black"),
		StatusBackground:    mustParse("lightgray"),
		StatusForeground:    mustParse("black"),
		SelectionBackground: mustParse("#add6ff"),
		SelectionForeground: mustParse("black"),
		FoundBackground:     mustParse("yellow"),
		FoundForeground:     mustParse("black"),
		Keyword:             mustParse("blue"),
		Comment:             mustParse("green"),
		String:              mustParse("red"),
		Number:              mustParse("purple"),
		Function:            mustParse("darkorange"),
	}
}

func newDark() *Theme {
	return &Theme{
		Name:                Dark,
		Background:          mustParse("#2e2e2e"),
		Foreground:          mustParse("#ffffff"),
		GutterBackground:    mustParse("#3c3c3c"),
		GutterForeground:    mustParse("white"),
		StatusBackground:    mustParse("#3c3c3c"),
		StatusForeground:    mustParse("white"),
		SelectionBackground: mustParse("#264f78"),
		SelectionForeground: mustParse("white"),
		FoundBackground:     mustParse("yellow"),
		FoundForeground:     mustParse("black"),
		Keyword:             mustParse("#569cd6"),
		Comment:             mustParse("#6a9955"),
		String:              mustParse("#ce9178"),
		Number:              mustParse("#b5cea8"),
		Function:            mustParse("#dcdcaa"),
	}
}

func newBlue() *Theme {
	t := newLight()
	t.Name = Blue
	t.Background = mustParse("#e6f3ff")
	t.Foreground = mustParse("#000055")
	t.GutterBackground = mustParse("#cce5ff")
	t.GutterForeground = mustParse("darkblue")
	t.StatusBackground = mustParse("#cce5ff")
	t.StatusForeground = mustParse("darkblue")
	return t
}

// A Registry maps theme names to themes.
type Registry struct {
	themes map[string]*Theme
}

// NewRegistry returns a registry holding the built-in themes.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]*Theme)}
	for _, t := range []*Theme{newLight(), newDark(), newBlue()} {
		r.themes[t.Name] = t
	}
	return r
}

// Get returns a copy of the named theme.
func (r *Registry) Get(name string) (*Theme, error) {
	t, ok := r.themes[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown theme %q", name)
	}
	c := *t
	return &c, nil
}

// Names lists the registered themes in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Define adds a theme derived from base, with colors overridden by the
// entries of colors. Keys are the snake_case field names, e.g. "gutter_background".
func (r *Registry) Define(name, base string, colors map[string]string) error {
	if base == "" {
		base = Light
	}
	t, err := r.Get(base)
	if err != nil {
		return err
	}
	t.Name = strings.ToLower(name)
	for key, value := range colors {
		c, err := Parse(value)
		if err != nil {
			return errors.Wrapf(err, "theme %s", name)
		}
		field := t.field(key)
		if field == nil {
			return errors.Errorf("theme %s: unknown color %q", name, key)
		}
		*field = c
	}
	r.themes[t.Name] = t
	return nil
}

func (t *Theme) field(key string) *np.Color {
	switch key {
	case "background":
		return &t.Background
	case "foreground":
		return &t.Foreground
	case "gutter_background":
		return &t.GutterBackground
	case "gutter_foreground":
		return &t.GutterForeground
	case "status_background":
		return &t.StatusBackground
	case "status_foreground":
		return &t.StatusForeground
	case "selection_background":
		return &t.SelectionBackground
	case "selection_foreground":
		return &t.SelectionForeground
	case "found_background":
		return &t.FoundBackground
	case "found_foreground":
		return &t.FoundForeground
	case "keyword":
		return &t.Keyword
	case "comment":
		return &t.Comment
	case "string":
		return &t.String
	case "number":
		return &t.Number
	case "function":
		return &t.Function
	}
	return nil
}

// Toggle returns the theme that the dark mode switch moves to.
func (r *Registry) Toggle(current *Theme) *Theme {
	name := Dark
	if current != nil && current.Dark() {
		name = Light
	}
	t, _ := r.Get(name)
	return t
}
