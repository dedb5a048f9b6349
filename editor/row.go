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
package editor

import (
	np "github.com/timburks/notepad/types"
)

// A row of text in the editor
type Row struct {
	Text []rune
	Tags []np.Tag
}

// Tabs are kept as they are; the window expands them when drawing.
func NewRow(text string) *Row {
	r := &Row{}
	r.SetText([]rune(text))
	return r
}

func (r *Row) SetText(text []rune) {
	r.Text = text
	r.Tags = make([]np.Tag, len(r.Text))
}

func (r *Row) GetText() []rune {
	return r.Text
}

func (r *Row) String() string {
	return string(r.Text)
}

func (r *Row) Length() int {
	return len(r.Text)
}

func (r *Row) ClearTags() {
	for j := range r.Tags {
		r.Tags[j] = np.TagNone
	}
}

// insert text at col, which is clipped to the row
func (r *Row) Insert(col int, text []rune) {
	col = clipToRange(col, 0, len(r.Text))
	line := make([]rune, 0, len(r.Text)+len(text))
	line = append(line, r.Text[0:col]...)
	line = append(line, text...)
	line = append(line, r.Text[col:]...)
	r.SetText(line)
}

// delete up to count characters at col and return them
func (r *Row) Delete(col, count int) []rune {
	if col < 0 || col >= len(r.Text) || count <= 0 {
		return nil
	}
	end := clipToRange(col+count, col, len(r.Text))
	deleted := append([]rune{}, r.Text[col:end]...)
	line := append(append([]rune{}, r.Text[0:col]...), r.Text[end:]...)
	r.SetText(line)
	return deleted
}

// splits row at col, return a new row containing the remaining text.
func (r *Row) Split(col int) *Row {
	if col < len(r.Text) {
		after := append([]rune{}, r.Text[col:]...)
		r.SetText(r.Text[0:col])
		return &Row{Text: after, Tags: make([]np.Tag, len(after))}
	}
	return NewRow("")
}

// joins rows by appending the passed-in row to the current row
func (r *Row) Join(other *Row) {
	r.SetText(append(append([]rune{}, r.Text...), other.Text...))
}

// returns the text after a specified column
func (r *Row) TextAfter(col int) string {
	if col < len(r.Text) {
		return string(r.Text[col:])
	}
	return ""
}

func clipToRange(i, min, max int) int {
	if i > max {
		i = max
	}
	if i < min {
		i = min
	}
	return i
}
