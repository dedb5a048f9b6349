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
	"strings"
	"unicode/utf8"

	"github.com/timburks/notepad/operations"
	np "github.com/timburks/notepad/types"
)

// occurrences returns the rune offsets of every non-overlapping match of
// text, scanning from the start of the buffer.
func (e *Editor) occurrences(text string) []int {
	if text == "" {
		return nil
	}
	contents := e.buffer.Text()
	n := utf8.RuneCountInString(text)
	var offsets []int
	runes, start := 0, 0
	for {
		i := strings.Index(contents[start:], text)
		if i < 0 {
			break
		}
		runes += utf8.RuneCountInString(contents[start : start+i])
		offsets = append(offsets, runes)
		runes += n
		start += i + len(text)
	}
	return offsets
}

// FindAll highlights every occurrence of text and returns how many there are.
// The search is literal and case-sensitive.
func (e *Editor) FindAll(text string) int {
	offsets := e.occurrences(text)
	n := utf8.RuneCountInString(text)
	found := make([]np.Range, 0, len(offsets))
	for _, offset := range offsets {
		found = append(found, np.Range{
			Start: e.buffer.PointAt(offset),
			End:   e.buffer.PointAt(offset + n),
		})
	}
	e.buffer.SetFound(found)
	return len(found)
}

// FindNext moves the cursor to the next occurrence of text after the
// cursor, wrapping around the end of the buffer, and selects it.
func (e *Editor) FindNext(text string) bool {
	offsets := e.occurrences(text)
	if len(offsets) == 0 {
		return false
	}
	cursor := e.buffer.Offset(e.GetCursor())
	if r, ok := e.window.Selection(); ok {
		cursor = e.buffer.Offset(r.End)
	}
	target := offsets[0]
	for _, offset := range offsets {
		if offset >= cursor {
			target = offset
			break
		}
	}
	e.selectOccurrence(target, utf8.RuneCountInString(text))
	return true
}

// FindPrevious moves to the occurrence of text before the cursor, wrapping
// around the start of the buffer.
func (e *Editor) FindPrevious(text string) bool {
	offsets := e.occurrences(text)
	if len(offsets) == 0 {
		return false
	}
	cursor := e.buffer.Offset(e.GetCursor())
	if r, ok := e.window.Selection(); ok {
		cursor = e.buffer.Offset(r.Start)
	}
	target := offsets[len(offsets)-1]
	for i := len(offsets) - 1; i >= 0; i-- {
		if offsets[i] < cursor {
			target = offsets[i]
			break
		}
	}
	e.selectOccurrence(target, utf8.RuneCountInString(text))
	return true
}

func (e *Editor) selectOccurrence(offset, length int) {
	e.CloseInsert()
	e.window.SetAnchor(e.buffer.PointAt(offset))
	e.window.SetCursor(e.buffer.PointAt(offset + length))
}

// ReplaceAll replaces every occurrence of find with replace as a single
// undoable operation and returns the number of replacements.
func (e *Editor) ReplaceAll(find, replace string) int {
	count := len(e.occurrences(find))
	if count == 0 {
		return 0
	}
	text := strings.ReplaceAll(e.buffer.Text(), find, replace)
	e.Perform(operations.NewReplace(e.GetCursor(), text))
	e.window.ClearSelection()
	return count
}

// GotoLine moves the cursor to the start of a 1-based line.
func (e *Editor) GotoLine(line int) {
	e.MoveCursorToLine(line)
	e.window.ClearSelection()
}
