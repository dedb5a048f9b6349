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

	np "github.com/timburks/notepad/types"
)

// A Buffer represents a file being edited.
// It always holds at least one row.
type Buffer struct {
	rows        []*Row
	fileName    string
	language    string
	crlf        bool       // true if the file used \r\n line endings
	found       []np.Range // highlighted search results
	Highlighted bool
}

func NewBuffer() *Buffer {
	b := &Buffer{}
	b.rows = []*Row{NewRow("")}
	b.language = PlainText
	return b
}

func (b *Buffer) GetFileName() string {
	return b.fileName
}

func (b *Buffer) SetFileName(name string) {
	b.fileName = name
}

func (b *Buffer) GetLanguage() string {
	return b.language
}

// LoadBytes replaces the contents of the buffer. A file whose every line
// ends with \r\n is stored with \n and written back with \r\n.
func (b *Buffer) LoadBytes(bytes []byte) {
	s := string(bytes)
	n := strings.Count(s, "\n")
	b.crlf = n > 0 && strings.Count(s, "\r\n") == n
	if b.crlf {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	b.SetText(s)
}

// Bytes returns the contents as they should be written to disk.
func (b *Buffer) Bytes() []byte {
	if b.crlf {
		return []byte(strings.ReplaceAll(b.Text(), "\n", "\r\n"))
	}
	return []byte(b.Text())
}

// SetText replaces the contents with text.
func (b *Buffer) SetText(text string) {
	lines := strings.Split(text, "\n")
	b.rows = make([]*Row, 0, len(lines))
	for _, line := range lines {
		b.rows = append(b.rows, NewRow(line))
	}
	b.changed()
}

// Text returns the contents with \n line separators.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, row := range b.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row.Text))
	}
	return sb.String()
}

func (b *Buffer) changed() {
	b.Highlighted = false
	b.found = nil
}

func (b *Buffer) GetRowCount() int {
	return len(b.rows)
}

func (b *Buffer) GetRow(i int) *Row {
	if i >= 0 && i < len(b.rows) {
		return b.rows[i]
	}
	return nil
}

func (b *Buffer) GetRowLength(i int) int {
	if i >= 0 && i < len(b.rows) {
		return b.rows[i].Length()
	}
	return 0
}

func (b *Buffer) GetCharacterAt(p np.Point) rune {
	if p.Row >= 0 && p.Row < len(b.rows) {
		row := b.rows[p.Row]
		if p.Col >= 0 && p.Col < row.Length() {
			return row.Text[p.Col]
		}
	}
	return rune(0)
}

func (b *Buffer) TextAfter(row, col int) string {
	if row < len(b.rows) {
		return b.rows[row].TextAfter(col)
	}
	return ""
}

// Clip moves p onto the nearest valid position.
func (b *Buffer) Clip(p np.Point) np.Point {
	p.Row = clipToRange(p.Row, 0, len(b.rows)-1)
	p.Col = clipToRange(p.Col, 0, b.rows[p.Row].Length())
	return p
}

// End returns the position after the last character.
func (b *Buffer) End() np.Point {
	last := len(b.rows) - 1
	return np.Point{Row: last, Col: b.rows[last].Length()}
}

// InsertText inserts text at p and returns the position after it.
func (b *Buffer) InsertText(p np.Point, text string) np.Point {
	p = b.Clip(p)
	if text == "" {
		return p
	}
	b.changed()
	lines := strings.Split(text, "\n")
	row := b.rows[p.Row]
	if len(lines) == 1 {
		runes := []rune(text)
		row.Insert(p.Col, runes)
		return np.Point{Row: p.Row, Col: p.Col + len(runes)}
	}
	tail := row.Split(p.Col)
	row.Insert(p.Col, []rune(lines[0]))
	added := make([]*Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		added = append(added, NewRow(line))
	}
	last := added[len(added)-1]
	end := np.Point{Row: p.Row + len(added), Col: last.Length()}
	last.Join(tail)
	rows := make([]*Row, 0, len(b.rows)+len(added))
	rows = append(rows, b.rows[0:p.Row+1]...)
	rows = append(rows, added...)
	rows = append(rows, b.rows[p.Row+1:]...)
	b.rows = rows
	return end
}

// DeleteText deletes up to count characters at p, counting each line break
// as one character, and returns the deleted text.
func (b *Buffer) DeleteText(p np.Point, count int) string {
	p = b.Clip(p)
	if count <= 0 {
		return ""
	}
	b.changed()
	var deleted strings.Builder
	for count > 0 {
		row := b.rows[p.Row]
		if available := row.Length() - p.Col; available > 0 {
			n := count
			if n > available {
				n = available
			}
			deleted.WriteString(string(row.Delete(p.Col, n)))
			count -= n
		} else if p.Row < len(b.rows)-1 {
			// join next row to current row
			row.Join(b.rows[p.Row+1])
			b.rows = append(b.rows[0:p.Row+1], b.rows[p.Row+2:]...)
			deleted.WriteByte('\n')
			count--
		} else {
			break
		}
	}
	return deleted.String()
}

// Offset converts a position into a rune offset into Text().
func (b *Buffer) Offset(p np.Point) int {
	p = b.Clip(p)
	offset := 0
	for i := 0; i < p.Row; i++ {
		offset += b.rows[i].Length() + 1
	}
	return offset + p.Col
}

// PointAt converts a rune offset into Text() into a position.
func (b *Buffer) PointAt(offset int) np.Point {
	if offset < 0 {
		offset = 0
	}
	for i, row := range b.rows {
		if offset <= row.Length() {
			return np.Point{Row: i, Col: offset}
		}
		offset -= row.Length() + 1
	}
	return b.End()
}

// Highlight recomputes the tags of every row with h.
// A nil highlighter clears them.
func (b *Buffer) Highlight(h Highlighter) {
	for _, row := range b.rows {
		row.ClearTags()
	}
	b.Highlighted = true
	if h == nil {
		return
	}
	starts := make([]int, len(b.rows))
	offset := 0
	for i, row := range b.rows {
		starts[i] = offset
		offset += row.Length() + 1
	}
	for _, span := range h.Highlight(b.Text()) {
		b.tagSpan(starts, span)
	}
}

func (b *Buffer) tagSpan(starts []int, span np.Span) {
	// find the row holding the start of the span
	i := 0
	for i+1 < len(starts) && starts[i+1] <= span.Start {
		i++
	}
	for ; i < len(b.rows) && starts[i] < span.End; i++ {
		row := b.rows[i]
		from := clipToRange(span.Start-starts[i], 0, row.Length())
		to := clipToRange(span.End-starts[i], 0, row.Length())
		for k := from; k < to; k++ {
			row.Tags[k] = span.Tag
		}
	}
}

// SetFound records the ranges highlighted by the last search.
func (b *Buffer) SetFound(ranges []np.Range) {
	b.found = ranges
}

func (b *Buffer) GetFound() []np.Range {
	return b.found
}

// IsFound reports whether p is inside a highlighted search result.
func (b *Buffer) IsFound(p np.Point) bool {
	for _, r := range b.found {
		if r.Contains(p) {
			return true
		}
	}
	return false
}
