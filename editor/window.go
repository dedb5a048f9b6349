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
	"strconv"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/timburks/notepad/theme"
	np "github.com/timburks/notepad/types"
)

const minimumGutterWidth = 4

// A Window manages the rectangular area that shows a buffer.
// It owns the cursor, the display offset and the selection anchor.
// Offsets are measured in rows and display columns, so tabs and wide
// characters scroll correctly.
type Window struct {
	buffer   *Buffer
	origin   np.Point
	size     np.Size
	gutter   int        // width of the line number column
	cursor   np.Point   // cursor position
	offset   np.Point   // first visible row and display column
	anchor   *np.Point  // other end of the selection, if any
	tabWidth int
}

func NewWindow(b *Buffer) *Window {
	return &Window{buffer: b, tabWidth: 8, size: np.Size{Rows: 24, Cols: 80}}
}

func (w *Window) SetTabWidth(n int) {
	if n > 0 {
		w.tabWidth = n
	}
}

func (w *Window) GetCursor() np.Point {
	return w.cursor
}

func (w *Window) SetCursor(cursor np.Point) {
	w.cursor = w.buffer.Clip(cursor)
}

// Selection returns the ordered selected range.
func (w *Window) Selection() (np.Range, bool) {
	if w.anchor == nil || *w.anchor == w.cursor {
		return np.Range{}, false
	}
	a, c := w.buffer.Clip(*w.anchor), w.cursor
	if c.Before(a) {
		return np.Range{Start: c, End: a}, true
	}
	return np.Range{Start: a, End: c}, true
}

func (w *Window) SetAnchor(p np.Point) {
	p = w.buffer.Clip(p)
	w.anchor = &p
}

func (w *Window) ClearSelection() {
	w.anchor = nil
}

func (w *Window) HasAnchor() bool {
	return w.anchor != nil
}

// textRows is the number of rows available for text.
func (w *Window) textRows() int {
	if w.size.Rows < 1 {
		return 1
	}
	return w.size.Rows
}

func (w *Window) textCols() int {
	cols := w.size.Cols - w.gutter
	if cols < 1 {
		return 1
	}
	return cols
}

func (w *Window) MoveCursor(direction int, multiplier int) {
	for i := 0; i < multiplier; i++ {
		switch direction {
		case np.MoveLeft:
			if w.cursor.Col > 0 {
				w.cursor.Col--
			} else if w.cursor.Row > 0 {
				w.cursor.Row--
				w.cursor.Col = w.buffer.GetRowLength(w.cursor.Row)
			}
		case np.MoveRight:
			if w.cursor.Col < w.buffer.GetRowLength(w.cursor.Row) {
				w.cursor.Col++
			} else if w.cursor.Row < w.buffer.GetRowCount()-1 {
				w.cursor.Row++
				w.cursor.Col = 0
			}
		case np.MoveUp:
			if w.cursor.Row > 0 {
				w.cursor.Row--
			}
		case np.MoveDown:
			if w.cursor.Row < w.buffer.GetRowCount()-1 {
				w.cursor.Row++
			}
		}
		// don't go past the end of the current line
		w.cursor = w.buffer.Clip(w.cursor)
	}
}

func (w *Window) MoveToBeginningOfLine() {
	w.cursor.Col = 0
}

func (w *Window) MoveToEndOfLine() {
	w.cursor.Col = w.buffer.GetRowLength(w.cursor.Row)
}

func (w *Window) MoveToBeginningOfBuffer() {
	w.cursor = np.Point{}
}

func (w *Window) MoveToEndOfBuffer() {
	w.cursor = w.buffer.End()
}

func (w *Window) PageUp() {
	w.MoveCursor(np.MoveUp, w.textRows())
}

func (w *Window) PageDown() {
	w.MoveCursor(np.MoveDown, w.textRows())
}

func isAlphaNumeric(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

// MoveToNextWord moves past the current word and any following space.
func (w *Window) MoveToNextWord() {
	end := w.buffer.End()
	if w.cursor == end {
		return
	}
	if w.cursor.Col >= w.buffer.GetRowLength(w.cursor.Row) {
		w.MoveCursor(np.MoveRight, 1)
		return
	}
	for w.cursor != end && w.cursor.Col < w.buffer.GetRowLength(w.cursor.Row) &&
		isAlphaNumeric(w.buffer.GetCharacterAt(w.cursor)) {
		w.cursor.Col++
	}
	for w.cursor.Col < w.buffer.GetRowLength(w.cursor.Row) &&
		!isAlphaNumeric(w.buffer.GetCharacterAt(w.cursor)) {
		w.cursor.Col++
	}
}

// MoveToPreviousWord moves to the start of the word before the cursor.
func (w *Window) MoveToPreviousWord() {
	if w.cursor.Col == 0 {
		w.MoveCursor(np.MoveLeft, 1)
		return
	}
	previous := func() rune {
		return w.buffer.GetCharacterAt(np.Point{Row: w.cursor.Row, Col: w.cursor.Col - 1})
	}
	for w.cursor.Col > 0 && !isAlphaNumeric(previous()) {
		w.cursor.Col--
	}
	for w.cursor.Col > 0 && isAlphaNumeric(previous()) {
		w.cursor.Col--
	}
}

func (w *Window) MoveToLine(line int) {
	w.cursor = w.buffer.Clip(np.Point{Row: line - 1, Col: 0})
}

// runeWidth is the number of cells c takes when it starts at display column x.
func (w *Window) runeWidth(c rune, x int) int {
	if c == '\t' {
		return w.tabWidth - x%w.tabWidth
	}
	if n := runewidth.RuneWidth(c); n > 0 {
		return n
	}
	return 1
}

// displayColumn converts a position into the display column of its row.
func (w *Window) displayColumn(p np.Point) int {
	row := w.buffer.GetRow(p.Row)
	if row == nil {
		return 0
	}
	x := 0
	for i := 0; i < p.Col && i < row.Length(); i++ {
		x += w.runeWidth(row.Text[i], x)
	}
	return x
}

// columnAt converts a display column into a position in the row.
func (w *Window) columnAt(rowIndex int, x int) int {
	row := w.buffer.GetRow(rowIndex)
	if row == nil {
		return 0
	}
	dx := 0
	for i, c := range row.Text {
		width := w.runeWidth(c, dx)
		if x < dx+width {
			return i
		}
		dx += width
	}
	return row.Length()
}

// PointAtScreen converts a screen cell into a buffer position.
func (w *Window) PointAtScreen(screen np.Point) np.Point {
	row := screen.Row - w.origin.Row + w.offset.Row
	row = clipToRange(row, 0, w.buffer.GetRowCount()-1)
	x := screen.Col - w.origin.Col - w.gutter + w.offset.Col
	if x < 0 {
		x = 0
	}
	return np.Point{Row: row, Col: w.columnAt(row, x)}
}

// Recompute the display offset to keep the cursor onscreen.
func (w *Window) adjustDisplayOffsetForScrolling() {
	if w.cursor.Row < w.offset.Row {
		// scroll up
		w.offset.Row = w.cursor.Row
	}
	if w.cursor.Row-w.offset.Row >= w.textRows() {
		// scroll down
		w.offset.Row = w.cursor.Row - w.textRows() + 1
	}
	x := w.displayColumn(w.cursor)
	if x < w.offset.Col {
		// scroll left
		w.offset.Col = x
	}
	if x-w.offset.Col >= w.textCols() {
		// scroll right
		w.offset.Col = x - w.textCols() + 1
	}
}

func (w *Window) layout(r np.Rect) {
	w.origin = r.Origin
	w.size = r.Size
	w.gutter = len(strconv.Itoa(w.buffer.GetRowCount())) + 1
	if w.gutter < minimumGutterWidth {
		w.gutter = minimumGutterWidth
	}
	if w.gutter > w.size.Cols/2 {
		w.gutter = w.size.Cols / 2
	}
}

// Render draws the line numbers and text of the buffer inside r.
func (w *Window) Render(display np.Display, r np.Rect, t *theme.Theme) {
	w.layout(r)
	w.adjustDisplayOffsetForScrolling()

	selection, selecting := w.Selection()
	for i := 0; i < w.size.Rows; i++ {
		y := w.origin.Row + i
		rowIndex := i + w.offset.Row
		w.renderGutter(display, y, rowIndex, t)

		row := w.buffer.GetRow(rowIndex)
		x := 0 // display column within the row
		if row != nil {
			for col, c := range row.Text {
				width := w.runeWidth(c, x)
				fg, bg := t.TagColor(row.Tags[col]), t.Background
				p := np.Point{Row: rowIndex, Col: col}
				if w.buffer.IsFound(p) {
					fg, bg = t.FoundForeground, t.FoundBackground
				}
				if selecting && selection.Contains(p) {
					fg, bg = t.SelectionForeground, t.SelectionBackground
				}
				for k := 0; k < width; k++ {
					ch := c
					if c == '\t' || k > 0 {
						ch = ' '
					}
					w.setTextCell(display, x+k, y, ch, fg, bg)
				}
				if x-w.offset.Col >= w.textCols() {
					break
				}
				x += width
			}
			// show a selected line break as one selected cell
			end := np.Point{Row: rowIndex, Col: row.Length()}
			if selecting && selection.Contains(end) {
				w.setTextCell(display, x, y, ' ', t.SelectionForeground, t.SelectionBackground)
				x++
			}
		}
		for ; x < w.offset.Col+w.textCols(); x++ {
			w.setTextCell(display, x, y, ' ', t.Foreground, t.Background)
		}
	}
	display.SetCursor(np.Point{
		Col: w.origin.Col + w.gutter + w.displayColumn(w.cursor) - w.offset.Col,
		Row: w.origin.Row + w.cursor.Row - w.offset.Row,
	})
}

// setTextCell draws a cell given its display column in the row.
func (w *Window) setTextCell(display np.Display, x, y int, c rune, fg, bg np.Color) {
	sx := x - w.offset.Col
	if sx < 0 || sx >= w.textCols() {
		return
	}
	display.SetCell(w.origin.Col+w.gutter+sx, y, c, fg, bg)
}

func (w *Window) renderGutter(display np.Display, y int, rowIndex int, t *theme.Theme) {
	label := ""
	if rowIndex < w.buffer.GetRowCount() {
		label = strconv.Itoa(rowIndex + 1)
	}
	for len(label) < w.gutter-1 {
		label = " " + label
	}
	label += " "
	for x, ch := range label {
		if x >= w.gutter {
			break
		}
		display.SetCell(w.origin.Col+x, y, ch, t.GutterForeground, t.GutterBackground)
	}
}
