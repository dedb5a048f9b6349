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
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/timburks/notepad/operations"
	"github.com/timburks/notepad/theme"
	np "github.com/timburks/notepad/types"
)

// The Editor manages the editing of text in a Buffer.
// There is typically only one editor in a notepad instance.
type Editor struct {
	buffer       *Buffer
	window       *Window
	highlighter  Highlighter
	theme        *theme.Theme
	themes       *theme.Registry
	clipboard    Clipboard
	undo         []np.Operation     // stack of operations to undo
	redo         []np.Operation     // stack of undone operations to redo
	insert       np.InsertOperation // characters being typed, undone together
	modified     bool
	lastWrite    time.Time         // modification time of our last save
	extensions   map[string]string // extension -> language overrides
	FormatOnSave bool
}

func NewEditor() *Editor {
	e := &Editor{}
	e.buffer = NewBuffer()
	e.window = NewWindow(e.buffer)
	e.clipboard = &MemoryClipboard{}
	e.themes = theme.NewRegistry()
	e.theme, _ = e.themes.Get(theme.Light)
	e.extensions = make(map[string]string)
	return e
}

func (e *Editor) SetClipboard(c Clipboard) {
	e.clipboard = c
}

func (e *Editor) SetTabWidth(n int) {
	e.window.SetTabWidth(n)
}

// SetLanguageOverrides maps file extensions to language names.
func (e *Editor) SetLanguageOverrides(extensions map[string]string) {
	e.extensions = extensions
}

func (e *Editor) GetBuffer() *Buffer {
	return e.buffer
}

func (e *Editor) GetWindow() *Window {
	return e.window
}

func (e *Editor) GetFileName() string {
	return e.buffer.GetFileName()
}

func (e *Editor) Modified() bool {
	return e.modified
}

// LastWrite is the modification time of the file after our last save.
func (e *Editor) LastWrite() time.Time {
	return e.lastWrite
}

// New discards the buffer and starts an empty, untitled one.
func (e *Editor) New() {
	e.reset(NewBuffer())
	e.highlighter = nil
}

func (e *Editor) reset(b *Buffer) {
	e.buffer = b
	tabWidth := e.window.tabWidth
	e.window = NewWindow(b)
	e.window.SetTabWidth(tabWidth)
	e.undo = nil
	e.redo = nil
	e.insert = nil
	e.modified = false
	e.lastWrite = time.Time{}
}

// ReadFile replaces the buffer with the contents of a file and picks a
// highlighter from the file name.
func (e *Editor) ReadFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory", path)
	}
	bytes, err := readText(path)
	if err != nil {
		return err
	}
	b := NewBuffer()
	b.LoadBytes(bytes)
	b.SetFileName(path)
	e.reset(b)
	e.lastWrite = info.ModTime()
	if err := e.SetLanguage(LanguageForFile(path, e.extensions)); err != nil {
		log.Printf("%v", err)
		e.SetLanguage(PlainText)
	}
	log.Printf("read %s (%d bytes, %s)", path, len(bytes), e.buffer.GetLanguage())
	return nil
}

// readText reads a file that must hold UTF-8 text.
func readText(path string) ([]byte, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !utf8.Valid(bytes) {
		return nil, errors.Errorf("%s is not valid UTF-8 text", path)
	}
	return bytes, nil
}

// Reload reads the file again as an undoable replacement of the text.
func (e *Editor) Reload() error {
	path := e.buffer.GetFileName()
	if path == "" {
		return errors.New("no file to reload")
	}
	bytes, err := readText(path)
	if err != nil {
		return err
	}
	scratch := NewBuffer()
	scratch.LoadBytes(bytes)
	e.Perform(operations.NewReplace(e.GetCursor(), scratch.Text()))
	e.buffer.crlf = scratch.crlf
	e.modified = false
	if info, err := os.Stat(path); err == nil {
		e.lastWrite = info.ModTime()
	}
	return nil
}

// WriteFile saves the buffer to path, which becomes the buffer's file.
func (e *Editor) WriteFile(path string) error {
	if path == "" {
		return errors.New("no file name")
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if e.FormatOnSave && e.buffer.GetLanguage() == Go {
		e.formatGo()
	}
	if err := os.WriteFile(path, e.buffer.Bytes(), mode); err != nil {
		return errors.WithStack(err)
	}
	if path != e.buffer.GetFileName() {
		e.buffer.SetFileName(path)
		if e.buffer.GetLanguage() == PlainText {
			e.SetLanguage(LanguageForFile(path, e.extensions))
		}
	}
	e.modified = false
	if info, err := os.Stat(path); err == nil {
		e.lastWrite = info.ModTime()
	}
	log.Printf("wrote %s", path)
	return nil
}

// SetFileName names the buffer without reading it, as for a file that
// doesn't exist yet.
func (e *Editor) SetFileName(path string) {
	e.buffer.SetFileName(path)
	if err := e.SetLanguage(LanguageForFile(path, e.extensions)); err != nil {
		e.SetLanguage(PlainText)
	}
}

// SetLanguage selects the highlighter used for the buffer.
func (e *Editor) SetLanguage(name string) error {
	h, err := HighlighterFor(name)
	if err != nil {
		return err
	}
	e.highlighter = h
	e.buffer.language = name
	e.buffer.Highlighted = false
	return nil
}

func (e *Editor) GetTheme() *theme.Theme {
	return e.theme
}

func (e *Editor) SetTheme(t *theme.Theme) {
	if t != nil {
		e.theme = t
	}
}

// SetThemes replaces the registry used to look up themes by name.
func (e *Editor) SetThemes(r *theme.Registry) {
	e.themes = r
}

func (e *Editor) GetThemes() *theme.Registry {
	return e.themes
}

// UseTheme selects a theme by name.
func (e *Editor) UseTheme(name string) error {
	t, err := e.themes.Get(name)
	if err != nil {
		return err
	}
	e.theme = t
	return nil
}

// ToggleDarkMode switches between the light and dark themes.
func (e *Editor) ToggleDarkMode() {
	if t := e.themes.Toggle(e.theme); t != nil {
		e.theme = t
	}
}

// Editable

func (e *Editor) GetCursor() np.Point {
	return e.window.GetCursor()
}

func (e *Editor) SetCursor(cursor np.Point) {
	e.window.SetCursor(cursor)
}

func (e *Editor) Clip(p np.Point) np.Point {
	return e.buffer.Clip(p)
}

func (e *Editor) InsertText(p np.Point, text string) np.Point {
	return e.buffer.InsertText(p, text)
}

func (e *Editor) DeleteText(p np.Point, count int) string {
	return e.buffer.DeleteText(p, count)
}

func (e *Editor) GetText() string {
	return e.buffer.Text()
}

func (e *Editor) SetText(text string) {
	e.buffer.SetText(text)
}

// Undo and redo

func (e *Editor) Perform(op np.Operation) {
	e.CloseInsert()
	inverse := op.Perform(e)
	// save the inverse of the operation for undo
	if inverse != nil {
		e.undo = append(e.undo, inverse)
	}
	e.redo = nil
	e.modified = true
}

func (e *Editor) CanUndo() bool {
	return len(e.undo) > 0
}

func (e *Editor) CanRedo() bool {
	return len(e.redo) > 0
}

func (e *Editor) Undo() {
	e.CloseInsert()
	if len(e.undo) > 0 {
		last := len(e.undo) - 1
		undo := e.undo[last]
		e.undo = e.undo[0:last]
		if redo := undo.Perform(e); redo != nil {
			e.redo = append(e.redo, redo)
		}
		e.window.ClearSelection()
		e.modified = true
	}
}

func (e *Editor) Redo() {
	e.CloseInsert()
	if len(e.redo) > 0 {
		last := len(e.redo) - 1
		redo := e.redo[last]
		e.redo = e.redo[0:last]
		if undo := redo.Perform(e); undo != nil {
			e.undo = append(e.undo, undo)
		}
		e.window.ClearSelection()
		e.modified = true
	}
}

// CloseInsert ends the current run of typing.
func (e *Editor) CloseInsert() {
	e.insert = nil
}

// Typing

// InsertChar types a character, replacing the selection if there is one.
// Consecutive characters are merged into a single undoable insert.
func (e *Editor) InsertChar(c rune) {
	cursor := e.GetCursor()
	if r, ok := e.window.Selection(); ok {
		insert := operations.NewInsert(r.Start, string(c))
		e.Perform(&operations.Sequence{Operations: []np.Operation{
			operations.NewDelete(r.Start, e.countBetween(r)),
			insert,
		}})
		e.window.ClearSelection()
		e.insert = insert
		return
	}
	e.window.ClearSelection()
	if e.insert != nil && e.insert.End() == cursor {
		e.insert.AddCharacter(e, c)
		e.redo = nil
		e.modified = true
		return
	}
	insert := operations.NewInsert(cursor, string(c))
	e.Perform(insert)
	e.insert = insert
}

// InsertString inserts text at the cursor as one undoable step.
func (e *Editor) InsertString(text string) {
	if text == "" {
		return
	}
	if r, ok := e.window.Selection(); ok {
		e.Perform(&operations.Sequence{Operations: []np.Operation{
			operations.NewDelete(r.Start, e.countBetween(r)),
			operations.NewInsert(r.Start, text),
		}})
		e.window.ClearSelection()
		return
	}
	e.window.ClearSelection()
	e.Perform(operations.NewInsert(e.GetCursor(), text))
}

// BackspaceChar deletes the selection or the character before the cursor.
func (e *Editor) BackspaceChar() {
	if e.DeleteSelection() {
		return
	}
	cursor := e.GetCursor()
	if e.insert != nil && e.insert.End() == cursor && e.insert.DeleteCharacter(e) {
		e.modified = true
		return
	}
	var previous np.Point
	switch {
	case cursor.Col > 0:
		previous = np.Point{Row: cursor.Row, Col: cursor.Col - 1}
	case cursor.Row > 0:
		previous = np.Point{Row: cursor.Row - 1, Col: e.buffer.GetRowLength(cursor.Row - 1)}
	default:
		return
	}
	e.Perform(operations.NewDelete(previous, 1))
}

// DeleteChar deletes the selection or the character under the cursor.
func (e *Editor) DeleteChar() {
	if e.DeleteSelection() {
		return
	}
	if e.GetCursor() == e.buffer.End() {
		return
	}
	e.Perform(operations.NewDelete(e.GetCursor(), 1))
}

// Selection

func (e *Editor) countBetween(r np.Range) int {
	return e.buffer.Offset(r.End) - e.buffer.Offset(r.Start)
}

func (e *Editor) SetMark() {
	e.CloseInsert()
	e.window.SetAnchor(e.GetCursor())
}

func (e *Editor) SelectAll() {
	e.CloseInsert()
	e.window.SetAnchor(np.Point{})
	e.window.MoveToEndOfBuffer()
}

func (e *Editor) ClearSelection() {
	e.window.ClearSelection()
}

func (e *Editor) GetSelection() (np.Range, bool) {
	return e.window.Selection()
}

func (e *Editor) SelectedText() string {
	r, ok := e.window.Selection()
	if !ok {
		return ""
	}
	text := []rune(e.buffer.Text())
	return string(text[e.buffer.Offset(r.Start):e.buffer.Offset(r.End)])
}

// DeleteSelection removes the selected text, reporting whether there was any.
func (e *Editor) DeleteSelection() bool {
	r, ok := e.window.Selection()
	if !ok {
		e.window.ClearSelection()
		return false
	}
	e.Perform(operations.NewDelete(r.Start, e.countBetween(r)))
	e.window.ClearSelection()
	return true
}

func (e *Editor) Copy() error {
	text := e.SelectedText()
	if text == "" {
		return nil
	}
	return e.clipboard.WriteAll(text)
}

func (e *Editor) Cut() error {
	if err := e.Copy(); err != nil {
		return err
	}
	e.DeleteSelection()
	return nil
}

func (e *Editor) Paste() error {
	text, err := e.clipboard.ReadAll()
	if err != nil {
		return err
	}
	e.InsertString(strings.ReplaceAll(text, "\r\n", "\n"))
	return nil
}

// Cursor movement

func (e *Editor) beforeMove() {
	e.CloseInsert()
}

func (e *Editor) MoveCursor(direction int, multiplier int) {
	e.beforeMove()
	e.window.MoveCursor(direction, multiplier)
}

func (e *Editor) MoveToBeginningOfLine() {
	e.beforeMove()
	e.window.MoveToBeginningOfLine()
}

func (e *Editor) MoveToEndOfLine() {
	e.beforeMove()
	e.window.MoveToEndOfLine()
}

func (e *Editor) MoveToBeginningOfBuffer() {
	e.beforeMove()
	e.window.MoveToBeginningOfBuffer()
}

func (e *Editor) MoveToEndOfBuffer() {
	e.beforeMove()
	e.window.MoveToEndOfBuffer()
}

func (e *Editor) MoveToNextWord() {
	e.beforeMove()
	e.window.MoveToNextWord()
}

func (e *Editor) MoveToPreviousWord() {
	e.beforeMove()
	e.window.MoveToPreviousWord()
}

func (e *Editor) PageUp() {
	e.beforeMove()
	e.window.PageUp()
}

func (e *Editor) PageDown() {
	e.beforeMove()
	e.window.PageDown()
}

func (e *Editor) MoveCursorToLine(line int) {
	e.beforeMove()
	e.window.MoveToLine(line)
}

// MoveCursorToScreen places the cursor under a screen cell, as a mouse click does.
func (e *Editor) MoveCursorToScreen(p np.Point) {
	e.beforeMove()
	e.window.SetCursor(e.window.PointAtScreen(p))
}

// Display

// StatusText describes the cursor position, e.g. "Ln 3, Col 7".
func (e *Editor) StatusText() string {
	cursor := e.GetCursor()
	return fmt.Sprintf("Ln %d, Col %d", cursor.Row+1, cursor.Col+1)
}

// Render draws the buffer into r, highlighting it first if it changed.
func (e *Editor) Render(display np.Display, r np.Rect) {
	if !e.buffer.Highlighted {
		e.buffer.Highlight(e.highlighter)
	}
	e.window.Render(display, r, e.theme)
}
