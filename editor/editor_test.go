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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/notepad/theme"
	np "github.com/timburks/notepad/types"
)

const source = "testdata/gettysburg.txt"

func setup(t *testing.T, path string) *Editor {
	editor := NewEditor()
	require.NoError(t, editor.ReadFile(path))
	return editor
}

// final writes the editor contents and compares them with the expected file.
func final(t *testing.T, editor *Editor, expected string) {
	out := filepath.Join(t.TempDir(), "final"+filepath.Ext(expected))
	require.NoError(t, editor.WriteFile(out))
	want, err := os.ReadFile(expected)
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

// read and write a file without changing it
func TestReadWriteInvariance(t *testing.T) {
	for _, path := range []string{source, "testdata/crlf.txt", "testdata/sample.py"} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			editor := setup(t, path)
			assert.False(t, editor.Modified())
			final(t, editor, path)
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	editor := NewEditor()
	assert.Error(t, editor.ReadFile("testdata/missing.txt"))
	assert.Error(t, editor.ReadFile("testdata"))
	assert.Equal(t, "", editor.GetFileName())
}

func TestReadFileDetectsLanguage(t *testing.T) {
	assert.Equal(t, PlainText, setup(t, source).GetBuffer().GetLanguage())
	assert.Equal(t, Python, setup(t, "testdata/sample.py").GetBuffer().GetLanguage())
}

func TestCRLF(t *testing.T) {
	editor := setup(t, "testdata/crlf.txt")
	assert.Equal(t, "first line\nsecond\tline\nthird line\n", editor.GetText())
	editor.MoveToEndOfBuffer()
	editor.InsertString("fourth line\n")
	assert.Equal(t, "first line\r\nsecond\tline\r\nthird line\r\nfourth line\r\n",
		string(editor.GetBuffer().Bytes()))
}

func TestTypingUndoRedo(t *testing.T) {
	editor := NewEditor()
	for _, c := range "hello" {
		editor.InsertChar(c)
	}
	assert.Equal(t, "hello", editor.GetText())
	assert.True(t, editor.Modified())

	// consecutive characters undo together
	editor.Undo()
	assert.Equal(t, "", editor.GetText())
	assert.True(t, editor.CanRedo())

	editor.Redo()
	assert.Equal(t, "hello", editor.GetText())
	assert.Equal(t, np.Point{Row: 0, Col: 5}, editor.GetCursor())

	// undo and redo with empty stacks do nothing
	editor.Redo()
	assert.Equal(t, "hello", editor.GetText())
}

func TestMovingEndsTyping(t *testing.T) {
	editor := NewEditor()
	editor.InsertChar('a')
	editor.InsertChar('b')
	editor.MoveCursor(np.MoveLeft, 1)
	editor.InsertChar('c')
	assert.Equal(t, "acb", editor.GetText())
	editor.Undo()
	assert.Equal(t, "ab", editor.GetText())
	editor.Undo()
	assert.Equal(t, "", editor.GetText())
	assert.False(t, editor.CanUndo())
}

func TestNewEditClearsRedo(t *testing.T) {
	editor := NewEditor()
	editor.InsertChar('a')
	editor.Undo()
	require.True(t, editor.CanRedo())
	editor.InsertChar('b')
	assert.False(t, editor.CanRedo())
	assert.Equal(t, "b", editor.GetText())
}

func TestBackspace(t *testing.T) {
	t.Run("while typing", func(t *testing.T) {
		editor := NewEditor()
		for _, c := range "abc" {
			editor.InsertChar(c)
		}
		editor.BackspaceChar()
		assert.Equal(t, "ab", editor.GetText())
		editor.Undo()
		assert.Equal(t, "", editor.GetText())
	})
	t.Run("joins lines", func(t *testing.T) {
		editor := NewEditor()
		editor.InsertString("ab\ncd")
		editor.MoveToBeginningOfLine()
		editor.BackspaceChar()
		assert.Equal(t, "abcd", editor.GetText())
		assert.Equal(t, np.Point{Row: 0, Col: 2}, editor.GetCursor())
		editor.Undo()
		assert.Equal(t, "ab\ncd", editor.GetText())
	})
	t.Run("at start of buffer", func(t *testing.T) {
		editor := NewEditor()
		editor.BackspaceChar()
		assert.False(t, editor.CanUndo())
	})
}

func TestDeleteChar(t *testing.T) {
	editor := NewEditor()
	editor.InsertString("ab\ncd")
	editor.SetCursor(np.Point{Row: 0, Col: 2})
	editor.DeleteChar()
	assert.Equal(t, "abcd", editor.GetText())
	editor.MoveToEndOfBuffer()
	editor.DeleteChar()
	assert.Equal(t, "abcd", editor.GetText())
}

func TestCopyCutPaste(t *testing.T) {
	editor := NewEditor()
	editor.InsertString("hello world")
	editor.SetCursor(np.Point{})
	editor.SetMark()
	editor.MoveCursor(np.MoveRight, 5)
	assert.Equal(t, "hello", editor.SelectedText())
	require.NoError(t, editor.Copy())

	editor.ClearSelection()
	editor.MoveToEndOfLine()
	require.NoError(t, editor.Paste())
	assert.Equal(t, "hello worldhello", editor.GetText())

	editor.SelectAll()
	require.NoError(t, editor.Cut())
	assert.Equal(t, "", editor.GetText())
	require.NoError(t, editor.Paste())
	assert.Equal(t, "hello worldhello", editor.GetText())
}

func TestTypingReplacesSelection(t *testing.T) {
	editor := NewEditor()
	editor.InsertString("hello world")
	editor.SetCursor(np.Point{})
	editor.SetMark()
	editor.MoveCursor(np.MoveRight, 5)
	editor.InsertChar('J')
	editor.InsertChar('o')
	assert.Equal(t, "Jo world", editor.GetText())
	editor.Undo()
	assert.Equal(t, "hello world", editor.GetText())
}

func TestFindAll(t *testing.T) {
	editor := setup(t, source)
	assert.Equal(t, 5, editor.FindAll("nation"))
	assert.Len(t, editor.GetBuffer().GetFound(), 5)
	assert.Equal(t, 1, editor.FindAll("Now"))
	assert.Equal(t, 0, editor.FindAll(""))
	assert.Equal(t, 0, editor.FindAll("Gettysburg"))

	editor.SetText("aaaa")
	assert.Equal(t, 2, editor.FindAll("aa"))

	// an edit clears the highlights
	editor.InsertChar('b')
	assert.Empty(t, editor.GetBuffer().GetFound())
}

func TestFindNextWraps(t *testing.T) {
	editor := NewEditor()
	editor.InsertString("one two one")
	editor.MoveToBeginningOfBuffer()

	expect := func(start, end int) {
		r, ok := editor.GetSelection()
		require.True(t, ok)
		assert.Equal(t, np.Range{Start: np.Point{Col: start}, End: np.Point{Col: end}}, r)
	}
	require.True(t, editor.FindNext("one"))
	expect(0, 3)
	require.True(t, editor.FindNext("one"))
	expect(8, 11)
	require.True(t, editor.FindNext("one"))
	expect(0, 3)
	require.True(t, editor.FindPrevious("one"))
	expect(8, 11)
	assert.False(t, editor.FindNext("three"))
}

func TestReplaceAll(t *testing.T) {
	editor := NewEditor()
	editor.InsertString("one two one")
	assert.Equal(t, 2, editor.ReplaceAll("one", "three"))
	assert.Equal(t, "three two three", editor.GetText())
	editor.Undo()
	assert.Equal(t, "one two one", editor.GetText())
	editor.Redo()
	assert.Equal(t, "three two three", editor.GetText())

	assert.Equal(t, 0, editor.ReplaceAll("four", "five"))
	assert.Equal(t, "three two three", editor.GetText())
}

func TestWriteFile(t *testing.T) {
	editor := NewEditor()
	editor.InsertString("print('hi')\n")
	assert.Error(t, editor.WriteFile(""))

	path := filepath.Join(t.TempDir(), "hi.py")
	require.NoError(t, editor.WriteFile(path))
	assert.False(t, editor.Modified())
	assert.Equal(t, path, editor.GetFileName())
	assert.Equal(t, Python, editor.GetBuffer().GetLanguage())
	assert.False(t, editor.LastWrite().IsZero())
}

func TestFormatOnSave(t *testing.T) {
	dir := t.TempDir()
	editor := NewEditor()
	editor.FormatOnSave = true
	require.NoError(t, editor.SetLanguage(Go))

	editor.InsertString("package main\n\nfunc  main( ) {}\n")
	path := filepath.Join(dir, "main.go")
	require.NoError(t, editor.WriteFile(path))
	bytes, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main() {}\n", string(bytes))

	// source that does not parse is saved as it is
	editor.New()
	require.NoError(t, editor.SetLanguage(Go))
	editor.InsertString("package main\nfunc (\n")
	require.NoError(t, editor.WriteFile(path))
	bytes, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package main\nfunc (\n", string(bytes))
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("before\n"), 0644))
	editor := setup(t, path)
	require.NoError(t, os.WriteFile(path, []byte("after\n"), 0644))
	require.NoError(t, editor.Reload())
	assert.Equal(t, "after\n", editor.GetText())
	assert.False(t, editor.Modified())
	editor.Undo()
	assert.Equal(t, "before\n", editor.GetText())

	assert.Error(t, NewEditor().Reload())
}

func TestNew(t *testing.T) {
	editor := setup(t, source)
	editor.InsertChar('x')
	editor.New()
	assert.Equal(t, "", editor.GetText())
	assert.Equal(t, "", editor.GetFileName())
	assert.False(t, editor.Modified())
	assert.False(t, editor.CanUndo())
}

func TestThemes(t *testing.T) {
	editor := NewEditor()
	assert.Equal(t, theme.Light, editor.GetTheme().Name)
	editor.ToggleDarkMode()
	assert.Equal(t, theme.Dark, editor.GetTheme().Name)
	editor.ToggleDarkMode()
	assert.Equal(t, theme.Light, editor.GetTheme().Name)
	require.NoError(t, editor.UseTheme("blue"))
	assert.Equal(t, theme.Blue, editor.GetTheme().Name)
	assert.Error(t, editor.UseTheme("plaid"))
}

func TestStatusText(t *testing.T) {
	editor := setup(t, source)
	assert.Equal(t, "Ln 1, Col 1", editor.StatusText())
	editor.GotoLine(3)
	editor.MoveToNextWord()
	assert.Equal(t, "Ln 3, Col 13", editor.StatusText())
}

func TestSetFileNameForNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.py")
	editor := NewEditor()
	editor.SetFileName(path)
	assert.Equal(t, path, editor.GetFileName())
	assert.Equal(t, Python, editor.GetBuffer().GetLanguage())
	assert.False(t, editor.Modified())

	editor.InsertString("x = 1\n")
	require.NoError(t, editor.WriteFile(editor.GetFileName()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(data))
}

func TestReadFileRefusesInvalidUTF8(t *testing.T) {
	editor := setup(t, source)
	err := editor.ReadFile("testdata/latin1.txt")
	require.Error(t, err)
	assert.Equal(t, "testdata/latin1.txt is not valid UTF-8 text", err.Error())
	assert.Equal(t, source, editor.GetFileName())

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("café\n"), 0644))
	editor = setup(t, path)
	latin1, err := os.ReadFile("testdata/latin1.txt")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, latin1, 0644))
	assert.Error(t, editor.Reload())
	assert.Equal(t, "café\n", editor.GetText())
}

func TestPasteIntoCRLF(t *testing.T) {
	editor := setup(t, "testdata/crlf.txt")
	clipboard := &MemoryClipboard{}
	editor.SetClipboard(clipboard)
	require.NoError(t, clipboard.WriteAll("pasted\r\nlines\r\n"))
	editor.MoveToEndOfBuffer()
	require.NoError(t, editor.Paste())
	assert.Equal(t, "first line\r\nsecond\tline\r\nthird line\r\npasted\r\nlines\r\n",
		string(editor.GetBuffer().Bytes()))
}
