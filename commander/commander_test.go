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
package commander

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/notepad/dialogs"
	"github.com/timburks/notepad/editor"
	"github.com/timburks/notepad/theme"
	np "github.com/timburks/notepad/types"
)

func setup() *Commander {
	return NewCommander(editor.NewEditor(), dialogs.NewPrompter())
}

func press(c *Commander, k np.Key) {
	c.ProcessEvent(&np.Event{Type: np.EventKey, Key: k})
}

func alt(c *Commander, ch rune) {
	c.ProcessEvent(&np.Event{Type: np.EventKey, Ch: ch, Mod: np.ModAlt})
}

func typeText(c *Commander, text string) {
	for _, ch := range text {
		switch ch {
		case ' ':
			press(c, np.KeySpace)
		case '\n':
			press(c, np.KeyEnter)
		default:
			c.ProcessEvent(&np.Event{Type: np.EventKey, Ch: ch})
		}
	}
}

func message(c *Commander) string {
	text, _ := c.GetPrompter().Message()
	return text
}

func TestTypingAndUndo(t *testing.T) {
	c := setup()
	typeText(c, "hello world\nsecond")
	assert.Equal(t, "hello world\nsecond", c.GetEditor().GetText())
	press(c, np.KeyBackspace)
	press(c, np.KeyHome)
	press(c, np.KeyDelete)
	assert.Equal(t, "hello world\necon", c.GetEditor().GetText())
	press(c, np.KeyCtrlZ)
	assert.Equal(t, "hello world\nsecon", c.GetEditor().GetText())
	press(c, np.KeyCtrlY)
	assert.Equal(t, "hello world\necon", c.GetEditor().GetText())
	assert.Equal(t, "edit", c.GetModeName())
}

func TestSaveAsks(t *testing.T) {
	c := setup()
	path := filepath.Join(t.TempDir(), "notes.txt")
	typeText(c, "some notes")
	press(c, np.KeyCtrlS)
	assert.Equal(t, np.ModePrompt, c.GetMode())
	assert.Equal(t, "Save as: ", c.GetMessageBarText())
	typeText(c, path)
	press(c, np.KeyEnter)

	assert.Equal(t, np.ModeEdit, c.GetMode())
	assert.Equal(t, savedMessage, message(c))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "some notes", string(data))

	// a named file saves without asking
	typeText(c, "!")
	press(c, np.KeyCtrlS)
	assert.False(t, c.GetPrompter().Active())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "some notes!", string(data))
}

func TestSaveAsKeys(t *testing.T) {
	for _, bind := range []func(c *Commander){
		func(c *Commander) { alt(c, 's') },
		func(c *Commander) { press(c, np.KeyF12) },
	} {
		c := setup()
		bind(c)
		assert.Equal(t, "Save as: ", c.GetMessageBarText())
		press(c, np.KeyEsc)
		assert.False(t, c.GetPrompter().Active())
	}
}

func TestSaveError(t *testing.T) {
	c := setup()
	typeText(c, "x")
	press(c, np.KeyCtrlS)
	typeText(c, filepath.Join(t.TempDir(), "missing", "notes.txt"))
	press(c, np.KeyEnter)
	text, isError := c.GetPrompter().Message()
	assert.True(t, isError)
	assert.True(t, strings.HasPrefix(text, "Could not save file: "), text)
	assert.True(t, c.GetEditor().Modified())
}

func TestNewFileConfirms(t *testing.T) {
	c := setup()
	typeText(c, "draft")
	press(c, np.KeyCtrlN)
	assert.Equal(t, askSaveCurrent+" (y/n) ", c.GetMessageBarText())
	typeText(c, "n")
	assert.Equal(t, "draft", c.GetEditor().GetText())

	path := filepath.Join(t.TempDir(), "draft.txt")
	press(c, np.KeyCtrlN)
	typeText(c, "y")
	assert.Equal(t, "Save as: ", c.GetMessageBarText())
	typeText(c, path+"\n")
	assert.Equal(t, "", c.GetEditor().GetText())
	assert.Equal(t, "", c.GetEditor().GetFileName())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "draft", string(data))

	// nothing to save
	typeText(c, "x")
	press(c, np.KeyCtrlZ)
	c.GetEditor().New()
	press(c, np.KeyCtrlN)
	assert.False(t, c.GetPrompter().Active())
}

func TestOpenFile(t *testing.T) {
	c := setup()
	press(c, np.KeyCtrlO)
	assert.Equal(t, "Open file: ", c.GetMessageBarText())
	typeText(c, "../editor/testdata/sample.py\n")
	assert.Equal(t, "../editor/testdata/sample.py", c.GetEditor().GetFileName())
	assert.Equal(t, editor.Python, c.GetEditor().GetBuffer().GetLanguage())

	press(c, np.KeyCtrlO)
	typeText(c, "no-such-file.txt\n")
	text, isError := c.GetPrompter().Message()
	assert.True(t, isError)
	assert.True(t, strings.HasPrefix(text, "Could not open file: "), text)
	assert.Equal(t, "../editor/testdata/sample.py", c.GetEditor().GetFileName())
}

func TestExit(t *testing.T) {
	t.Run("unmodified", func(t *testing.T) {
		c := setup()
		press(c, np.KeyCtrlQ)
		assert.False(t, c.IsRunning())
	})
	t.Run("discard", func(t *testing.T) {
		c := setup()
		typeText(c, "x")
		press(c, np.KeyCtrlQ)
		assert.Equal(t, askSaveOnExit+" (y/n) ", c.GetMessageBarText())
		assert.True(t, c.IsRunning())
		press(c, np.KeyEsc)
		assert.False(t, c.IsRunning())
	})
	t.Run("save", func(t *testing.T) {
		c := setup()
		path := filepath.Join(t.TempDir(), "exit.txt")
		require.NoError(t, c.GetEditor().WriteFile(path))
		typeText(c, "saved on exit")
		press(c, np.KeyCtrlQ)
		typeText(c, "y")
		assert.False(t, c.IsRunning())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "saved on exit", string(data))
	})
	t.Run("failed save keeps editing", func(t *testing.T) {
		c := setup()
		c.GetEditor().SetFileName(filepath.Join(t.TempDir(), "missing", "exit.txt"))
		typeText(c, "unsaved")
		press(c, np.KeyCtrlQ)
		typeText(c, "y")
		assert.True(t, c.IsRunning())
		text, isError := c.GetPrompter().Message()
		assert.True(t, isError)
		assert.True(t, strings.HasPrefix(text, "Could not save file: "), text)
		assert.Equal(t, "unsaved", c.GetEditor().GetText())
	})
}

func TestFind(t *testing.T) {
	c := setup()
	typeText(c, "one two one")
	press(c, np.KeyCtrlF)
	assert.Equal(t, findPrompt+" ", c.GetMessageBarText())
	typeText(c, "one\n")
	e := c.GetEditor()
	assert.Len(t, e.GetBuffer().GetFound(), 2)
	// the cursor was at the end, so the search wrapped
	r, ok := e.GetSelection()
	require.True(t, ok)
	assert.Equal(t, np.Point{Row: 0, Col: 0}, r.Start)

	press(c, np.KeyF3)
	r, _ = e.GetSelection()
	assert.Equal(t, np.Point{Row: 0, Col: 8}, r.Start)

	press(c, np.KeyCtrlF)
	press(c, np.KeyEnd)
	typeText(c, "s\n")
	assert.Equal(t, notFoundMessage, message(c))
}

func TestReplace(t *testing.T) {
	c := setup()
	typeText(c, "one two one")
	press(c, np.KeyCtrlH)
	assert.Equal(t, findWhatPrompt+" ", c.GetMessageBarText())
	typeText(c, "one\n")
	assert.Equal(t, replacePrompt+" ", c.GetMessageBarText())
	typeText(c, "1\n")
	assert.Equal(t, "1 two 1", c.GetEditor().GetText())
	assert.Equal(t, replacedMessage, message(c))

	press(c, np.KeyCtrlH)
	press(c, np.KeyHome)
	for range "one" {
		press(c, np.KeyDelete)
	}
	typeText(c, "three\n\n")
	assert.Equal(t, notFoundMessage, message(c))

	press(c, np.KeyCtrlZ)
	assert.Equal(t, "one two one", c.GetEditor().GetText())
}

func TestGotoLine(t *testing.T) {
	c := setup()
	typeText(c, "a\nb\nc\nd")
	press(c, np.KeyCtrlG)
	typeText(c, "3\n")
	assert.Equal(t, np.Point{Row: 2, Col: 0}, c.GetEditor().GetCursor())

	press(c, np.KeyCtrlG)
	typeText(c, "three\n")
	_, isError := c.GetPrompter().Message()
	assert.True(t, isError)
}

func TestToggleTheme(t *testing.T) {
	c := setup()
	press(c, np.KeyCtrlT)
	assert.Equal(t, theme.Dark, c.GetEditor().GetTheme().Name)
	press(c, np.KeyCtrlT)
	assert.Equal(t, theme.Light, c.GetEditor().GetTheme().Name)
}

func TestClipboardKeys(t *testing.T) {
	c := setup()
	typeText(c, "copy me")
	press(c, np.KeyCtrlA)
	press(c, np.KeyCtrlC)
	press(c, np.KeyEsc)
	press(c, np.KeyEnd)
	press(c, np.KeyCtrlV)
	assert.Equal(t, "copy mecopy me", c.GetEditor().GetText())
	press(c, np.KeyCtrlA)
	press(c, np.KeyCtrlX)
	assert.Equal(t, "", c.GetEditor().GetText())
}

func TestLispPrompt(t *testing.T) {
	c := setup()
	press(c, np.KeyF2)
	assert.Equal(t, np.ModeLisp, c.GetMode())
	assert.Equal(t, evalPrompt+" ", c.GetMessageBarText())
	typeText(c, `(insert "hi")`+"\n")
	assert.Equal(t, np.ModeEdit, c.GetMode())
	assert.Equal(t, "hi", c.GetEditor().GetText())

	alt(c, 'x')
	assert.Equal(t, np.ModeLisp, c.GetMode())
	press(c, np.KeyEsc)
	assert.Equal(t, np.ModeEdit, c.GetMode())
}

func TestMouseSelection(t *testing.T) {
	c := setup()
	typeText(c, "hello world")
	c.ProcessEvent(&np.Event{Type: np.EventMouse, Key: np.KeyMouseLeft, Mouse: np.Point{Row: 0, Col: 6}})
	c.ProcessEvent(&np.Event{Type: np.EventMouse, Key: np.KeyMouseLeft, Mod: np.ModMotion, Mouse: np.Point{Row: 0, Col: 11}})
	c.ProcessEvent(&np.Event{Type: np.EventMouse, Key: np.KeyMouseRelease, Mouse: np.Point{Row: 0, Col: 11}})
	assert.Equal(t, "world", c.GetEditor().SelectedText())

	// a click without a drag only places the cursor
	c.ProcessEvent(&np.Event{Type: np.EventMouse, Key: np.KeyMouseLeft, Mouse: np.Point{Row: 0, Col: 2}})
	c.ProcessEvent(&np.Event{Type: np.EventMouse, Key: np.KeyMouseRelease, Mouse: np.Point{Row: 0, Col: 2}})
	_, ok := c.GetEditor().GetSelection()
	assert.False(t, ok)
	typeText(c, "y")
	assert.Equal(t, "heyllo world", c.GetEditor().GetText())
}

type fakeChanges struct {
	watched []string
	changed []string
}

func (f *fakeChanges) Watch(path string) error {
	f.watched = append(f.watched, path)
	return nil
}

func (f *fakeChanges) Drain() []string {
	changed := f.changed
	f.changed = nil
	return changed
}

func TestChangesOnDisk(t *testing.T) {
	c := setup()
	changes := &fakeChanges{}
	c.SetChanges(changes)
	path := filepath.Join(t.TempDir(), "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))
	require.NoError(t, c.open(path))
	assert.Equal(t, []string{path}, changes.watched)

	// our own save is not reported
	typeText(c, "x")
	press(c, np.KeyCtrlS)
	c.GetPrompter().ClearMessage()
	changes.changed = []string{path}
	c.ProcessEvent(&np.Event{Type: np.EventInterrupt})
	assert.Equal(t, "", message(c))

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	changes.changed = []string{path, "other.txt"}
	c.ProcessEvent(&np.Event{Type: np.EventInterrupt})
	assert.Equal(t, changedOnDisk, message(c))

	press(c, np.KeyCtrlR)
	assert.Equal(t, "xv1", c.GetEditor().GetText())
}

func TestScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.py")
	var out bytes.Buffer
	c := setup()
	c.SetOutput(&out)
	script := `
(insert "x = 1")
(message (text))
(save-as "` + path + `")
(replace-all "1" "2")
(goto-line 1)
(theme "blue")
(syntax "javascript")
(message "done")
(save)
`
	require.NoError(t, c.ParseEvalScript(script))
	assert.Equal(t, "x = 1\n"+savedMessage+"\n"+"done\n"+savedMessage+"\n", out.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 2", string(data))
	e := c.GetEditor()
	assert.Equal(t, np.Point{Row: 0, Col: 0}, e.GetCursor())
	assert.Equal(t, theme.Blue, e.GetTheme().Name)
	assert.Equal(t, editor.JavaScript, e.GetBuffer().GetLanguage())

	assert.Error(t, c.ParseEvalScript(`(open "no-such-file.txt")`))
	assert.Error(t, c.ParseEvalScript(`(theme "plaid")`))
}

func TestParseEvalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lisp")
	require.NoError(t, os.WriteFile(path, []byte(`(insert "scripted")`), 0644))
	c := setup()
	c.SetOutput(&bytes.Buffer{})
	require.NoError(t, c.ParseEvalFile(path))
	assert.Equal(t, "scripted", c.GetEditor().GetText())
	assert.Error(t, c.ParseEvalFile(path+".missing"))
}

func TestOpenRefusesInvalidUTF8(t *testing.T) {
	c := setup()
	press(c, np.KeyCtrlO)
	typeText(c, "../editor/testdata/latin1.txt\n")
	text, isError := c.GetPrompter().Message()
	assert.True(t, isError)
	assert.Equal(t, "Could not open file: ../editor/testdata/latin1.txt is not valid UTF-8 text", text)
	assert.Equal(t, "", c.GetEditor().GetFileName())
	assert.Equal(t, "", c.GetEditor().GetText())
}

func TestEditorCommandsKeepListPrimitives(t *testing.T) {
	assert.NotContains(t, interactiveCommands, "find")
	assert.NotContains(t, interactiveCommands, "copy")
	assert.Contains(t, interactiveCommands, "find-prompt")
	assert.Contains(t, interactiveCommands, "copy-selection")

	c := setup()
	assert.Equal(t, "(1 2 3)", c.ParseEval(`(copy '(1 2 3))`))
	assert.Equal(t, "2", c.ParseEval(`(find (lambda (x) (> x 1)) '(1 2 3))`))

	c.GetEditor().InsertString("hello")
	c.GetEditor().SelectAll()
	c.ParseEval("(copy-selection)")
	c.ParseEval("(clear-selection)")
	c.GetEditor().MoveToEndOfBuffer()
	c.ParseEval("(paste)")
	assert.Equal(t, "hellohello", c.GetEditor().GetText())

	c.ParseEval("(find-prompt)")
	assert.Equal(t, "Enter text to find: ", c.GetMessageBarText())
}
