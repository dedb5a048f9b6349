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
	"fmt"
	"io"
	"log"
	"os"

	"github.com/timburks/notepad/dialogs"
	"github.com/timburks/notepad/editor"
	np "github.com/timburks/notepad/types"
)

// Changes reports files that were modified outside the editor.
type Changes interface {
	Drain() []string
	Watch(path string) error
}

// The Commander converts user input into commands to the editor.
type Commander struct {
	editor     *editor.Editor
	prompter   *dialogs.Prompter // message bar
	dialogs    dialogs.Dialogs   // questions and messages, maybe native
	changes    Changes           // files changed on disk
	mode       int               // editor mode
	batch      bool              // true if commander is running a lisp script
	debug      bool              // debug mode displays information about events (key codes, etc)
	searchText string            // text of the last search
	dragging   bool              // true while the left mouse button is down
	output     io.Writer         // destination of messages in batch mode
}

func NewCommander(e *editor.Editor, p *dialogs.Prompter) *Commander {
	return &Commander{editor: e, prompter: p, dialogs: p, mode: np.ModeEdit, output: os.Stdout}
}

// SetDialogs replaces the message bar for file choosers and message boxes.
func (c *Commander) SetDialogs(d dialogs.Dialogs) {
	c.dialogs = d
}

func (c *Commander) SetChanges(changes Changes) {
	c.changes = changes
}

func (c *Commander) SetOutput(w io.Writer) {
	c.output = w
}

func (c *Commander) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Commander) GetEditor() *editor.Editor {
	return c.editor
}

func (c *Commander) GetPrompter() *dialogs.Prompter {
	return c.prompter
}

func (c *Commander) GetMode() int {
	if c.mode == np.ModeEdit && c.prompter.Active() {
		return np.ModePrompt
	}
	return c.mode
}

func (c *Commander) SetMode(m int) {
	c.mode = m
}

func (c *Commander) GetModeName() string {
	switch c.GetMode() {
	case np.ModeEdit:
		return "edit"
	case np.ModePrompt:
		return "prompt"
	case np.ModeLisp:
		return "lisp"
	case np.ModeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

func (c *Commander) IsRunning() bool {
	return c.mode != np.ModeQuit
}

func (c *Commander) ProcessEvent(event *np.Event) error {
	if c.debug {
		log.Printf("event=%+v", event)
	}
	switch event.Type {
	case np.EventKey:
		return c.processKey(event)
	case np.EventMouse:
		return c.processMouse(event)
	case np.EventInterrupt:
		return c.processChanges()
	case np.EventResize:
		return nil
	default:
		return nil
	}
}

// Key bindings are lisp expressions so that every action can be scripted.
var keyBindings = map[np.Key]string{
	np.KeyCtrlN:          "(new-file)",
	np.KeyCtrlO:          "(open-file)",
	np.KeyCtrlS:          "(save-file)",
	np.KeyF12:            "(save-as-file)",
	np.KeyCtrlQ:          "(exit)",
	np.KeyCtrlZ:          "(undo)",
	np.KeyCtrlY:          "(redo)",
	np.KeyCtrlX:          "(cut)",
	np.KeyCtrlC:          "(copy-selection)",
	np.KeyCtrlV:          "(paste)",
	np.KeyCtrlA:          "(select-all)",
	np.KeyCtrlF:          "(find-prompt)",
	np.KeyF3:             "(find-next)",
	np.KeyCtrlH:          "(replace)",
	np.KeyCtrlT:          "(toggle-theme)",
	np.KeyCtrlR:          "(reload)",
	np.KeyCtrlG:          "(goto-line-prompt)",
	np.KeyF2:             "(lisp-prompt)",
	np.KeyCtrlSpace:      "(set-mark)",
	np.KeyArrowUp:        "(up)",
	np.KeyArrowDown:      "(down)",
	np.KeyArrowLeft:      "(left)",
	np.KeyArrowRight:     "(right)",
	np.KeyHome:           "(home)",
	np.KeyEnd:            "(end)",
	np.KeyPgup:           "(page-up)",
	np.KeyPgdn:           "(page-down)",
	np.KeyEnter:          "(newline)",
	np.KeyTab:            "(tab)",
	np.KeyBackspace:      "(backspace)",
	np.KeyDelete:         "(delete)",
	np.KeyEsc:            "(clear-selection)",
	np.KeyMouseWheelUp:   "(scroll-up)",
	np.KeyMouseWheelDown: "(scroll-down)",
}

var altBindings = map[rune]string{
	's': "(save-as-file)",
	'x': "(lisp-prompt)",
	'f': "(word-right)",
	'b': "(word-left)",
	'<': "(beginning-of-buffer)",
	'>': "(end-of-buffer)",
}

func (c *Commander) processKey(event *np.Event) error {
	if c.prompter.Active() {
		c.prompter.HandleEvent(event)
		if c.mode == np.ModeLisp && !c.prompter.Active() {
			// the lisp prompt was cancelled
			c.mode = np.ModeEdit
		}
		return nil
	}
	c.prompter.ClearMessage()
	if event.Mod&np.ModAlt != 0 {
		if expression, ok := altBindings[event.Ch]; ok {
			c.parseEval(expression)
		}
		return nil
	}
	if event.Key == np.KeySpace {
		c.editor.InsertChar(' ')
		return nil
	}
	if event.Key != np.KeyUnsupported {
		if expression, ok := keyBindings[event.Key]; ok {
			c.parseEval(expression)
		}
		return nil
	}
	if event.Ch != 0 {
		c.editor.InsertChar(event.Ch)
	}
	return nil
}

func (c *Commander) processMouse(event *np.Event) error {
	if c.prompter.Active() {
		return nil
	}
	e := c.editor
	switch event.Key {
	case np.KeyMouseLeft:
		e.MoveCursorToScreen(event.Mouse)
		if event.Mod&np.ModMotion == 0 || !c.dragging {
			// a press starts a new selection
			e.SetMark()
			c.dragging = true
		}
	case np.KeyMouseRelease:
		if _, ok := e.GetSelection(); !ok {
			e.ClearSelection()
		}
		c.dragging = false
	case np.KeyMouseWheelUp, np.KeyMouseWheelDown:
		c.parseEval(keyBindings[event.Key])
	}
	return nil
}

// GetMessageBarText returns the prompt being answered or the last message.
func (c *Commander) GetMessageBarText() string {
	return c.prompter.Line()
}

func (c *Commander) message(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	if c.batch {
		fmt.Fprintln(c.output, text)
		return
	}
	c.dialogs.ShowInfo(text)
}

func (c *Commander) error(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	log.Printf("%s", text)
	if c.batch {
		fmt.Fprintln(c.output, text)
		return
	}
	c.dialogs.ShowError(text)
}
