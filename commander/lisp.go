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
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/steelseries/golisp"

	np "github.com/timburks/notepad/types"
)

// The commander that lisp primitives act on.
var current *Commander

// an interactive command runs a commander method without arguments
type interactive func(c *Commander)

var interactiveCommands = map[string]interactive{
	"new-file":            (*Commander).newFile,
	"open-file":           (*Commander).openFile,
	"save-file":           func(c *Commander) { c.saveFile(nil) },
	"save-as-file":        func(c *Commander) { c.saveAsFile(nil) },
	"exit":                (*Commander).exit,
	"undo":                func(c *Commander) { c.editor.Undo() },
	"redo":                func(c *Commander) { c.editor.Redo() },
	"cut":                 func(c *Commander) { c.report(c.editor.Cut()) },
	"copy-selection":      func(c *Commander) { c.report(c.editor.Copy()) },
	"paste":               func(c *Commander) { c.report(c.editor.Paste()) },
	"select-all":          func(c *Commander) { c.editor.SelectAll() },
	"clear-selection":     func(c *Commander) { c.editor.ClearSelection() },
	"set-mark":            func(c *Commander) { c.editor.SetMark() },
	"find-prompt":         (*Commander).find,
	"find-next":           (*Commander).findNext,
	"replace":             (*Commander).replace,
	"toggle-theme":        func(c *Commander) { c.editor.ToggleDarkMode() },
	"reload":              func(c *Commander) { c.reload() },
	"goto-line-prompt":    (*Commander).gotoLinePrompt,
	"lisp-prompt":         (*Commander).lispPrompt,
	"up":                  func(c *Commander) { c.editor.MoveCursor(np.MoveUp, 1) },
	"down":                func(c *Commander) { c.editor.MoveCursor(np.MoveDown, 1) },
	"left":                func(c *Commander) { c.editor.MoveCursor(np.MoveLeft, 1) },
	"right":               func(c *Commander) { c.editor.MoveCursor(np.MoveRight, 1) },
	"scroll-up":           func(c *Commander) { c.editor.MoveCursor(np.MoveUp, 3) },
	"scroll-down":         func(c *Commander) { c.editor.MoveCursor(np.MoveDown, 3) },
	"word-left":           func(c *Commander) { c.editor.MoveToPreviousWord() },
	"word-right":          func(c *Commander) { c.editor.MoveToNextWord() },
	"home":                func(c *Commander) { c.editor.MoveToBeginningOfLine() },
	"end":                 func(c *Commander) { c.editor.MoveToEndOfLine() },
	"beginning-of-buffer": func(c *Commander) { c.editor.MoveToBeginningOfBuffer() },
	"end-of-buffer":       func(c *Commander) { c.editor.MoveToEndOfBuffer() },
	"page-up":             func(c *Commander) { c.editor.PageUp() },
	"page-down":           func(c *Commander) { c.editor.PageDown() },
	"newline":             func(c *Commander) { c.editor.InsertChar('\n') },
	"tab":                 func(c *Commander) { c.editor.InsertChar('\t') },
	"backspace":           func(c *Commander) { c.editor.BackspaceChar() },
	"delete":              func(c *Commander) { c.editor.DeleteChar() },
}

func init() {
	for name, command := range interactiveCommands {
		command := command
		golisp.MakePrimitiveFunction(name, "0", func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
			if current == nil {
				return nil, errors.New("no editor")
			}
			command(current)
			return nil, nil
		})
	}
	golisp.MakePrimitiveFunction("open", "1", openImpl)
	golisp.MakePrimitiveFunction("save", "0", saveImpl)
	golisp.MakePrimitiveFunction("save-as", "1", saveAsImpl)
	golisp.MakePrimitiveFunction("insert", "1", insertImpl)
	golisp.MakePrimitiveFunction("find-all", "1", findAllImpl)
	golisp.MakePrimitiveFunction("replace-all", "2", replaceAllImpl)
	golisp.MakePrimitiveFunction("goto-line", "1", gotoLineImpl)
	golisp.MakePrimitiveFunction("theme", "1", themeImpl)
	golisp.MakePrimitiveFunction("syntax", "1", syntaxImpl)
	golisp.MakePrimitiveFunction("text", "0", textImpl)
	golisp.MakePrimitiveFunction("message", "1", messageImpl)
}

func stringArgument(name string, d *golisp.Data) (string, error) {
	if !golisp.StringP(d) {
		return "", errors.New(name + " requires a string argument")
	}
	return golisp.StringValue(d), nil
}

func integerArgument(name string, d *golisp.Data) (int, error) {
	switch {
	case golisp.IntegerP(d):
		return int(golisp.IntegerValue(d)), nil
	case golisp.FloatP(d):
		return int(golisp.FloatValue(d)), nil
	}
	return 0, errors.New(name + " requires a number argument")
}

func openImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	path, err := stringArgument("open", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	if err = current.open(path); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(path), nil
}

func saveImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	path := current.editor.GetFileName()
	if path == "" {
		return nil, errors.New("save requires a file name, use save-as")
	}
	if err := current.write(path, nil); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(path), nil
}

func saveAsImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	path, err := stringArgument("save-as", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	if err = current.write(path, nil); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(path), nil
}

func insertImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	text, err := stringArgument("insert", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	current.editor.InsertString(text)
	return nil, nil
}

func findAllImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	text, err := stringArgument("find-all", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	current.searchText = text
	return golisp.IntegerWithValue(int64(current.editor.FindAll(text))), nil
}

func replaceAllImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	find, err := stringArgument("replace-all", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	replace, err := stringArgument("replace-all", golisp.Cadr(args))
	if err != nil {
		return nil, err
	}
	if find == "" {
		return nil, errors.New("replace-all requires text to find")
	}
	return golisp.IntegerWithValue(int64(current.editor.ReplaceAll(find, replace))), nil
}

func gotoLineImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	line, err := integerArgument("goto-line", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	current.editor.GotoLine(line)
	return golisp.IntegerWithValue(int64(current.editor.GetCursor().Row + 1)), nil
}

func themeImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	name, err := stringArgument("theme", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	if err = current.editor.UseTheme(name); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(current.editor.GetTheme().Name), nil
}

func syntaxImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	name, err := stringArgument("syntax", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	if err = current.editor.SetLanguage(name); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(current.editor.GetBuffer().GetLanguage()), nil
}

func textImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.StringWithValue(current.editor.GetText()), nil
}

func messageImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	text, err := stringArgument("message", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	current.message("%s", text)
	return nil, nil
}

// report shows clipboard failures.
func (c *Commander) report(err error) {
	if err != nil {
		c.error("%v", err)
	}
}

// parseEval evaluates an expression against this commander and returns the
// printed result, or the error message.
func (c *Commander) parseEval(command string) string {
	current = c
	value, err := golisp.ParseAndEval(command)
	if err != nil {
		log.Printf("ERR %+v", err)
		if c.batch {
			c.error("%v", err)
		}
		return err.Error()
	}
	return golisp.String(value)
}

// ParseEval evaluates a lisp expression.
func (c *Commander) ParseEval(command string) string {
	return c.parseEval(command)
}

// ParseEvalFile runs a lisp script without a screen.
func (c *Commander) ParseEvalFile(path string) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.ParseEvalScript(string(bytes))
}

// ParseEvalScript runs the expressions of a script in order.
func (c *Commander) ParseEvalScript(script string) error {
	c.batch = true
	defer func() { c.batch = false }()
	current = c
	_, err := golisp.ParseAndEval("(begin " + script + "\n)")
	if err != nil {
		log.Printf("ERR %+v", err)
	}
	return err
}
