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
	"os"
	"strconv"
	"strings"

	np "github.com/timburks/notepad/types"
)

const (
	askSaveCurrent   = "Save changes to current file?"
	askSaveOnExit    = "Save changes before exiting?"
	savedMessage     = "File saved successfully!"
	couldNotOpen     = "Could not open file: %v"
	couldNotSave     = "Could not save file: %v"
	findPrompt       = "Enter text to find:"
	findWhatPrompt   = "Find what:"
	replacePrompt    = "Replace with:"
	replacedMessage  = "Replacement completed."
	notFoundMessage  = "Text not found."
	gotoPrompt       = "Go to line:"
	evalPrompt       = "Eval:"
	changedOnDisk    = "File changed on disk (Ctrl-R to reload)"
	invalidLineError = "Invalid line number: %s"
)

// confirmDiscard offers to save unsaved changes, then calls next.
// Cancel stops; a failed or cancelled save also stops.
func (c *Commander) confirmDiscard(next func()) {
	if !c.editor.Modified() {
		next()
		return
	}
	c.dialogs.AskOKCancel(askSaveCurrent, func(ok bool) {
		if ok {
			c.saveFile(next)
		}
	})
}

func (c *Commander) newFile() {
	c.confirmDiscard(func() {
		c.editor.New()
	})
}

func (c *Commander) openFile() {
	c.confirmDiscard(func() {
		c.dialogs.AskOpenFile(func(path string) {
			c.open(path)
		})
	})
}

func (c *Commander) open(path string) error {
	if err := c.editor.ReadFile(path); err != nil {
		c.error(couldNotOpen, err)
		return err
	}
	c.watch(path)
	return nil
}

// saveFile writes the file, asking for a name if it has none, then calls
// next if the save succeeded.
func (c *Commander) saveFile(next func()) {
	path := c.editor.GetFileName()
	if path == "" {
		c.saveAsFile(next)
		return
	}
	c.write(path, next)
}

func (c *Commander) saveAsFile(next func()) {
	c.dialogs.AskSaveFile(c.editor.GetFileName(), func(path string) {
		c.write(path, next)
	})
}

func (c *Commander) write(path string, next func()) error {
	if err := c.editor.WriteFile(path); err != nil {
		c.error(couldNotSave, err)
		return err
	}
	c.message(savedMessage)
	c.watch(path)
	if next != nil {
		next()
	}
	return nil
}

func (c *Commander) exit() {
	quit := func() { c.mode = np.ModeQuit }
	if !c.editor.Modified() {
		quit()
		return
	}
	c.dialogs.AskOKCancel(askSaveOnExit, func(ok bool) {
		if ok {
			c.saveFile(quit)
		} else {
			quit()
		}
	})
}

func (c *Commander) reload() error {
	if err := c.editor.Reload(); err != nil {
		c.error(couldNotOpen, err)
		return err
	}
	return nil
}

func (c *Commander) find() {
	c.dialogs.AskString(findPrompt, c.searchText, func(text string) {
		if text == "" {
			return
		}
		c.searchText = text
		if c.editor.FindAll(text) == 0 {
			c.message(notFoundMessage)
			return
		}
		c.editor.FindNext(text)
	})
}

func (c *Commander) findNext() {
	if c.searchText == "" {
		c.find()
		return
	}
	if !c.editor.FindNext(c.searchText) {
		c.message(notFoundMessage)
	}
}

func (c *Commander) replace() {
	c.dialogs.AskString(findWhatPrompt, c.searchText, func(find string) {
		if find == "" {
			return
		}
		c.searchText = find
		c.dialogs.AskString(replacePrompt, "", func(replace string) {
			if c.editor.ReplaceAll(find, replace) > 0 {
				c.message(replacedMessage)
			} else {
				c.message(notFoundMessage)
			}
		})
	})
}

func (c *Commander) gotoLinePrompt() {
	c.dialogs.AskString(gotoPrompt, "", func(text string) {
		line, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || line < 1 {
			c.error(invalidLineError, text)
			return
		}
		c.editor.GotoLine(line)
	})
}

func (c *Commander) lispPrompt() {
	c.mode = np.ModeLisp
	c.prompter.AskString(evalPrompt, "", func(text string) {
		c.mode = np.ModeEdit
		if strings.TrimSpace(text) != "" {
			c.message("%s", c.parseEval(text))
		}
	})
}

func (c *Commander) watch(path string) {
	if c.changes == nil {
		return
	}
	if err := c.changes.Watch(path); err != nil {
		c.error("Could not watch file: %v", err)
	}
}

// processChanges reports changes to the open file made by other programs.
func (c *Commander) processChanges() error {
	if c.changes == nil {
		return nil
	}
	for _, path := range c.changes.Drain() {
		if path != c.editor.GetFileName() {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.ModTime().Equal(c.editor.LastWrite()) {
			// our own save, or the file is gone
			continue
		}
		c.message(changedOnDisk)
	}
	return nil
}
