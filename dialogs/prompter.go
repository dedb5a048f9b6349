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
package dialogs

import (
	"strings"

	"github.com/mattn/go-runewidth"

	np "github.com/timburks/notepad/types"
)

// A Prompter asks questions in the message bar at the bottom of the screen.
// While a question is pending, key events go to HandleEvent.
type Prompter struct {
	prompt   string
	text     []rune
	cursor   int
	yesNo    bool
	accept   func(text string)
	cancel   func()
	message  string
	hasError bool
}

func NewPrompter() *Prompter {
	return &Prompter{}
}

func (p *Prompter) ask(prompt, initial string, accept func(string), cancel func()) {
	p.prompt = prompt
	p.text = []rune(initial)
	p.cursor = len(p.text)
	p.yesNo = false
	p.accept = accept
	p.cancel = cancel
	p.message = ""
}

func (p *Prompter) AskOpenFile(done func(path string)) {
	p.ask("Open file: ", "", nonEmpty(done), nil)
}

func (p *Prompter) AskSaveFile(initial string, done func(path string)) {
	p.ask("Save as: ", initial, nonEmpty(done), nil)
}

func (p *Prompter) AskString(prompt, initial string, done func(text string)) {
	if !strings.HasSuffix(prompt, " ") {
		prompt += " "
	}
	p.ask(prompt, initial, done, nil)
}

func (p *Prompter) AskOKCancel(question string, done func(ok bool)) {
	p.ask(question+" (y/n) ", "", func(string) { done(true) }, func() { done(false) })
	p.yesNo = true
}

func (p *Prompter) ShowInfo(message string) {
	p.message = message
	p.hasError = false
}

func (p *Prompter) ShowError(message string) {
	p.message = message
	p.hasError = true
}

// nonEmpty treats an empty answer as a cancel.
func nonEmpty(done func(string)) func(string) {
	return func(text string) {
		if text = strings.TrimSpace(text); text != "" {
			done(text)
		}
	}
}

// Active reports whether a question is waiting for an answer.
func (p *Prompter) Active() bool {
	return p.accept != nil
}

// Message returns the last message and whether it reports an error.
func (p *Prompter) Message() (string, bool) {
	return p.message, p.hasError
}

func (p *Prompter) ClearMessage() {
	p.message = ""
	p.hasError = false
}

// Line is the text to show in the message bar.
func (p *Prompter) Line() string {
	if p.Active() {
		return p.prompt + string(p.text)
	}
	return p.message
}

// CursorColumn is the display column of the cursor in Line.
func (p *Prompter) CursorColumn() int {
	return runewidth.StringWidth(p.prompt) + runewidth.StringWidth(string(p.text[0:p.cursor]))
}

func (p *Prompter) finish(accepted bool) {
	accept, cancel, text := p.accept, p.cancel, string(p.text)
	p.accept, p.cancel = nil, nil
	p.prompt, p.text, p.cursor = "", nil, 0
	// the continuation may ask another question
	if accepted {
		accept(text)
	} else if cancel != nil {
		cancel()
	}
}

// HandleEvent edits the pending answer. It returns false if no question
// is pending.
func (p *Prompter) HandleEvent(event *np.Event) bool {
	if !p.Active() {
		return false
	}
	if event.Type != np.EventKey {
		return true
	}
	if p.yesNo {
		switch {
		case event.Key == np.KeyEnter, event.Ch == 'y', event.Ch == 'Y':
			p.finish(true)
		case event.Key == np.KeyEsc, event.Ch == 'n', event.Ch == 'N':
			p.finish(false)
		}
		return true
	}
	switch event.Key {
	case np.KeyEnter:
		p.finish(true)
	case np.KeyEsc, np.KeyCtrlG:
		p.finish(false)
	case np.KeyBackspace, np.KeyCtrlH:
		if p.cursor > 0 {
			p.text = append(p.text[0:p.cursor-1], p.text[p.cursor:]...)
			p.cursor--
		}
	case np.KeyDelete:
		if p.cursor < len(p.text) {
			p.text = append(p.text[0:p.cursor], p.text[p.cursor+1:]...)
		}
	case np.KeyArrowLeft:
		if p.cursor > 0 {
			p.cursor--
		}
	case np.KeyArrowRight:
		if p.cursor < len(p.text) {
			p.cursor++
		}
	case np.KeyHome:
		p.cursor = 0
	case np.KeyEnd:
		p.cursor = len(p.text)
	case np.KeySpace:
		p.insert(' ')
	default:
		if event.Ch != 0 {
			p.insert(event.Ch)
		}
	}
	return true
}

func (p *Prompter) insert(c rune) {
	text := make([]rune, 0, len(p.text)+1)
	text = append(text, p.text[0:p.cursor]...)
	text = append(text, c)
	text = append(text, p.text[p.cursor:]...)
	p.text = text
	p.cursor++
}
