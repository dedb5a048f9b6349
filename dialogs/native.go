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
	"log"

	"github.com/sqweek/dialog"
)

const title = "Notepad+"

var (
	_ Dialogs = (*Prompter)(nil)
	_ Dialogs = (*Native)(nil)
)

// Native uses the operating system's file choosers and message boxes.
// Text questions are still asked in the message bar.
type Native struct {
	*Prompter
}

func NewNative(p *Prompter) *Native {
	return &Native{Prompter: p}
}

func (n *Native) fileDialog() *dialog.FileBuilder {
	return dialog.File().Filter("Text files", "txt").Filter("All files", "*")
}

func (n *Native) AskOpenFile(done func(path string)) {
	path, err := n.fileDialog().Title("Open").Load()
	n.answer(path, err, done)
}

func (n *Native) AskSaveFile(initial string, done func(path string)) {
	b := n.fileDialog().Title("Save As")
	if initial != "" {
		b = b.SetStartFile(initial)
	}
	path, err := b.Save()
	n.answer(path, err, done)
}

func (n *Native) answer(path string, err error, done func(string)) {
	if err == dialog.ErrCancelled {
		return
	}
	if err != nil {
		log.Printf("file dialog: %v", err)
		n.Prompter.ShowError(err.Error())
		return
	}
	if path != "" {
		done(path)
	}
}

func (n *Native) AskOKCancel(question string, done func(ok bool)) {
	done(dialog.Message("%s", question).Title(title).YesNo())
}

func (n *Native) ShowInfo(message string) {
	n.Prompter.ShowInfo(message)
	dialog.Message("%s", message).Title(title).Info()
}

func (n *Native) ShowError(message string) {
	n.Prompter.ShowError(message)
	dialog.Message("%s", message).Title(title).Error()
}
