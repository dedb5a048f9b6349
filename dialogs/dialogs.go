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
// Package dialogs asks the user questions and shows them messages.
//
// Every question takes a continuation that is called with the answer.
// The message-bar Prompter answers asynchronously as keys arrive, the
// Native dialogs answer before returning; callers can't tell the difference.
package dialogs

// Dialogs is the set of modal interactions the editor needs.
type Dialogs interface {
	// AskOpenFile calls done with the chosen path; it is not called on cancel.
	AskOpenFile(done func(path string))
	// AskSaveFile calls done with the chosen path; it is not called on cancel.
	AskSaveFile(initial string, done func(path string))
	// AskString calls done with the entered text; it is not called on cancel.
	AskString(prompt, initial string, done func(text string))
	// AskOKCancel always calls done, with true for OK.
	AskOKCancel(question string, done func(ok bool))
	ShowInfo(message string)
	ShowError(message string)
}
