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
package operations

import (
	"unicode/utf8"

	np "github.com/timburks/notepad/types"
)

// Insert places Text at Cursor and leaves the cursor after it.
// While the user keeps typing, characters are added to the same Insert
// so that they undo together.
type Insert struct {
	operation
	Text    string
	Inverse *Delete
}

func NewInsert(cursor np.Point, text string) *Insert {
	return &Insert{operation: operation{Cursor: cursor}, Text: text}
}

func (op *Insert) Perform(e np.Editable) np.Operation {
	op.init(e)
	e.SetCursor(e.InsertText(op.Cursor, op.Text))
	inverse := &Delete{Count: utf8.RuneCountInString(op.Text)}
	inverse.Cursor = op.Cursor
	op.Inverse = inverse
	return inverse
}

// End returns the position just after the inserted text.
func (op *Insert) End() np.Point {
	return advance(op.Cursor, op.Text)
}

func (op *Insert) AddCharacter(e np.Editable, c rune) {
	e.SetCursor(e.InsertText(op.End(), string(c)))
	op.Text += string(c)
	if op.Inverse != nil {
		op.Inverse.Count++
	}
}

// DeleteCharacter removes the last typed character. It returns false
// when nothing typed is left to remove.
func (op *Insert) DeleteCharacter(e np.Editable) bool {
	if op.Text == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(op.Text)
	op.Text = op.Text[0 : len(op.Text)-size]
	end := op.End()
	e.DeleteText(end, 1)
	e.SetCursor(end)
	if op.Inverse != nil {
		op.Inverse.Count--
	}
	return true
}
