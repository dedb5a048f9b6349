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
	np "github.com/timburks/notepad/types"
)

// Delete removes Count characters at Cursor; a line break counts as one.
type Delete struct {
	operation
	Count int
}

func NewDelete(cursor np.Point, count int) *Delete {
	return &Delete{operation: operation{Cursor: cursor}, Count: count}
}

func (op *Delete) Perform(e np.Editable) np.Operation {
	op.init(e)
	deleted := e.DeleteText(op.Cursor, op.Count)
	e.SetCursor(op.Cursor)
	if deleted == "" {
		return nil
	}
	return NewInsert(op.Cursor, deleted)
}

// Replace swaps the whole text of the buffer, as replace-all and reload do.
type Replace struct {
	operation
	Text string
}

func NewReplace(cursor np.Point, text string) *Replace {
	return &Replace{operation: operation{Cursor: cursor}, Text: text}
}

func (op *Replace) Perform(e np.Editable) np.Operation {
	inverse := NewReplace(e.GetCursor(), e.GetText())
	e.SetText(op.Text)
	op.init(e)
	e.SetCursor(op.Cursor)
	return inverse
}
