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

type operation struct {
	Cursor np.Point
}

// init pins the operation to a valid position in the editor
func (op *operation) init(e np.Editable) {
	op.Cursor = e.Clip(op.Cursor)
}

// advance returns the position reached by typing text at p
func advance(p np.Point, text string) np.Point {
	for _, c := range text {
		if c == '\n' {
			p.Row++
			p.Col = 0
		} else {
			p.Col++
		}
	}
	return p
}

// Sequence performs a list of operations as one.
type Sequence struct {
	Operations []np.Operation
}

func (op *Sequence) Perform(e np.Editable) np.Operation {
	inverses := make([]np.Operation, 0, len(op.Operations))
	for _, o := range op.Operations {
		if inverse := o.Perform(e); inverse != nil {
			inverses = append(inverses, inverse)
		}
	}
	// undo in reverse order
	for i, j := 0, len(inverses)-1; i < j; i, j = i+1, j-1 {
		inverses[i], inverses[j] = inverses[j], inverses[i]
	}
	return &Sequence{Operations: inverses}
}
