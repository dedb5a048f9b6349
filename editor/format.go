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
package editor

import (
	"go/format"
	"log"

	"github.com/timburks/notepad/operations"
)

// gofmt formats Go source, returning the input unchanged if it does not parse.
func gofmt(filename string, input []byte) []byte {
	output, err := format.Source(input)
	if err != nil {
		log.Printf("Syntax errors in %s:\n%s", filename, err)
		return input
	}
	return output
}

// formatGo reformats the buffer in place as an undoable replacement.
func (e *Editor) formatGo() {
	text := e.buffer.Text()
	formatted := string(gofmt(e.buffer.GetFileName(), []byte(text)))
	if formatted == text {
		return
	}
	e.Perform(operations.NewReplace(e.GetCursor(), formatted))
}
