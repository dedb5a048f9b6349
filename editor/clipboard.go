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
	"log"

	"github.com/atotto/clipboard"
)

// A Clipboard holds text for cut, copy and paste.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// MemoryClipboard keeps the pasteboard inside the editor.
type MemoryClipboard struct {
	text string
}

func (c *MemoryClipboard) ReadAll() (string, error) {
	return c.text, nil
}

func (c *MemoryClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

// SystemClipboard shares text with other programs. When the system
// clipboard can't be reached it falls back to an in-memory pasteboard.
type SystemClipboard struct {
	fallback MemoryClipboard
}

func NewSystemClipboard() Clipboard {
	if clipboard.Unsupported {
		log.Printf("system clipboard unsupported, using internal pasteboard")
		return &MemoryClipboard{}
	}
	return &SystemClipboard{}
}

func (c *SystemClipboard) ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		log.Printf("clipboard read: %v", err)
		return c.fallback.ReadAll()
	}
	return text, nil
}

func (c *SystemClipboard) WriteAll(text string) error {
	c.fallback.WriteAll(text)
	if err := clipboard.WriteAll(text); err != nil {
		log.Printf("clipboard write: %v", err)
	}
	return nil
}
