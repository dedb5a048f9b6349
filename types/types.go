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
package types

// Editor modes
const (
	ModeEdit   = 0
	ModePrompt = 1
	ModeLisp   = 2
	ModeQuit   = 9999
)

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

// Event types
const (
	EventKey       = 0
	EventResize    = 1
	EventMouse     = 2
	EventInterrupt = 3
	EventError     = 4
)

type Point struct {
	Row int
	Col int
}

// Before reports whether p comes before q in reading order.
func (p Point) Before(q Point) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

type Size struct {
	Rows int
	Cols int
}

type Rect struct {
	Origin Point
	Size   Size
}

// A Range is a half-open span of buffer positions.
type Range struct {
	Start Point
	End   Point
}

// Contains reports whether p lies inside the range.
func (r Range) Contains(p Point) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// A Color is a 24-bit RGB value, 0xRRGGBB.
type Color uint32

func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) RGB() (uint8, uint8, uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// A Tag classifies a rune for highlighting.
type Tag uint8

const (
	TagNone Tag = iota
	TagKeyword
	TagComment
	TagString
	TagNumber
	TagFunction
)

var tagNames = []string{"none", "keyword", "comment", "string", "number", "function"}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// A Span tags runes [Start, End) of a buffer's text.
type Span struct {
	Start int
	End   int
	Tag   Tag
}

type Modifier int

const (
	ModNone   Modifier = 0
	ModAlt    Modifier = 1
	ModMotion Modifier = 2
)

type Event struct {
	Type   int
	Key    Key
	Ch     rune
	Mod    Modifier
	Mouse  Point
	Width  int
	Height int
}

// Display is implemented by anything that can draw cells.
type Display interface {
	SetCell(col int, row int, c rune, fg Color, bg Color)
	SetCursor(p Point)
	HideCursor()
}

// Operation is an undoable unit of editing.
type Operation interface {
	Perform(e Editable) Operation // performs the operation and returns its inverse
}

// InsertOperation is an operation that can grow while the user types.
type InsertOperation interface {
	Operation
	AddCharacter(e Editable, c rune)
	DeleteCharacter(e Editable) bool
	End() Point
}

// Editable is the set of services operations need from an editor.
type Editable interface {
	GetCursor() Point
	SetCursor(cursor Point)
	Clip(p Point) Point
	InsertText(p Point, text string) Point
	DeleteText(p Point, count int) string
	GetText() string
	SetText(text string)
}
