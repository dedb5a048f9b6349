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
package screen

import (
	"fmt"
	"log"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/timburks/notepad/commander"
	np "github.com/timburks/notepad/types"
)

const (
	appName = "Notepad+"
	hints   = " ^O Open  ^S Save  ^F Find  ^H Replace  ^Q Quit "
)

var errorColor = np.RGB(0xcc, 0x00, 0x00)

// The Screen draws the state of an Editor in the terminal.
type Screen struct {
	size np.Size // screen size
}

func NewScreen() (*Screen, error) {
	// Open the terminal.
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetOutputMode(termbox.OutputRGB)
	termbox.SetInputMode(termbox.InputAlt | termbox.InputMouse)
	return &Screen{}, nil
}

func (s *Screen) Close() {
	termbox.Close()
}

// Interrupt wakes up a pending GetNextEvent. It may be called from any goroutine.
func Interrupt() {
	termbox.Interrupt()
}

func (s *Screen) Render(c *commander.Commander) {
	t := c.GetEditor().GetTheme()
	termbox.Clear(attribute(t.Foreground), attribute(t.Background))
	s.size.Cols, s.size.Rows = termbox.Size()
	Draw(s, s.size, c)
	termbox.Flush()
}

// Draw lays out the title bar, the editor, the status bar and the message bar.
func Draw(d np.Display, size np.Size, c *commander.Commander) {
	if size.Rows < 4 || size.Cols < 1 {
		return
	}
	e := c.GetEditor()
	t := e.GetTheme()

	title := " " + appName
	if name := e.GetFileName(); name != "" {
		title += " - " + name
	}
	if e.Modified() {
		title += " *"
	}
	drawBar(d, 0, size.Cols, title, hints, t.StatusForeground, t.StatusBackground)

	e.Render(d, np.Rect{
		Origin: np.Point{Row: 1, Col: 0},
		Size:   np.Size{Rows: size.Rows - 3, Cols: size.Cols},
	})

	status := fmt.Sprintf("%s | %s | %s ", e.GetBuffer().GetLanguage(), t.Name, c.GetModeName())
	drawBar(d, size.Rows-2, size.Cols, " "+e.StatusText(), status, t.StatusForeground, t.StatusBackground)

	p := c.GetPrompter()
	fg := t.Foreground
	if _, isError := p.Message(); isError && !p.Active() {
		fg = errorColor
	}
	drawBar(d, size.Rows-1, size.Cols, c.GetMessageBarText(), "", fg, t.Background)
	if p.Active() {
		d.SetCursor(np.Point{Row: size.Rows - 1, Col: p.CursorColumn()})
	}
}

// drawBar fills a row with left-aligned and right-aligned text.
func drawBar(d np.Display, row, cols int, left, right string, fg, bg np.Color) {
	x := 0
	for _, ch := range left {
		if x >= cols {
			break
		}
		d.SetCell(x, row, ch, fg, bg)
		x += runewidth.RuneWidth(ch)
	}
	start := cols - runewidth.StringWidth(right)
	for ; x < cols; x++ {
		if x < start {
			d.SetCell(x, row, ' ', fg, bg)
		}
	}
	if start < runewidth.StringWidth(left)+1 {
		return
	}
	x = start
	for _, ch := range right {
		d.SetCell(x, row, ch, fg, bg)
		x += runewidth.RuneWidth(ch)
	}
}

func attribute(c np.Color) termbox.Attribute {
	r, g, b := c.RGB()
	return termbox.RGBToAttribute(r, g, b)
}

func (s *Screen) SetCell(col int, row int, c rune, fg np.Color, bg np.Color) {
	termbox.SetCell(col, row, c, attribute(fg), attribute(bg))
}

func (s *Screen) SetCursor(p np.Point) {
	termbox.SetCursor(p.Col, p.Row)
}

func (s *Screen) HideCursor() {
	termbox.HideCursor()
}

func (s *Screen) GetNextEvent() *np.Event {
	event := termbox.PollEvent()
	if event.Type == termbox.EventResize {
		termbox.Flush()
	}
	if event.Type == termbox.EventError {
		log.Printf("%v", event.Err)
	}
	return convert(event)
}

func convert(event termbox.Event) *np.Event {
	e := &np.Event{
		Width:  event.Width,
		Height: event.Height,
		Mouse:  np.Point{Row: event.MouseY, Col: event.MouseX},
	}
	switch event.Type {
	case termbox.EventKey:
		e.Type = np.EventKey
	case termbox.EventResize:
		e.Type = np.EventResize
	case termbox.EventMouse:
		e.Type = np.EventMouse
	case termbox.EventInterrupt:
		e.Type = np.EventInterrupt
	default:
		e.Type = np.EventError
	}
	if event.Mod&termbox.ModAlt != 0 {
		e.Mod |= np.ModAlt
	}
	if event.Mod&termbox.ModMotion != 0 {
		e.Mod |= np.ModMotion
	}
	switch {
	case e.Type != np.EventKey && e.Type != np.EventMouse:
	case event.Ch != 0:
		e.Ch = event.Ch
	default:
		e.Key = key(event.Key)
	}
	return e
}

func key(k termbox.Key) np.Key {
	switch k {
	case termbox.KeyArrowDown:
		return np.KeyArrowDown
	case termbox.KeyArrowLeft:
		return np.KeyArrowLeft
	case termbox.KeyArrowRight:
		return np.KeyArrowRight
	case termbox.KeyArrowUp:
		return np.KeyArrowUp
	case termbox.KeyBackspace2:
		return np.KeyBackspace
	case termbox.KeyDelete:
		return np.KeyDelete
	case termbox.KeyCtrlSpace:
		return np.KeyCtrlSpace
	case termbox.KeyCtrlA:
		return np.KeyCtrlA
	case termbox.KeyCtrlC:
		return np.KeyCtrlC
	case termbox.KeyCtrlF:
		return np.KeyCtrlF
	case termbox.KeyCtrlG:
		return np.KeyCtrlG
	case termbox.KeyCtrlH:
		return np.KeyCtrlH
	case termbox.KeyCtrlN:
		return np.KeyCtrlN
	case termbox.KeyCtrlO:
		return np.KeyCtrlO
	case termbox.KeyCtrlQ:
		return np.KeyCtrlQ
	case termbox.KeyCtrlR:
		return np.KeyCtrlR
	case termbox.KeyCtrlS:
		return np.KeyCtrlS
	case termbox.KeyCtrlT:
		return np.KeyCtrlT
	case termbox.KeyCtrlV:
		return np.KeyCtrlV
	case termbox.KeyCtrlX:
		return np.KeyCtrlX
	case termbox.KeyCtrlY:
		return np.KeyCtrlY
	case termbox.KeyCtrlZ:
		return np.KeyCtrlZ
	case termbox.KeyEnd:
		return np.KeyEnd
	case termbox.KeyEnter:
		return np.KeyEnter
	case termbox.KeyEsc:
		return np.KeyEsc
	case termbox.KeyF2:
		return np.KeyF2
	case termbox.KeyF3:
		return np.KeyF3
	case termbox.KeyF12:
		return np.KeyF12
	case termbox.KeyHome:
		return np.KeyHome
	case termbox.KeyPgdn:
		return np.KeyPgdn
	case termbox.KeyPgup:
		return np.KeyPgup
	case termbox.KeySpace:
		return np.KeySpace
	case termbox.KeyTab:
		return np.KeyTab
	case termbox.MouseLeft:
		return np.KeyMouseLeft
	case termbox.MouseRelease:
		return np.KeyMouseRelease
	case termbox.MouseWheelUp:
		return np.KeyMouseWheelUp
	case termbox.MouseWheelDown:
		return np.KeyMouseWheelDown
	default:
		return np.KeyUnsupported
	}
}
