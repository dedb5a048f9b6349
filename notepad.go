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
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/timburks/notepad/commander"
	"github.com/timburks/notepad/config"
	"github.com/timburks/notepad/dialogs"
	"github.com/timburks/notepad/editor"
	"github.com/timburks/notepad/screen"
	"github.com/timburks/notepad/watcher"
)

const usage = "usage: notepad [--config FILE] [--theme NAME] [--eval SCRIPT] [FILE...]"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "notepad: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	filenames  []string
	configPath string
	theme      string
	script     string
}

func parseArgs(args []string) (*options, error) {
	o := &options{configPath: config.DefaultPath}
	for i := 0; i < len(args); i++ {
		argi := args[i]
		switch argi {
		case "--eval", "--config", "--theme":
			i++
			if i >= len(args) {
				return nil, errors.Errorf("no value specified for %s option\n%s", argi, usage)
			}
			switch argi {
			case "--eval": // eval program
				o.script = args[i]
			case "--config":
				o.configPath = args[i]
			case "--theme":
				o.theme = args[i]
			}
		case "-h", "--help":
			return nil, errors.New(usage)
		default:
			// If a file was specified on the command line, read it.
			o.filenames = append(o.filenames, argi)
		}
	}
	return o, nil
}

func run(args []string) error {
	o, err := parseArgs(args)
	if err != nil {
		return err
	}

	if o.configPath == config.DefaultPath && o.script == "" {
		if err := config.WriteDefault(o.configPath); err != nil {
			log.Printf("%v", err)
		}
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.theme != "" {
		cfg.Theme = o.theme
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	themes, err := cfg.Registry()
	if err != nil {
		return err
	}

	// Open a log file.
	f, err := os.OpenFile(cfg.LogPath(), os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	defer log.SetOutput(log.Writer())
	log.SetOutput(f)

	// The editor manages all text manipulation.
	e := editor.NewEditor()
	e.SetThemes(themes)
	if err := e.UseTheme(cfg.Theme); err != nil {
		return err
	}
	e.SetTabWidth(cfg.TabWidth)
	e.SetLanguageOverrides(cfg.Languages)
	e.FormatOnSave = cfg.FormatOnSave
	if cfg.SystemClipboard && o.script == "" {
		e.SetClipboard(editor.NewSystemClipboard())
	}

	// The commander converts user inputs into commands for the editor.
	p := dialogs.NewPrompter()
	c := commander.NewCommander(e, p)
	if cfg.NativeDialogs && o.script == "" {
		c.SetDialogs(dialogs.NewNative(p))
	}

	if len(o.filenames) > 1 {
		log.Printf("editing %s, ignoring %d more files", o.filenames[0], len(o.filenames)-1)
	}
	if len(o.filenames) > 0 {
		filename := o.filenames[0]
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			// a new file is created by the first save
			e.SetFileName(filename)
		} else if err := e.ReadFile(filename); err != nil {
			if o.script != "" {
				return err
			}
			p.ShowError(fmt.Sprintf("Could not open file: %v", err))
		}
	}

	if o.script != "" {
		// Run a notepad script and exit.
		return c.ParseEvalFile(o.script)
	}

	// Create a screen to manage display.
	s, err := screen.NewScreen()
	if err != nil {
		return errors.WithStack(err)
	}
	defer s.Close()

	if cfg.WatchFiles {
		w, err := watcher.New(screen.Interrupt)
		if err != nil {
			log.Printf("%v", err)
		} else {
			defer w.Close()
			c.SetChanges(w)
			if name := e.GetFileName(); name != "" {
				if err := w.Watch(name); err != nil {
					log.Printf("%v", err)
				}
			}
		}
	}

	// Run the main event loop.
	for c.IsRunning() {
		s.Render(c)
		if err := c.ProcessEvent(s.GetNextEvent()); err != nil {
			log.Printf("%v", err)
		}
	}
	return nil
}
