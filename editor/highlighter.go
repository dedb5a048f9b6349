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
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	np "github.com/timburks/notepad/types"
)

// Built-in language names
const (
	PlainText  = "plain"
	Python     = "python"
	JavaScript = "javascript"
	HTML       = "html"
	CSS        = "css"
	Go         = "go"
)

// A Highlighter tags spans of a buffer's full text.
type Highlighter interface {
	Highlight(text string) []np.Span
}

// A Rule tags every match of Pattern, or only of submatch Group when it is nonzero.
type Rule struct {
	Pattern *regexp.Regexp
	Tag     np.Tag
	Group   int
}

// The RegexHighlighter applies its rules in order over the whole text.
// Spans from later rules take precedence over earlier ones.
type RegexHighlighter struct {
	rules []Rule
}

func NewRegexHighlighter(rules ...Rule) *RegexHighlighter {
	return &RegexHighlighter{rules: rules}
}

func (h *RegexHighlighter) Highlight(text string) []np.Span {
	// regexp reports byte offsets; spans use rune offsets
	runeIndex := make([]int, len(text)+1)
	n := 0
	for i := range text {
		runeIndex[i] = n
		n++
	}
	runeIndex[len(text)] = n
	for i := len(text) - 1; i >= 0; i-- {
		if !utf8.RuneStart(text[i]) {
			runeIndex[i] = runeIndex[i+1]
		}
	}

	spans := make([]np.Span, 0)
	for _, rule := range h.rules {
		for _, match := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := match[0], match[1]
			if rule.Group > 0 {
				start, end = match[2*rule.Group], match[2*rule.Group+1]
			}
			if start < 0 || start == end {
				continue
			}
			spans = append(spans, np.Span{Start: runeIndex[start], End: runeIndex[end], Tag: rule.Tag})
		}
	}
	return spans
}

func words(tag np.Tag, list string) Rule {
	return Rule{
		Pattern: regexp.MustCompile(`\b(` + strings.Join(strings.Fields(list), "|") + `)\b`),
		Tag:     tag,
	}
}

func pattern(tag np.Tag, expr string) Rule {
	return Rule{Pattern: regexp.MustCompile(expr), Tag: tag}
}

func group(tag np.Tag, expr string, n int) Rule {
	return Rule{Pattern: regexp.MustCompile(expr), Tag: tag, Group: n}
}

const (
	quotedStrings = `".*?"|'.*?'`
	numbers       = `\b\d+\b`
	blockComments = `/\*[\s\S]*?\*/`
)

// A Language names a highlighter and the file extensions that select it.
type Language struct {
	Name        string
	Extensions  []string
	Highlighter Highlighter
}

var languages = map[string]*Language{
	PlainText: {Name: PlainText, Extensions: []string{".txt"}},
	Python: {
		Name:       Python,
		Extensions: []string{".py"},
		Highlighter: NewRegexHighlighter(
			words(np.TagKeyword, `and as assert break class continue def del
				elif else except False finally for from global if import in is
				lambda None nonlocal not or pass raise return True try while with yield`),
			pattern(np.TagNumber, numbers),
			group(np.TagFunction, `\bdef\s+(\w+)`, 1),
			pattern(np.TagComment, `#.*`),
			pattern(np.TagString, `"""[\s\S]*?"""|'''[\s\S]*?'''|`+quotedStrings),
		),
	},
	JavaScript: {
		Name:       JavaScript,
		Extensions: []string{".js", ".mjs"},
		Highlighter: NewRegexHighlighter(
			words(np.TagKeyword, `break case catch class const continue debugger
				default delete do else export extends finally for function if import
				in instanceof new return super switch this throw try typeof var void
				while with yield`),
			pattern(np.TagNumber, numbers),
			group(np.TagFunction, `\bfunction\s+(\w+)`, 1),
			pattern(np.TagComment, `//.*`),
			pattern(np.TagComment, blockComments),
			pattern(np.TagString, quotedStrings),
		),
	},
	HTML: {
		Name:       HTML,
		Extensions: []string{".html", ".htm"},
		Highlighter: NewRegexHighlighter(
			pattern(np.TagKeyword, `</?[^>]+>`),
			pattern(np.TagString, quotedStrings),
			pattern(np.TagComment, `<!--[\s\S]*?-->`),
		),
	},
	CSS: {
		Name:       CSS,
		Extensions: []string{".css"},
		Highlighter: NewRegexHighlighter(
			pattern(np.TagKeyword, `\.[A-Za-z_][\w-]*`),
			pattern(np.TagKeyword, `#[\w-]+`),
			pattern(np.TagNumber, numbers),
			pattern(np.TagString, quotedStrings),
			pattern(np.TagComment, blockComments),
		),
	},
	Go: {
		Name:       Go,
		Extensions: []string{".go"},
		Highlighter: NewRegexHighlighter(
			words(np.TagKeyword, `break default func interface select case defer
				go map struct chan else goto package switch const fallthrough if
				range type continue for import return var`),
			pattern(np.TagNumber, `\b(0[xX][0-9a-fA-F_]+|\d[\d_]*(\.\d*)?([eE][+-]?\d+)?)\b`),
			group(np.TagFunction, `\bfunc\s+(?:\([^)]*\)\s*)?(\w+)`, 1),
			pattern(np.TagString, `"(\\.|[^"\\\n])*"|'(\\.|[^'\\\n])*'|`+"`[^`]*`"),
			pattern(np.TagComment, `//.*`),
			pattern(np.TagComment, blockComments),
		),
	},
}

// LanguageNames lists the built-in languages.
func LanguageNames() []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LanguageForFile picks a language from a file name. Extensions found in
// overrides (e.g. ".jsx" -> "javascript") win over the built-in table.
// Files that no built-in language claims are offered to chroma.
func LanguageForFile(path string, overrides map[string]string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return PlainText
	}
	if name, ok := overrides[ext]; ok {
		return name
	}
	for _, language := range languages {
		for _, e := range language.Extensions {
			if e == ext {
				return language.Name
			}
		}
	}
	if name := chromaLanguageForFile(path); name != "" {
		return name
	}
	return PlainText
}

// HighlighterFor returns the highlighter of a language; plain text has none.
func HighlighterFor(name string) (Highlighter, error) {
	if language, ok := languages[strings.ToLower(name)]; ok {
		return language.Highlighter, nil
	}
	if h := NewChromaHighlighter(name); h != nil {
		return h, nil
	}
	return nil, errors.Errorf("unknown language %q", name)
}
