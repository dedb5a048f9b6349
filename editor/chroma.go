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
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	np "github.com/timburks/notepad/types"
)

// The ChromaHighlighter covers languages without built-in rules.
// Chroma token types are folded onto the same tags the regex rules use.
type ChromaHighlighter struct {
	lexer chroma.Lexer
}

// NewChromaHighlighter returns nil if chroma has no lexer with that name.
func NewChromaHighlighter(name string) *ChromaHighlighter {
	lexer := lexers.Get(name)
	if lexer == nil {
		return nil
	}
	return &ChromaHighlighter{lexer: chroma.Coalesce(lexer)}
}

func chromaLanguageForFile(path string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return ""
	}
	return strings.ToLower(lexer.Config().Name)
}

func (h *ChromaHighlighter) Highlight(text string) []np.Span {
	iterator, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		log.Printf("chroma: %v", err)
		return nil
	}
	limit := utf8.RuneCountInString(text)
	spans := make([]np.Span, 0)
	offset := 0
	for _, token := range iterator.Tokens() {
		length := utf8.RuneCountInString(token.Value)
		if tag := chromaTag(token.Type); tag != np.TagNone && offset < limit {
			end := offset + length
			if end > limit {
				end = limit
			}
			spans = append(spans, np.Span{Start: offset, End: end, Tag: tag})
		}
		offset += length
	}
	return spans
}

func chromaTag(t chroma.TokenType) np.Tag {
	switch {
	case t.InCategory(chroma.Keyword), t == chroma.NameTag, t == chroma.NameBuiltin:
		return np.TagKeyword
	case t.InCategory(chroma.Comment):
		return np.TagComment
	case t.InSubCategory(chroma.LiteralString):
		return np.TagString
	case t.InSubCategory(chroma.LiteralNumber):
		return np.TagNumber
	case t == chroma.NameFunction, t == chroma.NameClass:
		return np.TagFunction
	}
	return np.TagNone
}
