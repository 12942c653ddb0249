// Package highlight renders source code into styled HTML markup.
//
// The service never surfaces an engine failure to its caller. Each call has
// exactly three possible outcomes: markup highlighted for the requested
// language, markup rendered through the plain-text fallback, or an empty
// string meaning "no highlighting available".
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// Service renders highlighted markup for source snippets.
// It is stateless per call and safe for concurrent use.
type Service struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// NewService creates a highlighting service using the named chroma style.
// An unknown style name silently uses chroma's fallback style; style choice
// is cosmetic and must not fail the service.
func NewService(styleName string) *Service {
	if styleName == "" {
		styleName = DefaultStyle
	}
	return &Service{
		style:     styles.Get(styleName),
		formatter: html.New(html.WithClasses(false), html.PreventSurroundingPre(false)),
	}
}

// Render returns highlighted HTML for source, degrading in two bounded
// steps: the requested language, then plain text, then the empty string.
// It never returns an error and never panics, regardless of input.
func (s *Service) Render(source, language string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	if out, ok := s.tryRender(source, lexers.Get(language)); ok {
		return out
	}
	if out, ok := s.tryRender(source, lexers.Fallback); ok {
		return out
	}
	return ""
}

// tryRender is one attempt of the fallback chain. Any engine failure,
// including a panic while lexing hostile input, reports ok=false.
func (s *Service) tryRender(source string, lexer chroma.Lexer) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()

	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", false
	}

	var buf strings.Builder
	if err := s.formatter.Format(&buf, s.style, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}
