package preview

import (
	"image/color"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle suits the pane's light background.
const DefaultStyle = "github"

// Token is a highlighted run within a line.
type Token struct {
	Text  string
	Color color.NRGBA
	Bold  bool
	Set   bool // false: use the default text colour
}

// Line is one source line of tokens.
type Line []Token

func hasLexer(path string) bool {
	return lexers.Match(path) != nil
}

// Highlight tokenises text for display. Unknown languages fall back to
// content analysis and then plain text.
func Highlight(path, text, style string) []Line {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	if style == "" {
		style = DefaultStyle
	}
	st := styles.Get(style)
	if st == nil {
		st = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return plainLines(text)
	}

	var out []Line
	for _, toks := range chroma.SplitTokensIntoLines(it.Tokens()) {
		line := make(Line, 0, len(toks))
		for _, tok := range toks {
			txt := strings.TrimRight(tok.Value, "\n")
			if txt == "" {
				continue
			}
			entry := st.Get(tok.Type)
			t := Token{Text: txt, Bold: entry.Bold == chroma.Yes}
			if entry.Colour.IsSet() {
				t.Set = true
				t.Color = color.NRGBA{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue(), A: 0xff}
			}
			line = append(line, t)
		}
		out = append(out, line)
	}
	return out
}

func plainLines(text string) []Line {
	var out []Line
	for _, l := range strings.Split(text, "\n") {
		out = append(out, Line{{Text: l}})
	}
	return out
}
