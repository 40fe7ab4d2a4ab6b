package highlight

import (
	"html"
	"strings"

	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

// HTML renders tokens with the default theme.
func HTML(tokens []token.Token) string {
	return DefaultTheme().HTML(tokens)
}

// HTML renders tokens as a single <code> element with one colored span
// per token. Spaces become &nbsp; and newlines <br>.
func (t *Theme) HTML(tokens []token.Token) string {
	var b strings.Builder
	b.WriteString(`<code style='font-family:"Hack-Regular", monospace;'>`)
	for _, tok := range tokens {
		if tok.Type == token.EOF {
			continue
		}
		value := html.EscapeString(tok.Literal)
		value = strings.ReplaceAll(value, " ", "&nbsp;")
		value = strings.ReplaceAll(value, "\n", "<br>")

		b.WriteString("<span style='color:")
		b.WriteString(t.ColorFor(tok))
		b.WriteString(";'>")
		b.WriteString(value)
		b.WriteString("</span>")
	}
	b.WriteString("</code>")
	return b.String()
}
