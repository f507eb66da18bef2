package renderer

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	mdp "github.com/gomarkdown/markdown/parser"
)

// MarkdownToHTML takes md as markdown and returns html without the
// trailing newline. Links open in a new tab.
func MarkdownToHTML(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	p := mdp.NewWithExtensions(mdp.CommonExtensions | mdp.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	return strings.TrimSpace(string(markdown.Render(doc, renderer)))
}
