// renderer turns a model.Feed into the RSS 2.0 document with the
// iTunes namespace. It implements the ports.ForRendering interface.
// Channel text is escaped by the template, episode titles and
// summaries arrive escaped from the episodes package.
package renderer

import (
	"context"
	_ "embed"
	"errors"
	"io"
	"strings"
	"text/template"

	"github.com/sa6mwa/chapterpod/internal/app/model"
	"github.com/sa6mwa/chapterpod/internal/app/ports"
	"github.com/sa6mwa/chapterpod/internal/app/xmltext"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
)

//go:embed template.rss
var rssTemplate string

var (
	ErrNilPointer error = errors.New("received nil pointer")
)

// forRendering implements the ports.ForRendering port (interface).
type forRendering struct {
	tmpl *template.Template
}

func New() ports.ForRendering {
	return &forRendering{
		tmpl: template.Must(template.New("template.rss").Funcs(mkFuncMap()).Parse(rssTemplate)),
	}
}

func (r *forRendering) WriteRSSTo(ctx context.Context, w io.Writer, feed *model.Feed) error {
	l := logger.FromContext(ctx)
	if feed == nil || w == nil {
		return ErrNilPointer
	}
	l.Debug("Rendering feed", "title", feed.Title, "episodes", len(feed.Episodes), "markdown", feed.Markdown)
	return r.tmpl.Execute(w, feed)
}

// Functions...

func mkFuncMap() template.FuncMap {
	return template.FuncMap{
		"xml":      xmltext.Escape,
		"unescape": xmltext.Unescape,
		"markdown": MarkdownToHTML,
		"cdata":    CDATA,
		"episodeType": func() string {
			return model.EpisodeType
		},
	}
}

// CDATA wraps s in a CDATA section, splitting any "]]>" inside s
// across two sections.
func CDATA(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}
