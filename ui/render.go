package ui

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderInsightHTML converts an insight narrative to an HTML fragment.
// Generated text occasionally carries markdown emphasis; rendering it here
// keeps the client from re-parsing. Raw HTML in the source is skipped.
func RenderInsightHTML(text string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML,
	})
	rendered := markdown.ToHTML([]byte(text), p, renderer)
	return strings.TrimSpace(string(rendered))
}
