// Package preview renders learner stylesheets into standalone HTML documents.
package preview

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

const shell = `<!DOCTYPE html><html><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/><style></style></head><body></body></html>`

var styleCloser = regexp.MustCompile(`(?i)</style`)

// Builder assembles preview documents.
type Builder struct {
	policy *bluemonday.Policy
}

// NewBuilder returns a Builder that sanitises untrusted markup with a UGC policy.
func NewBuilder() *Builder {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class", "id").Globally()
	return &Builder{policy: policy}
}

// Exercise renders trusted exercise markup styled with css.
func (b *Builder) Exercise(markup, css string) (string, error) {
	return b.render(markup, css)
}

// Playground renders learner supplied markup styled with css.
func (b *Builder) Playground(markup, css string) (string, error) {
	return b.render(b.policy.Sanitize(markup), css)
}

// SanitizeCSS removes sequences that would close the style element early.
func SanitizeCSS(css string) string {
	return styleCloser.ReplaceAllString(css, "")
}

func (b *Builder) render(markup, css string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(shell))
	if err != nil {
		return "", fmt.Errorf("parse preview shell: %w", err)
	}

	// Style is a raw text element: the renderer writes text children verbatim,
	// so the stylesheet must not go through SetText, which escapes it.
	for _, node := range doc.Find("head style").Nodes {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: SanitizeCSS(css)})
	}
	doc.Find("body").SetHtml(markup)

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return out, nil
}
