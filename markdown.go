package newsletter

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// richTextRenderer converts free-text workbook cells (event descriptions,
// vision and mission statements) from Markdown to HTML fragments, so
// editors can use emphasis, links, and lists inside cells.
type richTextRenderer struct {
	md goldmark.Markdown
}

// newRichTextRenderer creates a renderer with GFM extensions enabled.
func newRichTextRenderer() *richTextRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables, strikethrough, autolinks
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(), // newlines inside a cell become <br>
			gmhtml.WithXHTML(),
		),
	)
	return &richTextRenderer{md: md}
}

// Fragment converts one cell's text to an HTML fragment. Blank input yields
// an empty fragment. Goldmark never fails on plain prose; a conversion
// error indicates a template/data mismatch and aborts the render.
func (r *richTextRenderer) Fragment(text string) (template.HTML, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("%w: markdown conversion: %v", ErrRender, err)
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- goldmark output is sanitized markup
}
