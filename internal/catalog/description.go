package catalog

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	markdown          = goldmark.New()
	descriptionPolicy = bluemonday.UGCPolicy()
)

// RenderDescription converts a markdown product description to sanitized HTML.
// Raw HTML in the source is dropped by goldmark and the output is passed
// through a UGC policy before being trusted by templates.
func RenderDescription(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(descriptionPolicy.SanitizeBytes(buf.Bytes()))
}
