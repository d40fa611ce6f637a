// Package markdown renders article bodies to sanitized HTML.
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	policy = bluemonday.UGCPolicy()
)

// Markdown returns a templ.Component that renders content as sanitized HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := Render(content)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	})
}

// Render converts content to HTML and strips anything outside the
// user-generated-content policy (scripts, event handlers, unsafe URLs).
func Render(content string) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return nil, err
	}
	return policy.SanitizeBytes(buf.Bytes()), nil
}

// RenderString is Render for callers that want a string.
func RenderString(content string) (string, error) {
	out, err := Render(content)
	return string(out), err
}
