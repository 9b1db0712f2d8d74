// Package richtext cleans and summarizes the HTML produced by the task
// description editor.
package richtext

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("div", "del", "figure", "figcaption")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^attachment[\w\- ]*$`)).OnElements("figure", "figcaption")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize strips anything that could execute in the browser while keeping
// the formatting markup the editor emits.
func Sanitize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return strings.TrimSpace(policy.Sanitize(s))
}

var (
	blockBreaks = regexp.MustCompile(`(?i)<\s*(br\s*/?|/div|/p|/li|/h[1-6]|/blockquote|/pre)\s*>`)
	blankLines  = regexp.MustCompile(`\n\s*\n+`)
)

// PlainText strips all markup from s, keeping one line per block element.
func PlainText(s string) string {
	withBreaks := blockBreaks.ReplaceAllString(s, "\n")
	text := html.UnescapeString(bluemonday.StrictPolicy().Sanitize(withBreaks))
	text = strings.TrimSpace(blankLines.ReplaceAllString(text, "\n"))
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "\n")
}

// Snippet renders s as plain text limited to maxLines lines. Lines beyond the
// limit are dropped and the last kept line gets an ellipsis.
func Snippet(s string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	text := PlainText(s)
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	kept := lines[:maxLines]
	kept[maxLines-1] = kept[maxLines-1] + "…"
	return strings.Join(kept, "\n")
}
