package content

import (
	"regexp"
	"strings"
)

// Markdown syntax stripped before indexing. The goal is readable search
// text and sane summaries, not a full renderer.
var (
	imageRe     = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkRe      = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headingRe   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasisRe  = regexp.MustCompile(`(\*{1,3}|_{1,3})(\S(?:[^*_]*\S)?)(\*{1,3}|_{1,3})`)
	codeFenceRe = regexp.MustCompile("(?m)^```[^\n]*$")
	inlineCode  = regexp.MustCompile("`([^`]*)`")
	blockquote  = regexp.MustCompile(`(?m)^>\s?`)
	blankRunsRe = regexp.MustCompile(`\n{3,}`)
)

// plainText strips common markdown syntax, keeping the human-readable text
// including code block contents.
func plainText(body string) string {
	s := imageRe.ReplaceAllString(body, "$1")
	s = linkRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = codeFenceRe.ReplaceAllString(s, "")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = emphasisRe.ReplaceAllString(s, "$2")
	s = blockquote.ReplaceAllString(s, "")
	s = blankRunsRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
