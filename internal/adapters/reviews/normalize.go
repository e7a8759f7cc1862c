package reviews

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

// StripMarkdown reduces markdown-formatted review text to its words. Link
// text is kept, destinations and bare URLs are dropped and whitespace is
// collapsed.
func StripMarkdown(text string) string {
	root := blackfriday.New(blackfriday.WithNoExtensions()).Parse([]byte(text))

	var b strings.Builder
	root.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch n.Type {
		case blackfriday.Text, blackfriday.Code, blackfriday.CodeBlock:
			if entering {
				b.Write(n.Literal)
			}
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			b.WriteByte(' ')
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item:
			if !entering {
				b.WriteByte(' ')
			}
		}
		return blackfriday.GoToNext
	})

	return strings.Join(strings.Fields(urlPattern.ReplaceAllString(b.String(), "")), " ")
}
