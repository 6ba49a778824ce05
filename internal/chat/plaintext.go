package chat

import (
	"strings"

	"golang.org/x/net/html"
)

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "tr": true, "li": true,
	"table": true, "thead": true, "tbody": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"pre": true, "blockquote": true,
}

// PlainText strips markup from content. Block elements become line breaks,
// table cells are tab-separated and entities are decoded.
func PlainText(content string) string {
	z := html.NewTokenizer(strings.NewReader(content))
	var b strings.Builder
	cellOpen := false

	newline := func() {
		s := b.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			b.WriteString("\n")
		}
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "td" || tag == "th":
				if cellOpen {
					b.WriteString("\t")
				}
				cellOpen = true
			case blockTags[tag]:
				newline()
				if tag == "tr" {
					cellOpen = false
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] {
				newline()
			}
		}
	}
}
