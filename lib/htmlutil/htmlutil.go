// Package htmlutil normalizes text pulled out of scraped markup so that
// identical source content always yields identical strings.
package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// InlineText flattens a node into a single line: non-printable runes are
// dropped, runs of whitespace collapse to one space, surrounding
// whitespace is trimmed.
func InlineText(node *html.Node) string {
	var sb strings.Builder
	collectText(node, &sb)

	s := removeNonPrintable(sb.String())
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// BlockText keeps paragraph structure: every text node is trimmed and the
// non-empty ones are joined with a newline.
func BlockText(node *html.Node) string {
	var lines []string
	walkTextNodes(node, func(s string) {
		s = strings.TrimSpace(s)
		if s != "" {
			lines = append(lines, s)
		}
	})
	return strings.Join(lines, "\n")
}

func collectText(node *html.Node, sb *strings.Builder) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		sb.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}

func walkTextNodes(node *html.Node, visit func(string)) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		visit(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walkTextNodes(child, visit)
	}
}

func removeNonPrintable(s string) string {
	var sb strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) || c == '\n' {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
