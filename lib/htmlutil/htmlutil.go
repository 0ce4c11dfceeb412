package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// CleanText trims a text fragment and drops zero-width and other
// non-printable runes that jisho markup tends to carry.
func CleanText(s string) string {
	out := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			out.WriteRune(c)
		}
	}
	return strings.Trim(out.String(), " \t\n")
}

// OuterHTML renders a selection back to markup with newlines removed,
// the form in which fragments are persisted.
func OuterHTML(sel *goquery.Selection) (string, error) {
	raw, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(raw, "\n", ""), nil
}
