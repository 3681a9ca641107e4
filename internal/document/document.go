// Package document turns raw HTML text into queryable goquery documents.
//
// Parsing follows the HTML5 tree-construction rules of golang.org/x/net/html,
// so unknown or unclosed tags are tolerated the same way a browser would.
package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrUnparsable is returned when no tree could be built from the input at all.
var ErrUnparsable = errors.New("document could not be parsed")

// Load parses a full HTML page.
func Load(src string) (*goquery.Document, error) {
	return LoadReader(strings.NewReader(src))
}

// LoadReader parses a full HTML page from r.
func LoadReader(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnparsable, err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// SplitText returns the text under the selection's first node cut into at
// most n parts at <br> elements, which may sit at any depth and carry any
// attributes. Breaks beyond the last part are ignored. Entities are already
// decoded by the parser.
func SplitText(s *goquery.Selection, n int) []string {
	if n <= 0 {
		return nil
	}
	parts := make([]strings.Builder, n)
	if s.Length() == 0 {
		return make([]string, n)
	}

	i := 0
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.ElementNode && c.DataAtom == atom.Br:
				if i < n-1 {
					i++
				}
			case c.Type == html.TextNode:
				parts[i].WriteString(c.Data)
			case c.Type == html.ElementNode:
				walk(c)
			}
		}
	}
	walk(s.Get(0))

	out := make([]string, n)
	for j := range parts {
		out[j] = parts[j].String()
	}
	return out
}
