package page

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// HTMLPage serves extraction from a saved page snapshot. Lookups never
// wait: a static document is as ready as it will ever be.
type HTMLPage struct {
	doc *goquery.Document
}

// NewHTMLPage parses an HTML document from r.
func NewHTMLPage(r io.Reader) (*HTMLPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &HTMLPage{doc: doc}, nil
}

func (p *HTMLPage) WaitFor(selector string, _ time.Duration) error {
	if p.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}
	return nil
}

func (p *HTMLPage) Text(selector string) (string, error) {
	return selectionText(p.doc.Find(selector), selector)
}

func (p *HTMLPage) All(selector string) ([]Node, error) {
	return selectionNodes(p.doc.Find(selector)), nil
}

func (p *HTMLPage) Close() error {
	return nil
}

type htmlNode struct {
	sel *goquery.Selection
}

func (n htmlNode) Text(selector string) (string, error) {
	return selectionText(n.sel.Find(selector), selector)
}

func (n htmlNode) All(selector string) ([]Node, error) {
	return selectionNodes(n.sel.Find(selector)), nil
}

func selectionText(s *goquery.Selection, selector string) (string, error) {
	if s.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}
	return strings.TrimSpace(s.First().Text()), nil
}

func selectionNodes(s *goquery.Selection) []Node {
	nodes := make([]Node, 0, s.Length())
	s.Each(func(_ int, sel *goquery.Selection) {
		nodes = append(nodes, htmlNode{sel: sel})
	})
	return nodes
}
