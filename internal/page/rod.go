package page

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"retroexport/internal/browser"
)

// lookupTimeout bounds every individual selector lookup against the
// live page, separate from the readiness wait.
const lookupTimeout = 10 * time.Second

// RodPage is the live-browser implementation of Page.
type RodPage struct {
	page *rod.Page
}

// OpenRod creates a page on b, navigates it to url and waits for the
// load event, all bounded by timeout.
func OpenRod(b *browser.Browser, url string, timeout time.Duration) (*RodPage, error) {
	p, err := b.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	if err := p.Timeout(timeout).Navigate(url); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}
	if err := p.Timeout(timeout).WaitLoad(); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to wait for page load: %w", err)
	}
	return &RodPage{page: p}, nil
}

func (p *RodPage) WaitFor(selector string, timeout time.Duration) error {
	if _, err := p.page.Timeout(timeout).Element(selector); err != nil {
		return fmt.Errorf("failed to wait for element '%s': %w", selector, err)
	}
	return nil
}

func (p *RodPage) Text(selector string) (string, error) {
	// NotFoundSleeper makes the lookup report a miss instead of
	// polling until the deadline.
	el, err := p.page.Sleeper(rod.NotFoundSleeper).Element(selector)
	return rodText(el, err, selector)
}

func (p *RodPage) All(selector string) ([]Node, error) {
	els, err := p.page.Timeout(lookupTimeout).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve '%s': %w", selector, err)
	}
	return rodNodes(els), nil
}

func (p *RodPage) Close() error {
	return p.page.Close()
}

type rodNode struct {
	el *rod.Element
}

func (n rodNode) Text(selector string) (string, error) {
	el, err := n.el.Sleeper(rod.NotFoundSleeper).Element(selector)
	return rodText(el, err, selector)
}

func (n rodNode) All(selector string) ([]Node, error) {
	els, err := n.el.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve '%s': %w", selector, err)
	}
	return rodNodes(els), nil
}

func rodText(el *rod.Element, err error, selector string) (string, error) {
	if err != nil {
		if errors.Is(err, &rod.ElementNotFoundError{}) {
			return "", fmt.Errorf("%w: %s", ErrNoMatch, selector)
		}
		return "", fmt.Errorf("failed to resolve '%s': %w", selector, err)
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("failed to read text of '%s': %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

func rodNodes(els rod.Elements) []Node {
	nodes := make([]Node, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, rodNode{el: el})
	}
	return nodes
}
