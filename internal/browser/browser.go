// Package browser wraps the rod browser lifecycle.
package browser

import (
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config controls how the browser is launched.
type Config struct {
	ProxyURL string
	Headless bool
}

// Browser wraps a rod.Browser instance together with its launcher.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// New launches a browser according to cfg and connects to it.
func New(cfg Config) (*Browser, error) {
	l := launcher.New().Headless(cfg.Headless)
	if cfg.ProxyURL != "" {
		l = l.Proxy(cfg.ProxyURL)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, err
	}

	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, err
	}

	return &Browser{browser: b, launcher: l}, nil
}

// NewPage creates a new browser page.
func (b *Browser) NewPage() (*rod.Page, error) {
	return b.browser.Page(proto.TargetCreateTarget{})
}

// Close closes the browser and cleans up the launcher process.
func (b *Browser) Close() error {
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			return err
		}
	}
	if b.launcher != nil {
		b.launcher.Kill()
	}
	return nil
}
