// Package browsertest provides an in-memory implementation of browser.Launcher,
// browser.Page and browser.Element backed by goquery, for tests that must drive
// a dashboard without a real browser.
//
// Pages are plain HTML. A few data attributes stand in for JavaScript behavior:
//
//	data-goto="route"   clicking the element loads Site.Routes[route]
//	data-expand="key"   clicking inserts Site.Expansions[key] after the enclosing <tr> (once)
//	data-stale="true"   Text() fails, as a detached node would
//	hidden              the element and its subtree are never visible
package browsertest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"activeAlerts/internal/browser"
)

// Site is the static content served to every page opened by a Launcher.
type Site struct {
	Routes     map[string]string
	Expansions map[string]string
}

// Launcher hands out a fresh Page per Launch, parsed from the Site.
type Launcher struct {
	Site Site
	// FailLaunch makes the n-th Launch (1-based) return the given error.
	FailLaunch map[int]error

	mu    sync.Mutex
	pages []*Page
}

func NewLauncher(site Site) *Launcher {
	return &Launcher{Site: site}
}

func (l *Launcher) Launch(ctx context.Context) (browser.Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.pages) + 1
	p := &Page{site: l.Site, expansions: copyMap(l.Site.Expansions), Filled: map[string]string{}}
	l.pages = append(l.pages, p)

	if err := l.FailLaunch[n]; err != nil {
		p.Closed = true
		return nil, err
	}
	return p, nil
}

// Pages returns every page launched so far, in launch order.
func (l *Launcher) Pages() []*Page {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Page(nil), l.pages...)
}

// Page is a single tab. Its exported fields record what the code under test did.
type Page struct {
	URL    string
	Closed bool
	Filled map[string]string
	Clicks []string
	Hovers []string

	site       Site
	expansions map[string]string
	doc        *goquery.Document
}

func (p *Page) load(route string) error {
	body, ok := p.site.Routes[route]
	if !ok {
		return fmt.Errorf("net::ERR_NAME_NOT_RESOLVED at %s", route)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return err
	}
	p.doc = doc
	p.URL = route
	return nil
}

func (p *Page) Goto(ctx context.Context, url string) error {
	if p.Closed {
		return fmt.Errorf("браузер не запущен")
	}
	return p.load(url)
}

func (p *Page) root() (*goquery.Selection, error) {
	if p.Closed {
		return nil, fmt.Errorf("браузер не запущен")
	}
	if p.doc == nil {
		return nil, fmt.Errorf("страница не загружена")
	}
	return p.doc.Selection, nil
}

func (p *Page) WaitVisible(ctx context.Context, sel browser.Selector, timeout time.Duration) (browser.Element, error) {
	root, err := p.root()
	if err != nil {
		return nil, err
	}
	matches := query(root, sel).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return visible(s.Nodes[0])
	})
	if matches.Length() == 0 {
		return nil, fmt.Errorf("%s не появился за %v: %w", sel, timeout, browser.ErrNotFound)
	}
	return &Element{page: p, sel: matches.First()}, nil
}

func (p *Page) Find(ctx context.Context, sel browser.Selector) (browser.Element, error) {
	root, err := p.root()
	if err != nil {
		return nil, err
	}
	return first(p, query(root, sel))
}

func (p *Page) FindAll(ctx context.Context, sel browser.Selector) ([]browser.Element, error) {
	root, err := p.root()
	if err != nil {
		return nil, err
	}
	return all(p, query(root, sel)), nil
}

func (p *Page) Close() error {
	p.Closed = true
	return nil
}

// Element wraps a single-node goquery selection.
type Element struct {
	page *Page
	sel  *goquery.Selection
}

func (e *Element) Parent() (browser.Element, error) {
	return first(e.page, e.sel.Parent())
}

func (e *Element) Find(sel browser.Selector) (browser.Element, error) {
	if sel.Strategy == browser.StrategyParent {
		return e.Parent()
	}
	return first(e.page, query(e.sel, sel))
}

func (e *Element) FindAll(sel browser.Selector) ([]browser.Element, error) {
	return all(e.page, query(e.sel, sel)), nil
}

func (e *Element) Text() (string, error) {
	if v, _ := e.sel.Attr("data-stale"); v == "true" {
		return "", fmt.Errorf("stale element reference: element is not attached to the page document")
	}
	return strings.TrimSpace(e.sel.Text()), nil
}

func (e *Element) Fill(value string) error {
	key, ok := e.sel.Attr("id")
	if !ok {
		key = goquery.NodeName(e.sel)
	}
	e.page.Filled[key] = value
	return nil
}

func (e *Element) Hover() error {
	e.page.Hovers = append(e.page.Hovers, e.label())
	return nil
}

func (e *Element) Click() error {
	e.page.Clicks = append(e.page.Clicks, e.label())
	return e.activate()
}

func (e *Element) ScriptClick() error {
	e.page.Clicks = append(e.page.Clicks, "script:"+e.label())
	return e.activate()
}

func (e *Element) ScrollToEnd() error {
	return nil
}

func (e *Element) activate() error {
	if key, ok := e.sel.Attr("data-expand"); ok {
		rows, found := e.page.expansions[key]
		if found {
			delete(e.page.expansions, key)
			e.sel.Closest("tr").AfterHtml(rows)
		}
	}
	if route, ok := e.sel.Attr("data-goto"); ok {
		return e.page.load(route)
	}
	return nil
}

// Attr exposes an attribute of the underlying node for assertions.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *Element) label() string {
	if id, ok := e.sel.Attr("id"); ok {
		return "#" + id
	}
	return goquery.NodeName(e.sel) + ":" + strings.TrimSpace(e.sel.Text())
}

func query(root *goquery.Selection, sel browser.Selector) *goquery.Selection {
	switch sel.Strategy {
	case browser.StrategyID:
		return root.Find("#" + sel.Value)
	case browser.StrategyClass:
		return root.Find("." + sel.Value)
	case browser.StrategyText:
		return root.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return hasTextNode(s.Nodes[0], sel.Value)
		})
	case browser.StrategyParent:
		return root.Parent()
	default:
		return root.Find(sel.Value)
	}
}

func first(p *Page, s *goquery.Selection) (browser.Element, error) {
	if s.Length() == 0 {
		return nil, browser.ErrNotFound
	}
	return &Element{page: p, sel: s.First()}, nil
}

func all(p *Page, s *goquery.Selection) []browser.Element {
	elements := make([]browser.Element, 0, s.Length())
	s.Each(func(_ int, item *goquery.Selection) {
		elements = append(elements, &Element{page: p, sel: item})
	})
	return elements
}

// hasTextNode mirrors XPath text()='...': one direct text child equal to text.
func hasTextNode(n *html.Node, text string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && c.Data == text {
			return true
		}
	}
	return false
}

func visible(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		for _, a := range n.Attr {
			if a.Key == "hidden" {
				return false
			}
		}
	}
	return true
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
