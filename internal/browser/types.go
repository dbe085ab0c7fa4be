// Package browser описывает набор возможностей браузера, нужный краулеру
// (навигация, поиск элементов, ожидание видимости, клики, hover), и его реализацию на Playwright.
package browser

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ErrNotFound возвращается, когда по селектору нет ни одного элемента.
var ErrNotFound = errors.New("элемент не найден")

// Launcher открывает новый изолированный контекст браузера (свои cookies и storage).
type Launcher interface {
	Launch(ctx context.Context) (Page, error)
}

// Page - вкладка внутри собственного контекста браузера.
type Page interface {
	Goto(ctx context.Context, url string) error
	// WaitVisible ждет видимый элемент не дольше timeout.
	WaitVisible(ctx context.Context, sel Selector, timeout time.Duration) (Element, error)
	Find(ctx context.Context, sel Selector) (Element, error)
	FindAll(ctx context.Context, sel Selector) ([]Element, error)
	// Close закрывает контекст вместе со страницей. Повторный вызов - no-op.
	Close() error
}

// Element - ссылка на узел DOM. Find/FindAll ищут среди потомков.
type Element interface {
	Parent() (Element, error)
	Find(sel Selector) (Element, error)
	FindAll(sel Selector) ([]Element, error)
	Text() (string, error)
	Fill(value string) error
	Hover() error
	Click() error
	// ScriptClick кликает через element.click() в странице, минуя проверки видимости.
	ScriptClick() error
	ScrollToEnd() error
}

type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     Config
	mu      sync.Mutex
}

type Config struct {
	Engine       string
	Headless     bool
	BrowsersPath string
	Display      string
	Timeout      time.Duration
}
