package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

type playwrightPage struct {
	context playwright.BrowserContext
	page    playwright.Page
	cfg     Config
	closed  bool
}

func (p *playwrightPage) Goto(ctx context.Context, url string) error {
	if p.closed {
		return fmt.Errorf("браузер не запущен")
	}

	navCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		_, err := p.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateLoad,
			Timeout:   playwright.Float(float64(p.cfg.Timeout.Milliseconds())),
		})
		errChan <- err
	}()

	select {
	case <-navCtx.Done():
		return fmt.Errorf("navigate timeout after %v", p.cfg.Timeout)
	case err := <-errChan:
		return err
	}
}

func (p *playwrightPage) WaitVisible(ctx context.Context, sel Selector, timeout time.Duration) (Element, error) {
	if p.closed {
		return nil, fmt.Errorf("браузер не запущен")
	}
	if sel.Strategy == StrategyParent {
		return nil, fmt.Errorf("у страницы нет родителя")
	}

	handle, err := p.page.WaitForSelector(sel.Playwright(false), playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) || strings.Contains(err.Error(), "Timeout") {
			return nil, fmt.Errorf("%s не появился за %v: %w", sel, timeout, ErrNotFound)
		}
		return nil, err
	}
	if handle == nil {
		return nil, fmt.Errorf("%s: %w", sel, ErrNotFound)
	}
	return &playwrightElement{handle: handle}, nil
}

func (p *playwrightPage) Find(ctx context.Context, sel Selector) (Element, error) {
	if p.closed {
		return nil, fmt.Errorf("браузер не запущен")
	}
	if sel.Strategy == StrategyParent {
		return nil, fmt.Errorf("у страницы нет родителя")
	}
	return wrapHandle(p.page.QuerySelector(sel.Playwright(false)))
}

func (p *playwrightPage) FindAll(ctx context.Context, sel Selector) ([]Element, error) {
	if p.closed {
		return nil, fmt.Errorf("браузер не запущен")
	}
	return wrapHandles(p.page.QuerySelectorAll(sel.Playwright(false)))
}

func (p *playwrightPage) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.context.Close()
}

func wrapHandle(handle playwright.ElementHandle, err error) (Element, error) {
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, ErrNotFound
	}
	return &playwrightElement{handle: handle}, nil
}

func wrapHandles(handles []playwright.ElementHandle, err error) ([]Element, error) {
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &playwrightElement{handle: h})
	}
	return elements, nil
}
