package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e *playwrightElement) Parent() (Element, error) {
	return wrapHandle(e.handle.QuerySelector(ParentSelector().Playwright(true)))
}

func (e *playwrightElement) Find(sel Selector) (Element, error) {
	return wrapHandle(e.handle.QuerySelector(sel.Playwright(true)))
}

func (e *playwrightElement) FindAll(sel Selector) ([]Element, error) {
	return wrapHandles(e.handle.QuerySelectorAll(sel.Playwright(true)))
}

// Text возвращает видимый текст элемента без крайних пробелов.
func (e *playwrightElement) Text() (string, error) {
	text, err := e.handle.InnerText()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (e *playwrightElement) Fill(value string) error {
	return e.handle.Fill(value)
}

func (e *playwrightElement) Hover() error {
	return e.handle.Hover()
}

func (e *playwrightElement) Click() error {
	return e.handle.Click()
}

func (e *playwrightElement) ScriptClick() error {
	if _, err := e.handle.Evaluate(`el => el.click()`); err != nil {
		return fmt.Errorf("ошибка клика через скрипт: %w", err)
	}
	return nil
}

// ScrollToEnd прокручивает содержимое элемента до конца (scrollTop = scrollHeight).
func (e *playwrightElement) ScrollToEnd() error {
	_, err := e.handle.Evaluate(`el => { el.scrollTop = el.scrollHeight; }`)
	if err != nil {
		return fmt.Errorf("ошибка прокрутки: %w", err)
	}
	return nil
}
