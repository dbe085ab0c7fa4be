// Package extractor находит таблицу "Active Alerts" на странице площадки и
// превращает ее строки в текстовые записи.
//
// Таблица не имеет ни id, ни устойчивых классов, поэтому она ищется по двум
// текстовым якорям и фиксированному числу шагов вверх по DOM. Любое изменение
// верстки ломает поиск громко, на конкретном шаге, а не молча.
package extractor

import (
	"context"
	"fmt"
	"time"

	"activeAlerts/internal/apperrors"
	"activeAlerts/internal/browser"
)

const (
	// SectionAnchor - заголовок блока активных алертов.
	SectionAnchor = "Active Alerts"
	// HeaderAnchor - подпись колонки внутри таблицы алертов.
	HeaderAnchor = "description"

	// SectionDepth - span -> h2 -> header -> контейнер блока.
	SectionDepth = 3
	// TableDepth - от подписи колонки до корня, внутри которого лежит tbody.
	TableDepth = 8
)

var bodySelector = browser.ByTag("tbody")

type Locator struct {
	waitTimeout time.Duration
}

func NewLocator(waitTimeout time.Duration) *Locator {
	return &Locator{waitTimeout: waitTimeout}
}

// Locate возвращает tbody таблицы активных алертов или NotFound с номером шага.
func (l *Locator) Locate(ctx context.Context, page browser.Page) (browser.Element, error) {
	anchor, err := page.WaitVisible(ctx, browser.ByText(SectionAnchor), l.waitTimeout)
	if err != nil {
		return nil, apperrors.NotFound("locate alerts", "шаг 1: нет заголовка "+SectionAnchor, err)
	}

	section, err := climb(anchor, SectionDepth)
	if err != nil {
		return nil, apperrors.NotFound("locate alerts", "шаг 2: нет контейнера блока", err)
	}

	header, err := section.Find(browser.ByText(HeaderAnchor))
	if err != nil {
		return nil, apperrors.NotFound("locate alerts", "шаг 3: нет колонки "+HeaderAnchor, err)
	}

	root, err := climb(header, TableDepth)
	if err != nil {
		return nil, apperrors.NotFound("locate alerts", "шаг 4: нет корня таблицы", err)
	}

	body, err := root.Find(bodySelector)
	if err != nil {
		return nil, apperrors.NotFound("locate alerts", "шаг 5: у таблицы нет tbody", err)
	}
	return body, nil
}

// climb поднимается ровно на depth предков вверх.
func climb(el browser.Element, depth int) (browser.Element, error) {
	current := el
	for i := 1; i <= depth; i++ {
		parent, err := current.Parent()
		if err != nil {
			return nil, fmt.Errorf("предок %d из %d: %w", i, depth, err)
		}
		current = parent
	}
	return current, nil
}
