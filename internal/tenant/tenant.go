// Package tenant перечисляет площадки (plants) на стартовой таблице после входа.
// Строки таблицы привязаны к сессии, поэтому площадка каждый раз ищется заново по индексу.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"activeAlerts/internal/apperrors"
	"activeAlerts/internal/browser"
	"activeAlerts/internal/session"
)

var (
	tableSelector = browser.ByTag("table")
	rowSelector   = browser.ByTag("tr")
	cellSelector  = browser.ByTag("td")
)

// Tenant - площадка: индекс в таблице и имя из колонок 1 и 2.
type Tenant struct {
	Index int
	Name  string
}

type Enumerator struct {
	waitTimeout time.Duration
}

func NewEnumerator(waitTimeout time.Duration) *Enumerator {
	return &Enumerator{waitTimeout: waitTimeout}
}

// List ждет видимую таблицу и возвращает все ее строки. Если таблица так и не
// появилась, возвращается пустой список: решать, ошибка ли это, будет вызывающий.
func (e *Enumerator) List(ctx context.Context, s *session.Session) ([]browser.Element, error) {
	if s == nil {
		return nil, nil
	}

	table, err := s.Page().WaitVisible(ctx, tableSelector, e.waitTimeout)
	if err != nil {
		if errors.Is(err, browser.ErrNotFound) {
			return []browser.Element{}, nil
		}
		return nil, apperrors.Session("list plants", "ошибка ожидания таблицы площадок", err)
	}

	rows, err := table.FindAll(rowSelector)
	if err != nil {
		return nil, apperrors.Session("list plants", "ошибка чтения строк таблицы", err)
	}
	return rows, nil
}

func (e *Enumerator) Count(ctx context.Context, s *session.Session) (int, error) {
	rows, err := e.List(ctx, s)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Locate находит строку площадки с индексом index и читает ее имя.
func (e *Enumerator) Locate(ctx context.Context, s *session.Session, index int) (Tenant, browser.Element, error) {
	rows, err := e.List(ctx, s)
	if err != nil {
		return Tenant{Index: index}, nil, err
	}
	if index < 0 || index >= len(rows) {
		return Tenant{Index: index}, nil, apperrors.NotFound("locate plant",
			fmt.Sprintf("площадка %d не найдена, в таблице %d строк", index, len(rows)), nil)
	}

	row := rows[index]
	name, err := Name(row)
	if err != nil {
		return Tenant{Index: index}, nil, err
	}
	return Tenant{Index: index, Name: name}, row, nil
}

// Activate открывает страницу площадки кликом по строке.
func (e *Enumerator) Activate(ctx context.Context, row browser.Element) error {
	if err := row.ScriptClick(); err != nil {
		return apperrors.Session("activate plant", "не удалось открыть площадку", err)
	}
	return nil
}

// Name собирает имя площадки: текст колонки 1 + "_" + текст колонки 2.
func Name(row browser.Element) (string, error) {
	cells, err := row.FindAll(cellSelector)
	if err != nil {
		return "", apperrors.NotFound("plant name", "ошибка чтения колонок", err)
	}
	if len(cells) < 3 {
		return "", apperrors.NotFound("plant name", fmt.Sprintf("ожидалось минимум 3 колонки, найдено %d", len(cells)), nil)
	}

	first, err := cells[1].Text()
	if err != nil {
		return "", apperrors.NotFound("plant name", "ошибка чтения колонки 1", err)
	}
	second, err := cells[2].Text()
	if err != nil {
		return "", apperrors.NotFound("plant name", "ошибка чтения колонки 2", err)
	}
	return first + "_" + second, nil
}
