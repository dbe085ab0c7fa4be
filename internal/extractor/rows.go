package extractor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"activeAlerts/internal/apperrors"
	"activeAlerts/internal/browser"
)

// Delimiter разделяет колонки в записи.
const Delimiter = ";"

// dataColumn - первая колонка с данными; 0 и 1 - кнопка раскрытия и счетчик группы.
const dataColumn = 2

var (
	rowSelector  = browser.ByTag("tr")
	cellSelector = browser.ByTag("td")
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract обходит строки tbody по порядку. Сгруппированная строка (счетчик > 1)
// раскрывается кликом и записи не дает; после клика коллекция строк читается
// заново, и обход продолжается со следующего индекса, так что вставленные
// под группой строки тоже попадают в результат. Группа, которая не раскрылась,
// просто пропускается.
func (x *Extractor) Extract(ctx context.Context, body browser.Element) ([]string, error) {
	rows, err := body.FindAll(rowSelector)
	if err != nil {
		return nil, apperrors.Extraction("extract", "не удалось прочитать строки", err)
	}

	records := make([]string, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.Extraction("extract", "обход прерван", err)
		}

		row := rows[i]
		if err := row.ScrollToEnd(); err != nil {
			return nil, apperrors.Extraction("extract", fmt.Sprintf("строка %d", i), err)
		}

		cells, err := row.FindAll(cellSelector)
		if err != nil {
			return nil, apperrors.Extraction("extract", fmt.Sprintf("строка %d: колонки", i), err)
		}
		if len(cells) < dataColumn {
			return nil, apperrors.Extraction("extract",
				fmt.Sprintf("строка %d: ожидалось минимум %d колонки, найдено %d", i, dataColumn, len(cells)), nil)
		}

		count, err := groupCount(cells[1])
		if err != nil {
			return nil, apperrors.Extraction("extract", fmt.Sprintf("строка %d", i), err)
		}

		if count > 1 {
			if err := expand(cells[0]); err != nil {
				return nil, apperrors.Extraction("extract", fmt.Sprintf("строка %d: раскрытие группы", i), err)
			}
			rows, err = body.FindAll(rowSelector)
			if err != nil {
				return nil, apperrors.Extraction("extract", "не удалось перечитать строки", err)
			}
			continue
		}

		record, err := Record(cells)
		if err != nil {
			return nil, apperrors.Extraction("extract", fmt.Sprintf("строка %d", i), err)
		}
		records = append(records, record)
	}

	return records, nil
}

// groupCount читает счетчик группы из колонки 1; пустая колонка - 0.
func groupCount(cell browser.Element) (int, error) {
	text, err := cell.Text()
	if err != nil {
		return 0, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("счетчик группы %q не число", text)
	}
	return n, nil
}

// expand наводит курсор на кнопку раскрытия и кликает по ней.
func expand(cell browser.Element) error {
	if err := cell.Hover(); err != nil {
		return err
	}
	return cell.Click()
}

// Record склеивает текст колонок начиная со второй через Delimiter и
// отрезает разделители в конце.
func Record(cells []browser.Element) (string, error) {
	var b strings.Builder
	for i := dataColumn; i < len(cells); i++ {
		text, err := cells[i].Text()
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		b.WriteString(Delimiter)
	}
	return strings.TrimRight(b.String(), Delimiter), nil
}
