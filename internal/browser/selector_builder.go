package browser

import (
	"fmt"
	"strings"
)

type SelectorStrategy int

const (
	StrategyID SelectorStrategy = iota
	StrategyClass
	StrategyTag
	StrategyText
	StrategyParent
)

func (s SelectorStrategy) String() string {
	switch s {
	case StrategyID:
		return "id"
	case StrategyClass:
		return "class"
	case StrategyTag:
		return "tag"
	case StrategyText:
		return "text"
	case StrategyParent:
		return "parent"
	default:
		return "unknown"
	}
}

// Selector - способ найти элемент, не привязанный к конкретному драйверу.
type Selector struct {
	Strategy SelectorStrategy
	Value    string
}

func ByID(id string) Selector {
	return Selector{Strategy: StrategyID, Value: id}
}

func ByClass(class string) Selector {
	return Selector{Strategy: StrategyClass, Value: class}
}

func ByTag(tag string) Selector {
	return Selector{Strategy: StrategyTag, Value: tag}
}

// ByText находит элемент, у которого есть текстовый узел, в точности равный text
// (аналог XPath //*[text()='...']).
func ByText(text string) Selector {
	return Selector{Strategy: StrategyText, Value: text}
}

// ParentSelector указывает на непосредственного родителя.
func ParentSelector() Selector {
	return Selector{Strategy: StrategyParent}
}

func (s Selector) String() string {
	if s.Strategy == StrategyParent {
		return "parent"
	}
	return fmt.Sprintf("%s=%q", s.Strategy, s.Value)
}

// Playwright строит строку селектора Playwright. relative=true ограничивает
// текстовый поиск потомками элемента, на котором выполняется запрос.
func (s Selector) Playwright(relative bool) string {
	switch s.Strategy {
	case StrategyID:
		return "#" + s.Value
	case StrategyClass:
		return "." + s.Value
	case StrategyText:
		prefix := "//"
		if relative {
			prefix = ".//"
		}
		return "xpath=" + prefix + "*[text()=" + xpathLiteral(s.Value) + "]"
	case StrategyParent:
		return "xpath=.."
	default:
		return s.Value
	}
}

// xpathLiteral экранирует строку для XPath 1.0, где нет escape-последовательностей:
// строки с обоими видами кавычек собираются через concat().
func xpathLiteral(text string) string {
	if !strings.Contains(text, "'") {
		return "'" + text + "'"
	}
	if !strings.Contains(text, `"`) {
		return `"` + text + `"`
	}

	parts := strings.Split(text, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if part != "" {
			quoted = append(quoted, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
