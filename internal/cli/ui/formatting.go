package ui

import (
	"fmt"
	"time"
)

// FormatStatus возвращает иконку, цвет и текст для исхода площадки
func FormatStatus(success bool) (icon, color, text string) {
	if success {
		return IconCheckmark, ColorGreen, "ok"
	}
	return IconCross, ColorRed, "nok"
}

// FormatDuration округляет длительность до секунд для вывода
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

func colored(color, text string) string {
	return fmt.Sprint(color, text, ColorReset)
}
