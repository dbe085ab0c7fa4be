package ui

import (
	"fmt"
	"io"

	"activeAlerts/internal/crawler"
)

// PrintBanner выводит строку запуска
func PrintBanner(w io.Writer, url string) {
	fmt.Fprintln(w, colored(ColorBold, IconGlobe+" Active Alerts crawler"))
	fmt.Fprintln(w, colored(ColorGray, "Дашборд: "+url))
	fmt.Fprintln(w)
}

// PrintSummary выводит итог запуска: строку на площадку и общие счетчики
func PrintSummary(w io.Writer, s crawler.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, colored(ColorBold, IconChart+" Итоги запуска ")+colored(ColorGray, s.RunID))

	if s.Total == 0 {
		fmt.Fprintln(w, colored(ColorYellow, "  Площадок для обработки нет"))
		return
	}

	for _, r := range s.Results {
		icon, color, text := FormatStatus(r.Success)
		line := fmt.Sprintf("  %s %-4s %s", icon, text, r.Artifact)
		if r.Success {
			line += fmt.Sprintf(" (%d)", r.Records)
		}
		fmt.Fprintln(w, colored(color, line))
		if r.SaveErr != nil {
			fmt.Fprintln(w, colored(ColorYellow, "    "+IconWarning+" не сохранен: "+r.SaveErr.Error()))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Всего: %d  %s  %s\n",
		s.Total,
		colored(ColorGreen, fmt.Sprintf("ok: %d", s.OK())),
		colored(ColorRed, fmt.Sprintf("nok: %d", s.NOK())))
	if s.Unsaved > 0 {
		fmt.Fprintln(w, colored(ColorYellow, fmt.Sprintf("  Не сохранено артефактов: %d", s.Unsaved)))
	}
	fmt.Fprintln(w, colored(ColorGray, "  "+IconTime+" "+FormatDuration(s.Duration)))
}
