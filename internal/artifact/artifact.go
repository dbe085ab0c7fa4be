// Package artifact сохраняет результат обработки площадки. Имя артефакта само
// хранит исход (ok_/nok_), отдельного журнала статусов нет.
package artifact

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"activeAlerts/internal/apperrors"
	"activeAlerts/internal/logger"
)

const (
	StatusOK  = "ok"
	StatusNOK = "nok"
)

// Sink записывает артефакт под именем name, заменяя предыдущий с тем же именем.
type Sink interface {
	Write(ctx context.Context, name string, lines []string) error
}

// Status возвращает префикс исхода.
func Status(success bool) string {
	if success {
		return StatusOK
	}
	return StatusNOK
}

// Name строит имя артефакта: {status}_{имя в нижнем регистре, пробелы -> _}.
func Name(success bool, tenant string) string {
	return Status(success) + "_" + strings.ToLower(strings.ReplaceAll(tenant, " ", "_"))
}

// FailureLines - фиксированная форма диагностического артефакта:
// сообщение, две пустые строки, трассировка.
func FailureLines(message, trace string) []string {
	return []string{message, "", "", trace}
}

type Writer struct {
	sinks []Sink
	log   *logger.Zap
}

func NewWriter(log *logger.Zap, sinks ...Sink) *Writer {
	return &Writer{sinks: sinks, log: log}
}

// Save пишет артефакт во все приемники; первая ошибка прерывает запись.
func (w *Writer) Save(ctx context.Context, success bool, tenant string, lines []string) (string, error) {
	name := Name(success, tenant)
	for _, sink := range w.sinks {
		if err := sink.Write(ctx, name, lines); err != nil {
			return name, apperrors.IO("save", "не удалось сохранить "+name, err)
		}
	}
	w.log.Info("Артефакт сохранен",
		zap.String("artifact", name),
		zap.String("status", Status(success)),
		zap.Int("lines", len(lines)))
	return name, nil
}

// FileSink пишет артефакты в файлы по шаблону пути с плейсхолдером "{}".
type FileSink struct {
	pathFormat string
}

func NewFileSink(pathFormat string) *FileSink {
	return &FileSink{pathFormat: pathFormat}
}

// Path подставляет имя артефакта в шаблон.
func (s *FileSink) Path(name string) string {
	return strings.Replace(s.pathFormat, "{}", name, 1)
}

// Write создает каталог при необходимости и перезаписывает файл: каждая строка
// завершается переводом строки.
func (s *FileSink) Write(ctx context.Context, name string, lines []string) error {
	path := s.Path(name)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
