// Package crawler ведет обход площадок: одна сессия для подсчета, затем по
// свежей сессии на каждую площадку. Любая ошибка внутри обработки площадки
// превращается в nok-артефакт; прервать весь запуск может только ошибка до цикла.
package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"activeAlerts/internal/apperrors"
	"activeAlerts/internal/artifact"
	"activeAlerts/internal/extractor"
	"activeAlerts/internal/logger"
	"activeAlerts/internal/sanitizer"
	"activeAlerts/internal/session"
	"activeAlerts/internal/tenant"
)

type Config struct {
	URL           string
	UserName      string
	Password      string
	PageSettle    time.Duration // пауза после открытия площадки
	TeardownPause time.Duration // пауза после успешной площадки
}

type Crawler struct {
	sessions  *session.Manager
	tenants   *tenant.Enumerator
	locator   *extractor.Locator
	extractor *extractor.Extractor
	writer    *artifact.Writer
	sanitizer *sanitizer.DataSanitizer
	cfg       Config
	log       *logger.Zap
}

func New(
	sessions *session.Manager,
	tenants *tenant.Enumerator,
	locator *extractor.Locator,
	ext *extractor.Extractor,
	writer *artifact.Writer,
	cfg Config,
	log *logger.Zap,
) *Crawler {
	return &Crawler{
		sessions:  sessions,
		tenants:   tenants,
		locator:   locator,
		extractor: ext,
		writer:    writer,
		sanitizer: sanitizer.New(cfg.Password),
		cfg:       cfg,
		log:       log,
	}
}

// Outcome - результат обработки одной площадки: либо записи, либо ошибка.
type Outcome struct {
	Tenant  tenant.Tenant
	Records []string
	Err     error
}

func (o Outcome) Success() bool {
	return o.Err == nil
}

// Result - итог по одной площадке для сводки.
type Result struct {
	Index    int
	Artifact string
	Success  bool
	Records  int
	Err      error // ошибка обработки площадки
	SaveErr  error // ошибка записи артефакта
}

type Summary struct {
	RunID    string
	Total    int
	Results  []Result
	Unsaved  int
	Duration time.Duration
}

func (s Summary) OK() int {
	n := 0
	for _, r := range s.Results {
		if r.Success {
			n++
		}
	}
	return n
}

func (s Summary) NOK() int {
	return len(s.Results) - s.OK()
}

// Run определяет число площадок и обрабатывает их по одной.
func (c *Crawler) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	summary := Summary{RunID: uuid.NewString()}
	log := logger.Wrap(c.log.With(zap.String("run_id", summary.RunID)))

	count, err := c.count(ctx)
	if err != nil {
		return summary, fmt.Errorf("не удалось определить число площадок: %w", err)
	}
	summary.Total = count

	if count == 0 {
		log.Info("No plant to process")
		return summary, nil
	}
	log.Info("Начат обход площадок", zap.Int("count", count))

	for index := 0; index < count; index++ {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(started)
			return summary, err
		}

		outcome := c.processTenant(ctx, index)
		result := c.save(ctx, log, outcome)
		summary.Results = append(summary.Results, result)
		if result.SaveErr != nil {
			summary.Unsaved++
		}

		if result.Success {
			if err := session.Sleep(ctx, c.cfg.TeardownPause); err != nil {
				summary.Duration = time.Since(started)
				return summary, err
			}
		}
	}

	summary.Duration = time.Since(started)
	log.Info("Обход завершен",
		zap.Int("ok", summary.OK()),
		zap.Int("nok", summary.NOK()),
		zap.Int("unsaved", summary.Unsaved),
		zap.Duration("duration", summary.Duration))
	return summary, nil
}

// count открывает первую сессию только ради числа строк в таблице площадок.
func (c *Crawler) count(ctx context.Context) (int, error) {
	s, err := c.sessions.OpenAndLogin(ctx, c.cfg.URL, c.cfg.UserName, c.cfg.Password)
	if err != nil {
		return 0, err
	}
	defer c.closeSession(s)

	return c.tenants.Count(ctx, s)
}

// processTenant обрабатывает площадку index в собственной сессии.
// Сессия закрывается при любом исходе, паника становится ошибкой извлечения.
func (c *Crawler) processTenant(ctx context.Context, index int) (out Outcome) {
	out.Tenant = tenant.Tenant{Index: index}

	defer func() {
		if r := recover(); r != nil {
			out.Records = nil
			out.Err = apperrors.Extraction("process plant", fmt.Sprintf("panic: %v", r), nil)
		}
	}()

	s, err := c.sessions.OpenAndLogin(ctx, c.cfg.URL, c.cfg.UserName, c.cfg.Password)
	if err != nil {
		out.Err = err
		return out
	}
	defer c.closeSession(s)

	t, row, err := c.tenants.Locate(ctx, s, index)
	out.Tenant = t
	if err != nil {
		out.Err = err
		return out
	}

	if err := c.tenants.Activate(ctx, row); err != nil {
		out.Err = err
		return out
	}

	if err := session.Sleep(ctx, c.cfg.PageSettle); err != nil {
		out.Err = apperrors.Session("process plant", "ожидание прервано", err)
		return out
	}

	body, err := c.locator.Locate(ctx, s.Page())
	if err != nil {
		out.Err = err
		return out
	}

	records, err := c.extractor.Extract(ctx, body)
	if err != nil {
		out.Err = err
		return out
	}

	out.Records = records
	return out
}

func (c *Crawler) save(ctx context.Context, log *logger.Zap, out Outcome) Result {
	name := out.Tenant.Name
	if name == "" {
		name = FallbackName(out.Tenant.Index)
	}

	lines := out.Records
	if !out.Success() {
		lines = c.failureLines(out.Err)
		log.Warn("Площадка не обработана",
			zap.Int("index", out.Tenant.Index),
			zap.String("plant", name),
			zap.String("kind", apperrors.KindOf(out.Err).String()),
			zap.String("error", c.sanitizer.Sanitize(out.Err.Error())))
	}

	result := Result{Index: out.Tenant.Index, Success: out.Success(), Records: len(out.Records), Err: out.Err}

	artifactName, err := c.writer.Save(ctx, out.Success(), name, lines)
	result.Artifact = artifactName
	if err != nil {
		log.Error("Артефакт не сохранен",
			zap.Int("index", out.Tenant.Index),
			zap.String("artifact", artifactName),
			zap.Error(err))
		result.SaveErr = err
	}
	return result
}

func (c *Crawler) failureLines(err error) []string {
	return artifact.FailureLines(
		c.sanitizer.Sanitize(err.Error()),
		c.sanitizer.Sanitize(apperrors.TraceOf(err)),
	)
}

func (c *Crawler) closeSession(s *session.Session) {
	if err := s.Close(); err != nil {
		c.log.Warn("Ошибка закрытия сессии", zap.Error(err))
	}
}

// FallbackName - имя площадки, когда сбой случился до чтения ее строки.
func FallbackName(index int) string {
	return fmt.Sprintf("plant_%d", index)
}
