package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"activeAlerts/internal/artifact"
	"activeAlerts/internal/browser"
	"activeAlerts/internal/cli/ui"
	"activeAlerts/internal/config"
	"activeAlerts/internal/crawler"
	"activeAlerts/internal/database"
	"activeAlerts/internal/extractor"
	"activeAlerts/internal/logger"
	"activeAlerts/internal/migrations"
	"activeAlerts/internal/session"
	"activeAlerts/internal/tenant"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	sinks := []artifact.Sink{artifact.NewFileSink(cfg.Crawler.OutputPathFormat)}

	if cfg.Database.Enabled() {
		if err := migrations.Run(cfg, log); err != nil {
			log.Fatal("Ошибка миграций", zap.Error(err))
		}

		db, err := database.New(cfg, log)
		if err != nil {
			log.Fatal("Ошибка подключения к БД", zap.Error(err))
		}
		defer db.Close(log)

		sinks = append(sinks, database.NewArtifactRepository(db.DB))
	}

	br := browser.New(browser.Config{
		Engine:       cfg.Browser.Engine,
		Headless:     cfg.Browser.Headless,
		BrowsersPath: cfg.Browser.BrowsersPath,
		Display:      cfg.Browser.Display,
		Timeout:      cfg.Timing.WaitTimeout,
	})
	defer func() {
		if err := br.Close(); err != nil {
			log.Warn("Ошибка закрытия браузера", zap.Error(err))
		}
	}()

	c := crawler.New(
		session.NewManager(br, session.Config{
			OpenSettle:  cfg.Timing.OpenSettle,
			LoginSettle: cfg.Timing.LoginSettle,
		}, log),
		tenant.NewEnumerator(cfg.Timing.WaitTimeout),
		extractor.NewLocator(cfg.Timing.WaitTimeout),
		extractor.NewExtractor(),
		artifact.NewWriter(log, sinks...),
		crawler.Config{
			URL:           cfg.Crawler.URL,
			UserName:      cfg.Crawler.UserName,
			Password:      cfg.Crawler.Password,
			PageSettle:    cfg.Timing.PageSettle,
			TeardownPause: cfg.Timing.TeardownPause,
		},
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintBanner(os.Stdout, cfg.Crawler.URL)

	summary, err := c.Run(ctx)
	ui.PrintSummary(os.Stdout, summary)
	if err != nil {
		log.Error("Запуск прерван", zap.Error(err))
		exit(log, br, 1)
	}
	if summary.Unsaved > 0 {
		exit(log, br, 1)
	}
}

// exit закрывает браузер до os.Exit: отложенные вызовы при выходе не выполняются.
func exit(log *logger.Zap, br *browser.PlaywrightBrowser, code int) {
	if err := br.Close(); err != nil {
		log.Warn("Ошибка закрытия браузера", zap.Error(err))
	}
	_ = log.Sync()
	os.Exit(code)
}
