package browser

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

func New(cfg Config) *PlaywrightBrowser {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Engine == "" {
		cfg.Engine = "chromium"
	}

	return &PlaywrightBrowser{
		cfg: cfg,
	}
}

func (b *PlaywrightBrowser) getBrowserArgs() []string {
	if strings.EqualFold(b.cfg.Engine, "chromium") {
		return []string{
			"--no-sandbox",
			"--disable-dev-shm-usage",
		}
	}
	return nil
}

func (b *PlaywrightBrowser) getEnvMap() map[string]string {
	if b.cfg.Display != "" {
		return map[string]string{
			"DISPLAY": b.cfg.Display,
		}
	}
	return nil
}

func (b *PlaywrightBrowser) browserType() (playwright.BrowserType, error) {
	switch strings.ToLower(b.cfg.Engine) {
	case "chromium", "chrome":
		return b.pw.Chromium, nil
	case "firefox":
		return b.pw.Firefox, nil
	case "webkit":
		return b.pw.WebKit, nil
	default:
		return nil, fmt.Errorf("неизвестный браузер: %s", b.cfg.Engine)
	}
}

// start лениво поднимает драйвер Playwright и процесс браузера; дальше каждый
// Launch создает только новый контекст.
func (b *PlaywrightBrowser) start() error {
	if b.browser != nil {
		return nil
	}

	if b.cfg.BrowsersPath != "" {
		os.Setenv("PLAYWRIGHT_BROWSERS_PATH", b.cfg.BrowsersPath)
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("не удалось запустить playwright: %w", err)
	}
	b.pw = pw

	bt, err := b.browserType()
	if err != nil {
		b.stopDriver()
		return err
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.cfg.Headless),
		Args:     b.getBrowserArgs(),
	}
	if env := b.getEnvMap(); env != nil {
		opts.Env = env
	}

	browser, err := bt.Launch(opts)
	if err != nil {
		b.stopDriver()
		return fmt.Errorf("не удалось запустить браузер: %w", err)
	}
	b.browser = browser
	return nil
}

// Launch открывает новый контекст браузера с одной страницей.
func (b *PlaywrightBrowser) Launch(ctx context.Context) (Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.start(); err != nil {
		return nil, err
	}

	browserContext, err := b.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("не удалось создать контекст: %w", err)
	}

	page, err := browserContext.NewPage()
	if err != nil {
		browserContext.Close()
		return nil, fmt.Errorf("не удалось создать страницу: %w", err)
	}
	page.SetDefaultTimeout(float64(b.cfg.Timeout.Milliseconds()))

	return &playwrightPage{
		context: browserContext,
		page:    page,
		cfg:     b.cfg,
	}, nil
}

func (b *PlaywrightBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			return err
		}
		b.browser = nil
	}
	return b.stopDriver()
}

func (b *PlaywrightBrowser) stopDriver() error {
	if b.pw == nil {
		return nil
	}
	err := b.pw.Stop()
	b.pw = nil
	return err
}
