// Package session открывает контекст браузера на стартовой странице дашборда,
// выполняет вход и закрывает контекст. Каждая сессия принадлежит ровно одной площадке.
package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"activeAlerts/internal/apperrors"
	"activeAlerts/internal/browser"
	"activeAlerts/internal/logger"
)

// Структурные маркеры формы входа.
var (
	userNameInput = browser.ByID("username")
	passwordInput = browser.ByID("password")
	loginButton   = browser.ByClass("btn")
)

type Config struct {
	OpenSettle  time.Duration // пауза после навигации, пока приложение дорисуется
	LoginSettle time.Duration // пауза после нажатия кнопки входа
}

type Manager struct {
	launcher browser.Launcher
	cfg      Config
	log      *logger.Zap
}

func NewManager(launcher browser.Launcher, cfg Config, log *logger.Zap) *Manager {
	return &Manager{
		launcher: launcher,
		cfg:      cfg,
		log:      log,
	}
}

// Session - открытый контекст браузера. После Close не используется.
type Session struct {
	page   browser.Page
	url    string
	closed bool
}

func (s *Session) Page() browser.Page {
	return s.page
}

func (s *Session) URL() string {
	return s.url
}

func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	return s.page.Close()
}

// Open создает новый контекст, переходит на url и ждет OpenSettle.
func (m *Manager) Open(ctx context.Context, url string) (*Session, error) {
	page, err := m.launcher.Launch(ctx)
	if err != nil {
		return nil, apperrors.Session("open", "не удалось открыть браузер", err)
	}

	if err := page.Goto(ctx, url); err != nil {
		page.Close()
		return nil, apperrors.Session("open", "не удалось открыть "+url, err)
	}

	if err := Sleep(ctx, m.cfg.OpenSettle); err != nil {
		page.Close()
		return nil, apperrors.Session("open", "ожидание прервано", err)
	}

	m.log.Debug("Сессия открыта", zap.String("url", url))
	return &Session{page: page, url: url}, nil
}

// Login заполняет форму входа и нажимает кнопку. Отсутствие любого элемента
// формы означает, что страница не та, которую мы ожидаем; повторов нет.
func (m *Manager) Login(ctx context.Context, s *Session, user, pass string) (*Session, error) {
	if s == nil || s.closed {
		return nil, apperrors.Login("login", "сессия не открыта", nil)
	}
	page := s.page

	userField, err := page.Find(ctx, userNameInput)
	if err != nil {
		return nil, apperrors.Login("login", "поле username не найдено", err)
	}
	if err := userField.Fill(user); err != nil {
		return nil, apperrors.Login("login", "не удалось ввести имя пользователя", err)
	}

	passField, err := page.Find(ctx, passwordInput)
	if err != nil {
		return nil, apperrors.Login("login", "поле password не найдено", err)
	}
	if err := passField.Fill(pass); err != nil {
		return nil, apperrors.Login("login", "не удалось ввести пароль", err)
	}

	button, err := page.Find(ctx, loginButton)
	if err != nil {
		return nil, apperrors.Login("login", "кнопка входа не найдена", err)
	}
	if err := button.ScriptClick(); err != nil {
		return nil, apperrors.Login("login", "не удалось нажать кнопку входа", err)
	}

	if err := Sleep(ctx, m.cfg.LoginSettle); err != nil {
		return nil, apperrors.Login("login", "ожидание прервано", err)
	}

	m.log.Debug("Вход выполнен", zap.String("url", s.url))
	return s, nil
}

// OpenAndLogin - Open и Login одним вызовом; при ошибке входа сессия закрывается.
func (m *Manager) OpenAndLogin(ctx context.Context, url, user, pass string) (*Session, error) {
	s, err := m.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	if _, err := m.Login(ctx, s, user, pass); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Sleep - фиксированная блокирующая пауза, прерываемая только отменой ctx.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
