package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"activeAlerts/internal/apperrors"
)

// OutputPlaceholder - место в output_path_format, куда подставляется имя артефакта.
const OutputPlaceholder = "{}"

type Cfg struct {
	Crawler    Crawler
	Timing     Timing
	Database   Database
	Logger     Logger
	Browser    Browser
	Migrations Migrations
}

// Crawler - обязательные настройки из файла конфигурации.
type Crawler struct {
	URL              string `yaml:"url"`
	UserName         string `yaml:"user_name"`
	Password         string `yaml:"password"`
	OutputPathFormat string `yaml:"output_path_format"`
}

// Timing - фиксированные паузы и таймауты ожидания видимости.
type Timing struct {
	WaitTimeout   time.Duration
	OpenSettle    time.Duration
	LoginSettle   time.Duration
	PageSettle    time.Duration
	TeardownPause time.Duration
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Enabled сообщает, настроено ли зеркалирование артефактов в PostgreSQL.
func (d Database) Enabled() bool {
	return d.Host != ""
}

// DSN возвращает строку подключения для gorm postgres драйвера.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// URL возвращает строку подключения в формате, который ожидает golang-migrate.
func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
}

type Browser struct {
	Engine       string
	Display      string
	Headless     bool
	BrowsersPath string
}

// settingsFile повторяет структуру config.json: {"config": {...}}.
type settingsFile struct {
	Config *Crawler `yaml:"config"`
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	crawler, err := LoadSettings(env("CONFIG_PATH", "config.json"))
	if err != nil {
		return nil, err
	}

	cfg := &Cfg{
		Crawler: *crawler,
		Timing: Timing{
			WaitTimeout:   envDuration("WAIT_TIMEOUT", 20*time.Second),
			OpenSettle:    envDuration("OPEN_SETTLE", 5*time.Second),
			LoginSettle:   envDuration("LOGIN_SETTLE", 10*time.Second),
			PageSettle:    envDuration("PAGE_SETTLE", 5*time.Second),
			TeardownPause: envDuration("TEARDOWN_PAUSE", 5*time.Second),
		},
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		Browser: Browser{
			Engine:       env("PW_BROWSER", "chromium"),
			Display:      os.Getenv("DISPLAY"),
			Headless:     envBool("PW_HEADLESS"),
			BrowsersPath: env("PLAYWRIGHT_BROWSERS_PATH", ""),
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	return cfg, nil
}

// LoadSettings читает секцию "config" из файла настроек. JSON является подмножеством
// YAML, поэтому одинаково читаются config.json и config.yaml.
func LoadSettings(path string) (*Crawler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.Config("config", "файл настроек не найден: "+path, err)
		}
		return nil, apperrors.Config("config", "не удалось прочитать "+path, err)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.Config("config", "не удалось разобрать "+path, err)
	}
	if file.Config == nil {
		return nil, apperrors.Config("config", "в "+path+" нет секции \"config\"", nil)
	}

	if err := file.Config.Validate(); err != nil {
		return nil, err
	}
	return file.Config, nil
}

// Validate проверяет наличие всех обязательных полей.
func (c *Crawler) Validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "url")
	}
	if c.UserName == "" {
		missing = append(missing, "user_name")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if c.OutputPathFormat == "" {
		missing = append(missing, "output_path_format")
	}
	if len(missing) > 0 {
		return apperrors.Config("config", "не заданы обязательные поля: "+strings.Join(missing, ", "), nil)
	}

	if !strings.Contains(c.OutputPathFormat, OutputPlaceholder) {
		return apperrors.Config("config", "output_path_format должен содержать "+OutputPlaceholder, nil)
	}
	return nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// envDuration принимает как "1500ms"/"5s", так и целое число секунд.
func envDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n := envInt(key, -1); n >= 0 {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}
