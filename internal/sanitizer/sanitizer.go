// Package sanitizer маскирует секреты в тексте, который уходит в артефакты и логи:
// сообщения об ошибках, трассировки и URL.
package sanitizer

import "strings"

const Filtered = "[FILTERED]"

type Rule interface {
	Sanitize(text string) string
}

type DataSanitizer struct {
	rules []Rule
}

// New собирает стандартный набор правил. secrets - значения, которые
// маскируются дословно (например, пароль из конфигурации).
func New(secrets ...string) *DataSanitizer {
	rules := []Rule{
		NewSecretRule(secrets...),
		passwordRule,
		tokenRule,
		cookieRule,
		apiKeyRule,
		urlCredentialsRule,
		emailRule,
	}
	return &DataSanitizer{rules: rules}
}

func (s *DataSanitizer) Sanitize(text string) string {
	if text == "" {
		return text
	}

	result := text
	for _, rule := range s.rules {
		result = rule.Sanitize(result)
	}
	return result
}

// SanitizeLines применяет Sanitize к каждой строке, не меняя их количество.
func (s *DataSanitizer) SanitizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = s.Sanitize(line)
	}
	return out
}

// SecretRule заменяет известные значения целиком.
type SecretRule struct {
	secrets []string
}

func NewSecretRule(secrets ...string) *SecretRule {
	r := &SecretRule{}
	for _, s := range secrets {
		// короткие значения дают слишком много ложных совпадений
		if len(s) >= 3 {
			r.secrets = append(r.secrets, s)
		}
	}
	return r
}

func (r *SecretRule) Sanitize(text string) string {
	for _, s := range r.secrets {
		text = strings.ReplaceAll(text, s, Filtered)
	}
	return text
}
