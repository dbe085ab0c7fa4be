package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  NotFound("locate", "нет заголовка Active Alerts", nil),
			want: "locate: нет заголовка Active Alerts",
		},
		{
			name: "wrapped cause",
			err:  Login("login", "поле username не найдено", errors.New("timeout")),
			want: "login: поле username не найдено: timeout",
		},
		{
			name: "cause without message",
			err:  Session("open", "", errors.New("net::ERR_NAME_NOT_RESOLVED")),
			want: "open: net::ERR_NAME_NOT_RESOLVED",
		},
		{
			name: "no op",
			err:  Extraction("", "Timeout", nil),
			want: "Timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsKind_ThroughWrapping(t *testing.T) {
	base := NotFound("locate", "description", nil)
	wrapped := fmt.Errorf("площадка 3: %w", base)

	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindLogin))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindExtraction, KindOf(errors.New("plain")))
}

func TestTrace(t *testing.T) {
	err := Extraction("extract", "битая строка", nil)

	assert.Contains(t, err.Trace(), "apperrors")
	assert.Equal(t, err.Trace(), TraceOf(fmt.Errorf("wrap: %w", err)))
	assert.Empty(t, TraceOf(errors.New("plain")))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "config", KindConfig.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
