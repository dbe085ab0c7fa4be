// Package apperrors описывает виды ошибок краулера и способ получить из них
// текст трассировки для диагностического артефакта.
package apperrors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

type Kind int

const (
	KindConfig Kind = iota
	KindSession
	KindLogin
	KindNotFound
	KindExtraction
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindSession:
		return "session"
	case KindLogin:
		return "login"
	case KindNotFound:
		return "not_found"
	case KindExtraction:
		return "extraction"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error - ошибка определенного вида с операцией, на которой она возникла.
// Стек фиксируется в момент создания.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
	stack   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Trace возвращает стек создания ошибки в формате pkg/errors.
func (e *Error) Trace() string {
	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	st, ok := e.stack.(stackTracer)
	if !ok {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%+v", st.StackTrace()))
}

func newError(kind Kind, op, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Err:     err,
		stack:   pkgerrors.New(op),
	}
}

func Config(op, message string, err error) *Error {
	return newError(KindConfig, op, message, err)
}

func Session(op, message string, err error) *Error {
	return newError(KindSession, op, message, err)
}

func Login(op, message string, err error) *Error {
	return newError(KindLogin, op, message, err)
}

func NotFound(op, message string, err error) *Error {
	return newError(KindNotFound, op, message, err)
}

func Extraction(op, message string, err error) *Error {
	return newError(KindExtraction, op, message, err)
}

func IO(op, message string, err error) *Error {
	return newError(KindIO, op, message, err)
}

// IsKind сообщает, есть ли в цепочке err ошибка вида kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf возвращает вид первой *Error в цепочке; для посторонних ошибок - KindExtraction,
// так как любая неклассифицированная ошибка внутри обработки площадки считается ошибкой извлечения.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindExtraction
}

// TraceOf возвращает трассировку первой *Error в цепочке или пустую строку.
func TraceOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Trace()
	}
	return ""
}
