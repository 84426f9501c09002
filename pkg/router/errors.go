package router

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifica os erros expostos ao cliente.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindBadRequest
	KindMethodNotAllowed
)

// Error é um erro com status HTTP associado.
type Error struct {
	Kind    Kind
	Message string
	// Allow lista os métodos aceitos quando Kind é KindMethodNotAllowed.
	Allow []string
}

// Sentinelas para comparação com errors.Is.
var (
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrBadRequest       = &Error{Kind: KindBadRequest, Message: "bad request"}
	ErrMethodNotAllowed = &Error{Kind: KindMethodNotAllowed, Message: "method not allowed"}
)

func (e *Error) Error() string {
	return e.Message
}

// Is compara apenas o Kind, de modo que errors.Is(err, ErrNotFound) funcione
// para qualquer mensagem.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NotFound cria um erro 404 com a mensagem formatada.
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BadRequest cria um erro 400 com a mensagem formatada.
func BadRequest(format string, args ...interface{}) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// StatusCode mapeia um erro para o status HTTP. Erros desconhecidos viram 500.
func StatusCode(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
