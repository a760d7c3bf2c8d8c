package spotify

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized возвращается при ответе 401: токен недействителен или истек
	ErrUnauthorized = errors.New("spotify rejected the access token")

	// ErrShapeMismatch возвращается, когда тело ответа 200 не совпадает с ожидаемой структурой
	ErrShapeMismatch = errors.New("response did not match the expected shape")
)

// UnexpectedStatusError описывает ответ с необработанным статусом
type UnexpectedStatusError struct {
	StatusCode int
	Status     string
	// APIMessage содержит error.message из тела ответа, если его удалось разобрать
	APIMessage string
}

func (e *UnexpectedStatusError) Error() string {
	if e.APIMessage != "" {
		return fmt.Sprintf("unexpected status %s: %s", e.Status, e.APIMessage)
	}
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// TransportError означает, что запрос не дошел до получения статуса
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("spotify request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
