// Package app связывает разбор аргументов, запрос поиска и вывод результатов.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"spotsearch/formatter"
	"spotsearch/internal/gateway/spotify"

	"go.uber.org/zap"
)

// Сообщения для ожидаемых исходов запроса
const (
	MsgNeedNewToken  = "Need to grab a new token"
	MsgShapeMismatch = "Hm, the response didn't match the shape we expected."
)

// App выполняет один поиск и печатает результат
type App struct {
	searcher spotify.Interface
	stdout   io.Writer
	logger   *zap.Logger
}

// New создает приложение
func New(searcher spotify.Interface, stdout io.Writer, logger *zap.Logger) *App {
	if logger == nil {
		panic("Logger cannot be nil")
	}
	return &App{
		searcher: searcher,
		stdout:   stdout,
		logger:   logger,
	}
}

// Run выполняет поиск. Успешный ответ, отклоненный токен и несовпадение
// структуры ответа завершаются без ошибки. Любая возвращенная ошибка фатальна.
func (a *App) Run(ctx context.Context, query, token string) error {
	tracks, err := a.searcher.Search(ctx, query, token)
	switch {
	case err == nil:
		a.logger.Debug("Printing search results", zap.Int("tracks", len(tracks)))
		return formatter.PrintTracks(a.stdout, tracks)

	case errors.Is(err, spotify.ErrUnauthorized):
		return a.println(MsgNeedNewToken)

	case errors.Is(err, spotify.ErrShapeMismatch):
		a.logger.Debug("Search response rejected", zap.Error(err))
		return a.println(MsgShapeMismatch)

	default:
		return err
	}
}

func (a *App) println(msg string) error {
	if _, err := fmt.Fprintln(a.stdout, msg); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
