package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"spotsearch/internal/gateway/spotify"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Коды завершения процесса
const (
	ExitOK    = 0
	ExitUsage = 1
	ExitFatal = 2
)

// Usage печатается в stderr при неверном числе аргументов
const Usage = "WRONG USAGE   Usage: spotsearch <search query> <auth token>"

// ErrUsage возвращается при неверном числе аргументов
var ErrUsage = errors.New("wrong usage")

// RunFunc выполняет поиск по разобранным аргументам
type RunFunc func(ctx context.Context, query, token string) error

// endOfCommands ставится перед аргументами, чтобы cobra не искала среди них
// имена подкоманд (__complete, completion, help)
const endOfCommands = "--"

// NewRootCommand создает корневую команду. Разбор флагов отключен,
// поэтому запрос вида "-live" передается как есть.
func NewRootCommand(run RunFunc) *cobra.Command {
	return &cobra.Command{
		Use:                "spotsearch <search query> <auth token>",
		Short:              "Search Spotify tracks and print name, album, artists and link",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, positional(args)); err != nil {
				return fmt.Errorf("%w: %v", ErrUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			args = positional(args)
			return run(cmd.Context(), args[0], args[1])
		},
	}
}

// positional убирает маркер, добавленный Execute
func positional(args []string) []string {
	if len(args) > 0 && args[0] == endOfCommands {
		return args[1:]
	}
	return args
}

// Execute разбирает аргументы, выполняет поиск и возвращает код завершения
func Execute(ctx context.Context, args []string, run RunFunc, stderr io.Writer, logger *zap.Logger) int {
	// Аргументы никогда не nil, иначе cobra подставит os.Args
	cmd := NewRootCommand(run)
	cmd.SetArgs(append([]string{endOfCommands}, args...))
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK

	case errors.Is(err, ErrUsage):
		fmt.Fprintln(stderr, Usage)
		return ExitUsage

	default:
		fields := []zap.Field{zap.Error(err)}
		var statusErr *spotify.UnexpectedStatusError
		if errors.As(err, &statusErr) {
			fields = append(fields, zap.Int("status", statusErr.StatusCode))
		}
		logger.Error("Search failed", fields...)
		fmt.Fprintf(stderr, "Uh oh! Something unexpected happened: %v\n", err)
		return ExitFatal
	}
}
