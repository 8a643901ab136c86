package split

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitio/go-toolkit/v5/logging"
)

// SlogToSplitAdapter routes Split SDK log output into a *slog.Logger.
//
// Split's levels map to slog as Error→Error, Warning→Warn, Info→Info,
// Debug→Debug and Verbose→Debug. New installs one automatically in SDK key
// mode; build one yourself with NewSplitLogger when constructing the Split
// client outside the provider.
type SlogToSplitAdapter struct {
	logger *slog.Logger
}

var _ logging.LoggerInterface = (*SlogToSplitAdapter)(nil)

// NewSplitLogger creates a Split SDK logger adapter from a slog.Logger.
//
//	cfg := conf.Default()
//	cfg.Logger = split.NewSplitLogger(logger)
//	factory, _ := client.NewSplitFactory(sdkKey, cfg)
//	provider, _ := split.NewWithClient(factory.Client(), split.WithLogger(logger))
//
// If logger is nil, slog.Default() is used. Records are tagged with
// "source"="split-sdk".
func NewSplitLogger(logger *slog.Logger) *SlogToSplitAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogToSplitAdapter{logger: logger.With("source", "split-sdk")}
}

// Error logs at error level.
func (a *SlogToSplitAdapter) Error(msg ...any) {
	a.log(slog.LevelError, msg...)
}

// Warning logs at warn level.
func (a *SlogToSplitAdapter) Warning(msg ...any) {
	a.log(slog.LevelWarn, msg...)
}

// Info logs at info level.
func (a *SlogToSplitAdapter) Info(msg ...any) {
	a.log(slog.LevelInfo, msg...)
}

// Debug logs at debug level.
func (a *SlogToSplitAdapter) Debug(msg ...any) {
	a.log(slog.LevelDebug, msg...)
}

// Verbose logs at debug level; slog has nothing finer.
func (a *SlogToSplitAdapter) Verbose(msg ...any) {
	a.log(slog.LevelDebug, msg...)
}

// log formats one SDK call. The first argument is the message. The rest is
// logged as slog attributes when it is a list of string-keyed pairs, and as a
// single "details" attribute otherwise.
func (a *SlogToSplitAdapter) log(level slog.Level, msg ...any) {
	ctx := context.Background()
	if !a.logger.Enabled(ctx, level) {
		return
	}

	switch len(msg) {
	case 0:
		a.logger.Log(ctx, level, "")
	case 1:
		a.logger.Log(ctx, level, fmt.Sprint(msg[0]))
	default:
		rest := msg[1:]
		if isKeyValueList(rest) {
			a.logger.Log(ctx, level, fmt.Sprint(msg[0]), rest...)
			return
		}
		a.logger.Log(ctx, level, fmt.Sprint(msg[0]), "details", rest)
	}
}

func isKeyValueList(args []any) bool {
	if len(args)%2 != 0 {
		return false
	}
	for i := 0; i < len(args); i += 2 {
		if _, ok := args[i].(string); !ok {
			return false
		}
	}
	return true
}
