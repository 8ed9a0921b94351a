package logger

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
)

const infoLevel int8 = 0

func TestGetReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1 := Get(infoLevel)
	if logger1 == nil {
		t.Fatal("Get should return a non-nil logger")
	}
	logger2 := Get(infoLevel)
	if logger1 != logger2 {
		t.Error("Get should return the same logger instance on subsequent calls")
	}
}

func TestWithLoggerAddsLoggerToContext(t *testing.T) {
	logger := Get(infoLevel)
	ctx := WithLogger(context.Background(), logger)

	if got := ctx.Value(loggerContextKey{}); got != logger {
		t.Error("WithLogger should store the provided logger in context")
	}
}

func TestWithLoggerReturnsSameContextIfLoggerAlreadySet(t *testing.T) {
	logger := Get(infoLevel)
	ctx := context.WithValue(context.Background(), loggerContextKey{}, logger)

	if WithLogger(ctx, logger) != ctx {
		t.Error("WithLogger should return the same context if logger is already set and matches")
	}
}

func TestWithLoggerReplacesLoggerIfDifferent(t *testing.T) {
	logger1 := Get(infoLevel)
	logger2 := logr.Discard()
	ctx := context.WithValue(context.Background(), loggerContextKey{}, logger1)

	result := WithLogger(ctx, &logger2)
	if got := result.Value(loggerContextKey{}); got != &logger2 {
		t.Error("WithLogger should replace logger in context if different")
	}
}

func TestFromContextPrefersContextLogger(t *testing.T) {
	logger := Get(infoLevel)
	ctx := context.WithValue(context.Background(), loggerContextKey{}, logger)

	if FromContext(ctx) != logger {
		t.Error("FromContext should return the logger stored in context")
	}
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	globalLogger := Get(infoLevel)
	if FromContext(context.Background()) != globalLogger {
		t.Error("FromContext should return the global logger if none in context")
	}
}

func TestFromContextFallsBackToNoop(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	if FromContext(context.Background()) != &defaultNoopLogger {
		t.Error("FromContext should return defaultNoopLogger if no logger is set")
	}
}

func TestSyncDoesNotPanicWhenGlobalZapLoggerIsNil(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sync should not panic when globalZapLogger is nil, got: %v", r)
		}
	}()
	Sync()
}

func TestGetGlobalLoggerFallsBackToNoop(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	if GetGlobalLogger() != &defaultNoopLogger {
		t.Error("GetGlobalLogger should return defaultNoopLogger when globalLogrLogger is nil")
	}
}

func TestGetNoopLoggerIsNoop(t *testing.T) {
	logger := GetNoopLogger()
	if logger != &defaultNoopLogger {
		t.Fatal("GetNoopLogger should return defaultNoopLogger")
	}
	logger.Info("this should do nothing")
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	logger := Get(infoLevel)
	newLogger := WithValues(logger, "key", "value")
	if newLogger == nil {
		t.Fatal("WithValues should return a non-nil logger")
	}
	if newLogger == logger {
		t.Error("WithValues should return a new logger instance, not the original")
	}
}
