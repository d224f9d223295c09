package logger

import (
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedCore() (zapcore.Core, func() []observer.LoggedEntry) {
	core, obs := observer.New(zapcore.DebugLevel)
	return core, obs.AllUntimed
}
