package currency

import (
	"context"
	"sync/atomic"

	"github.com/randomseed-io/bankster-sub000/log"
)

// warnSink holds the injectable sink for registry inconsistency warnings.
// A nil holder or logger disables the channel.
var warnSink atomic.Pointer[warnHolder]

type warnHolder struct {
	logger log.Logger
}

// SetWarningSink installs a logger receiving registry inconsistency
// warnings and returns the previous one. Passing nil disables the channel.
//
//nolint:ireturn
func SetWarningSink(logger log.Logger) log.Logger {
	prev := warnSink.Swap(&warnHolder{logger: logger})
	if prev == nil {
		return nil
	}

	return prev.logger
}

// WarningsEnabled reports whether an inconsistency warning sink is installed.
func WarningsEnabled() bool {
	holder := warnSink.Load()
	return holder != nil && holder.logger != nil
}

// warn emits a best-effort inconsistency warning. The sink must never throw
// into the caller: a panicking sink is swallowed.
func warn(msg string, fields ...log.Field) {
	holder := warnSink.Load()
	if holder == nil || holder.logger == nil {
		return
	}

	defer func() {
		_ = recover()
	}()

	holder.logger.Log(context.Background(), log.LevelWarn, msg, fields...)
}
