package world

import "sync/atomic"

// debugLoggingEnabled guards per-tick debug logs of the scene.
// Set via EnableDebugLogging() from main after parsing config.LogLevel.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables per-tick debug logging.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if per-tick debug logging is enabled.
//
//	if world.IsDebugEnabled() {
//	    slog.Debug("tick", "minions", len(minions))
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
