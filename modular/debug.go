package modular

import "log/slog"

// DebugSink receives bot debug lines tagged with the owner string.
type DebugSink interface {
	Debug(player, message string)
}

// LogSink writes debug lines to the default slog logger.
type LogSink struct{}

func (LogSink) Debug(player, message string) {
	slog.Debug("bot debug", "player", player, "msg", message)
}

// Sinks fans a debug line out to several sinks.
type Sinks []DebugSink

func (s Sinks) Debug(player, message string) {
	for _, sink := range s {
		if sink != nil {
			sink.Debug(player, message)
		}
	}
}
