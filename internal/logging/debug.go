package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Logger gates debug output behind a named topic so a single noisy
// component (strategy, risk, engine, feed) can be inspected without
// drowning in everything else.
//
// Topics are selected via the DEBUG_TOPICS env var, for example
// DEBUG_TOPICS=strategy,engine. The value "all" enables every topic.
type Logger struct {
	topic   string
	enabled bool
}

var enabledTopics = parseTopics(os.Getenv("DEBUG_TOPICS"))

func parseTopics(raw string) map[string]bool {
	topics := make(map[string]bool)
	if raw == "" {
		return topics
	}

	if raw == "all" {
		topics["*"] = true
	} else {
		for _, topic := range strings.Split(raw, ",") {
			if topic = strings.TrimSpace(topic); topic != "" {
				topics[topic] = true
			}
		}
	}

	if len(topics) > 0 {
		// Any enabled topic drops slog's default level to DEBUG,
		// otherwise the gated lines would be filtered anyway.
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		slog.SetDefault(slog.New(handler))
	}
	return topics
}

// New creates a logger for the given topic.
// Usage: var engineLog = logging.New("engine")
func New(topic string) *Logger {
	return &Logger{
		topic:   topic,
		enabled: enabledTopics["*"] || enabledTopics[topic],
	}
}

// Enabled reports whether this topic is active. Useful to skip
// expensive argument construction.
func (l *Logger) Enabled() bool {
	return l.enabled
}

func (l *Logger) Debug(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Debug(msg, l.withTopic(args)...)
}

func (l *Logger) Info(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Info(msg, l.withTopic(args)...)
}

func (l *Logger) Warn(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Warn(msg, l.withTopic(args)...)
}

func (l *Logger) withTopic(args []any) []any {
	return append([]any{"topic", l.topic}, args...)
}
