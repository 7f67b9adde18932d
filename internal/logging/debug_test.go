package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTopics(t *testing.T) {
	topics := parseTopics("strategy, engine ,")
	assert.Equal(t, map[string]bool{"strategy": true, "engine": true}, topics)

	assert.Empty(t, parseTopics(""))
	assert.Equal(t, map[string]bool{"*": true}, parseTopics("all"))
}

func TestLogger_TopicGating(t *testing.T) {
	enabledTopics = map[string]bool{"risk": true}

	assert.True(t, New("risk").Enabled(), "Logger for enabled topic should be enabled")
	assert.False(t, New("engine").Enabled(), "Logger for disabled topic should be disabled")
}

func TestLogger_WildcardEnablesEverything(t *testing.T) {
	enabledTopics = map[string]bool{"*": true}

	assert.True(t, New("strategy").Enabled())
	assert.True(t, New("anything").Enabled())
}

func TestLogger_DisabledByDefault(t *testing.T) {
	enabledTopics = map[string]bool{}

	assert.False(t, New("engine").Enabled())
}

func BenchmarkLogger_Disabled(b *testing.B) {
	// The fast path must stay a single bool check.
	enabledTopics = map[string]bool{}
	log := New("benchmark")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Debug("test message", "key", "value", "number", 42)
	}
}
