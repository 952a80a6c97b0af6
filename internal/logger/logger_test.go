package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func reset(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	SetOutput(&buf)
	return &buf
}

func TestSetVerbose(t *testing.T) {
	reset(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("test message %s", "arg") }, "[DEBUG] test message arg\n"},
		{"info", func() { Info("info message %d", 42) }, "[INFO] info message 42\n"},
		{"warn", func() { Warn("warning message") }, "[WARN] warning message\n"},
		{"section", func() { Section("Test Section") }, "\n=== Test Section ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := reset(t)
			SetVerbose(true)

			tt.log()

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := reset(t)
	SetVerbose(false)

	Debug("test message")
	Section("hidden")
	L().Info("structured", zap.Int("count", 3))

	assert.Zero(t, buf.Len())
}

func TestL_StructuredFields(t *testing.T) {
	buf := reset(t)
	SetVerbose(true)

	L().Info("ingested", zap.Int("entities", 3))

	assert.Equal(t, "[INFO] ingested {\"entities\": 3}\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	reset(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()
}
