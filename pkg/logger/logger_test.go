package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" WARNING "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelInfo, Format: "json"})

	log.With(Component("tracker")).Info("subject added", RecordID("r1"), RecordCount(3))
	log.Debug("dropped below level")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "subject added", entry["msg"])
	assert.Equal(t, "tracker", entry["component"])
	assert.Equal(t, "r1", entry["record_id"])
	assert.EqualValues(t, 3, entry["records"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewFromZap_Observer(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := NewFromZap(zap.New(core))

	log.Info("ignored")
	log.Warn("write failed", Err(errors.New("disk full")), Backend("file"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "write failed", entry.Message)
	assert.Equal(t, "disk full", entry.ContextMap()["error"])
	assert.Equal(t, "file", entry.ContextMap()["backend"])
}

func TestContextPropagation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewFromZap(zap.New(core))

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("from context")
	FromContext(context.Background()).Info("nop")

	assert.Equal(t, 1, logs.FilterMessage("from context").Len())
	assert.Equal(t, 1, logs.Len())
}
