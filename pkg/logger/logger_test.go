package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/natefinch/lumberjack.v2"
)

func newBufferLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	l, err := NewLogger(&Config{Level: DebugLevel, Format: "json", AppName: "staff", Version: "1.0.0"})
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	l, buf := newBufferLogger(t)
	child := l.WithField("a", 1)
	_ = child.WithField("b", 2)

	child.Info("hello")
	entry := decodeLine(t, buf)
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, float64(1), entry["a"])
	assert.NotContains(t, entry, "b")
	assert.Equal(t, "staff", entry["app"])
	assert.Equal(t, "1.0.0", entry["version"])
}

func TestWithContextAndError(t *testing.T) {
	l, buf := newBufferLogger(t)
	id := primitive.NewObjectID()
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, UserIDKey, id)

	l.WithContext(ctx).WithError(errors.New("boom")).Error("failed")
	entry := decodeLine(t, buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, id.Hex(), entry["user_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestLogAPIRequestLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{200, "info"},
		{404, "warning"},
		{503, "error"},
	}
	for _, tc := range tests {
		l, buf := newBufferLogger(t)
		l.LogAPIRequest("GET", "/api/staff/bookings", tc.status, 0, nil)
		assert.Equal(t, tc.level, decodeLine(t, buf)["level"])
	}
}

func TestOutputForFileUsesRotation(t *testing.T) {
	w := outputFor(&Config{Output: t.TempDir() + "/staff.log", MaxBackups: 2})
	rotating, ok := w.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, 100, rotating.MaxSize)
	assert.Equal(t, 2, rotating.MaxBackups)
}
