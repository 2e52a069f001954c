package logging

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// newTestLogger returns a JSON logger writing into a buffer for inspection.
func newTestLogger(t *testing.T) (Logger, *zaptest.Buffer) {
	t.Helper()
	buf := &zaptest.Buffer{}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), buf, zapcore.DebugLevel)
	return &zapLogger{z: zap.New(core)}, buf
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"  Error  ", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "info", LevelInfo.String())
}

func TestNewLogger_JSONFormat(t *testing.T) {
	l, err := NewLogger(LogConfig{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{"stderr"},
	})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	l, err := NewLogger(LogConfig{
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewLogger_DefaultsApplied(t *testing.T) {
	// A zero config must still produce a working logger.
	l, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewLogger_UnknownLevelDegradesToInfo(t *testing.T) {
	l, err := NewLogger(LogConfig{Level: "shout"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestZapLogger_LevelsWriteEntries(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Debug("debug msg")
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg")

	out := buf.String()
	assert.Contains(t, out, "debug msg")
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, "info msg")
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, "warn msg")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "error msg")
	assert.Contains(t, out, `"level":"error"`)
}

func TestZapLogger_With_AddsFields(t *testing.T) {
	l, buf := newTestLogger(t)
	l.With(String("conformation", "RLRLRL"), Float64("theta", 12.5)).Info("msg")

	out := buf.String()
	assert.Contains(t, out, `"conformation":"RLRLRL"`)
	assert.Contains(t, out, `"theta":12.5`)
}

func TestZapLogger_TypedFields(t *testing.T) {
	l, buf := newTestLogger(t)
	l.Info("msg",
		Int("units", 8),
		Int64("rows", 91),
		Bool("closed", true),
		Duration("elapsed", 1500*time.Millisecond),
		Any("extra", []int{1, 2}),
	)

	out := buf.String()
	assert.Contains(t, out, `"units":8`)
	assert.Contains(t, out, `"rows":91`)
	assert.Contains(t, out, `"closed":true`)
	assert.Contains(t, out, `"elapsed":1.5`)
	assert.Contains(t, out, `"extra":[1,2]`)
}

func TestZapLogger_Named(t *testing.T) {
	l, buf := newTestLogger(t)
	l.Named("sweep").Info("msg")
	assert.Contains(t, buf.String(), `"logger":"sweep"`)
}

func TestZapLogger_WithError_AppError(t *testing.T) {
	l, buf := newTestLogger(t)
	appErr := errors.New(errors.ErrCodeThetaOutOfRange, "theta must lie in [0, 90]")
	l.WithError(appErr).Error("msg")

	out := buf.String()
	assert.Contains(t, out, `"error_code":"GEO_001"`)
	assert.Contains(t, out, "[GEO_001] theta must lie in [0, 90]")
}

func TestZapLogger_WithError_StandardError(t *testing.T) {
	l, buf := newTestLogger(t)
	l.WithError(stderrors.New("plain failure")).Error("msg")

	out := buf.String()
	assert.Contains(t, out, `"error":"plain failure"`)
	assert.NotContains(t, out, "error_code")
}

func TestZapLogger_WithError_Nil(t *testing.T) {
	l, buf := newTestLogger(t)
	l.WithError(nil).Info("msg")
	assert.NotContains(t, buf.String(), `"error"`)
}

func TestZapLogger_WithContext_AttachesRunID(t *testing.T) {
	l, buf := newTestLogger(t)
	ctx := WithRunID(context.Background(), "run-42")
	l.WithContext(ctx).Info("msg")
	assert.Contains(t, buf.String(), `"run_id":"run-42"`)
}

func TestZapLogger_WithContext_NoRunID(t *testing.T) {
	l, buf := newTestLogger(t)
	l.WithContext(context.Background()).Info("msg")
	assert.NotContains(t, buf.String(), "run_id")
}

func TestRunIDFromContext(t *testing.T) {
	_, ok := RunIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := RunIDFromContext(WithRunID(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = RunIDFromContext(WithRunID(context.Background(), ""))
	assert.False(t, ok)
}

func TestErrField_Nil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestLogOperationDuration(t *testing.T) {
	l, buf := newTestLogger(t)
	LogOperationDuration(l, "theta sweep", time.Now())

	out := buf.String()
	assert.Contains(t, out, "operation completed")
	assert.Contains(t, out, `"operation":"theta sweep"`)
	assert.Contains(t, out, "duration_ms")
}

func TestNopLogger_AllMethodsNoOp(t *testing.T) {
	l := NewNopLogger()
	l.Debug("msg")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	l.Fatal("msg")
	assert.NoError(t, l.Sync())
}

func TestNopLogger_DerivedLoggersAreSelf(t *testing.T) {
	l := NewNopLogger()
	assert.Equal(t, l, l.With(String("k", "v")))
	assert.Equal(t, l, l.WithError(stderrors.New("err")))
	assert.Equal(t, l, l.WithContext(context.Background()))
	assert.Equal(t, l, l.Named("sub"))
}

func TestSetDefault_ReplacesAndIgnoresNil(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	l := NewNopLogger()
	SetDefault(l)
	assert.Equal(t, l, Default())

	SetDefault(nil)
	assert.Equal(t, l, Default())
}

func TestNewLoggerFromCore(t *testing.T) {
	buf := &zaptest.Buffer{}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		buf,
		zapcore.InfoLevel,
	)
	l := NewLoggerFromCore(core)
	l.Info("from core")
	assert.Contains(t, buf.String(), "from core")
}
