package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	appctx "storeadmin/internal/core/context"
)

func observed(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &Logger{zap.New(core).Sugar()}, logs
}

func TestFromContext_AddsTraceAndUser(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)

	ctx := appctx.WithTrace(context.Background(), appctx.NewTraceContext("req-1", "trace-1"))
	ctx = appctx.WithUser(ctx, &appctx.UserContext{UserName: "ana", Role: appctx.RoleEmployee})
	ctx = WithLogger(ctx, log)

	FromContext(ctx).WithComponent("upstream").With("path", "sale").Debugw("backend request")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "trace-1", fields["trace_id"])
	assert.Equal(t, "ana", fields["user"])
	assert.Equal(t, appctx.RoleEmployee, fields["role"])
	assert.Equal(t, "upstream", fields["component"])
	assert.Equal(t, "sale", fields["path"])
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	log, logs := observed(zapcore.InfoLevel)
	SetDefault(log)

	Info(context.Background(), "no context logger")
	Debug(context.Background(), "below level")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "no context logger", logs.All()[0].Message)
}
