package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/catalog/pkg/logger"
)

func TestNewWithWriter_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("production", &buf)
	log.Info("hello", "k", "v")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestNewWithWriter_LocalIsTextAndDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("local", &buf)
	log.Debug("dbg")

	assert.Contains(t, buf.String(), "msg=dbg")
}

func TestWithCtx(t *testing.T) {
	assert.Same(t, slog.Default(), logger.WithCtx(context.Background()))

	reqLog := logger.Discard().With("request_id", "abc")
	ctx := logger.InjectLogger(context.Background(), reqLog)
	assert.Same(t, reqLog, logger.WithCtx(ctx))
}
