package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderPDFRejectsCancelledContext(t *testing.T) {
	// 不经过浏览器，已取消的请求在进入标签页之前就应返回
	e := &Engine{
		browserCtx: context.Background(),
		cancel:     func() {},
		timeout:    time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.RenderPDF(ctx, "<html></html>")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderPDFRejectsExpiredDeadline(t *testing.T) {
	e := &Engine{
		browserCtx: context.Background(),
		cancel:     func() {},
		timeout:    time.Second,
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := e.RenderPDF(ctx, "<html></html>")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
