package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Engine 基于无头浏览器的文档光栅化引擎。
// 浏览器进程在服务启动时拉起一次并常驻，每次渲染开独立标签页。
type Engine struct {
	browserCtx context.Context
	cancel     context.CancelFunc
	timeout    time.Duration
}

// NewEngine 启动浏览器引擎，timeout 是单次渲染的超时上限
func NewEngine(timeout time.Duration) (*Engine, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
	)

	allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start browser engine: %w", err)
	}

	return &Engine{
		browserCtx: browserCtx,
		cancel:     cancel,
		timeout:    timeout,
	}, nil
}

// RenderPDF 将 HTML 文档光栅化为 A4 PDF。
// 单次尝试，超时或失败直接返回错误，由调用方决定如何上报。
func (e *Engine) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(e.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, e.timeout)
	defer cancelTimeout()

	// 标签页派生自常驻浏览器而不是请求上下文，请求取消时要主动拆掉标签页
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var buf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to print document to pdf: %w", err)
	}
	return buf, nil
}

// Close 关闭浏览器进程
func (e *Engine) Close() {
	e.cancel()
}
