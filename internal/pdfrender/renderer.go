package pdfrender

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/config"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const defaultPoolSize = 4

// Renderer drives one headless Chromium shared by all requests. Pages
// are pooled so a render never pays the cold-launch cost.
type Renderer struct {
	store   *TemplateStore
	browser *rod.Browser
	pool    rod.Pool[rod.Page]
	timeout time.Duration
	logg    *logger.Logger
}

// NewRenderer launches the browser and prepares the page pool.
func NewRenderer(store *TemplateStore, cfg config.PDFConfig, logg *logger.Logger) (*Renderer, error) {
	if store == nil {
		return nil, fmt.Errorf("template store required")
	}
	poolSize := cfg.PagePoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	timeout := cfg.RenderTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("launching chromium: %w", err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to chromium: %w", err)
	}

	return &Renderer{
		store:   store,
		browser: browser,
		pool:    rod.NewPagePool(poolSize),
		timeout: timeout,
		logg:    logg,
	}, nil
}

// Render produces the PDF bytes for an allow-listed template name.
func (r *Renderer) Render(ctx context.Context, fileName string) ([]byte, error) {
	html, err := r.store.HTML(fileName)
	if err != nil {
		return nil, err
	}

	renderCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := r.pool.Get(func() (*rod.Page, error) {
		return r.browser.Page(proto.TargetCreateTarget{})
	})
	if err != nil {
		return nil, fmt.Errorf("acquiring page: %w", err)
	}
	defer r.pool.Put(page)

	bound := page.Context(renderCtx)
	if err := bound.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("loading template %s: %w", fileName, err)
	}
	if err := bound.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for template %s: %w", fileName, err)
	}

	stream, err := bound.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("printing template %s: %w", fileName, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading pdf stream: %w", err)
	}
	return data, nil
}

// Close shuts the shared browser down.
func (r *Renderer) Close() error {
	return r.browser.Close()
}
