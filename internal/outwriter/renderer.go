package outwriter

import (
	"sync"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
)

// TermRenderer renders chart series to the terminal. Each render produces a
// handle; sessions must close a view's previous handle before replacing it.
type TermRenderer struct {
	cfg *contract.Config
}

var _ contract.Renderer = &TermRenderer{} // Compile-time check

// NewTermRenderer creates a renderer bound to the output configuration.
func NewTermRenderer(cfg *contract.Config) *TermRenderer {
	return &TermRenderer{cfg: cfg}
}

// RenderSeries draws a chart series and returns a handle to the live render.
func (r *TermRenderer) RenderSeries(series schema.ChartSeries, kind schema.ChartKind) (contract.RenderHandle, error) {
	var err error
	if series.Metric == schema.MetricLanguages {
		err = PrintLanguageResults(series, r.cfg)
	} else {
		err = PrintSeriesResults(series, r.cfg, kind)
	}
	if err != nil {
		return nil, err
	}
	return &termRenderHandle{}, nil
}

// termRenderHandle is a live terminal render. Terminal output cannot be
// retracted, so closing only marks the handle as released.
type termRenderHandle struct {
	mu     sync.Mutex
	closed bool
}

func (h *termRenderHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}
