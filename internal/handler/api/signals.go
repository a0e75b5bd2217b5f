package api

import (
	"time"

	domrepo "TradePulse/internal/domain/repository"
	"TradePulse/internal/services/strategies"
	"TradePulse/internal/usecase"
	xhttp "TradePulse/pkg/http"
	xlogger "TradePulse/pkg/logger"
	"TradePulse/pkg/util"

	"github.com/labstack/echo/v4"
)

// SignalsHandler serves the strategy catalog and scan endpoints.
type SignalsHandler struct {
	logger  *xlogger.Logger
	scan    *usecase.SignalScanUseCase
	ticks   *usecase.TickProcessor
	candles domrepo.CandleStore
	symbols []string
}

func NewSignalsHandler(logger *xlogger.Logger, scan *usecase.SignalScanUseCase, ticks *usecase.TickProcessor, candles domrepo.CandleStore, symbols []string) *SignalsHandler {
	return &SignalsHandler{logger: logger, scan: scan, ticks: ticks, candles: candles, symbols: symbols}
}

func (h *SignalsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/strategies", h.Strategies)
	g.GET("/signals/:symbol", h.Signals)
	g.GET("/consensus/:symbol", h.Consensus)
	g.GET("/scan", h.Scan)
	g.GET("/price/:symbol", h.Price)
	g.GET("/candles/:symbol", h.Candles)
}

type scanRequest struct {
	Symbol    string `param:"symbol" validate:"required"`
	Timeframe string `query:"tf"`
}

// strategyInfo describes one catalog entry.
type strategyInfo struct {
	Name     string `json:"name"`
	MinBars  int    `json:"minBars"`
	Requires string `json:"requires,omitempty"`
}

// Strategies lists the full catalog in its frozen order.
func (h *SignalsHandler) Strategies(c echo.Context) error {
	out := make([]strategyInfo, 0, strategies.Count)
	for _, d := range strategies.Catalog() {
		out = append(out, strategyInfo{Name: d.Name, MinBars: d.MinBars, Requires: d.Requires})
	}
	return xhttp.OK(c, out)
}

// Signals returns the per-strategy breakdown plus the consensus for one symbol.
func (h *SignalsHandler) Signals(c echo.Context) error {
	req := &scanRequest{}
	if err := xhttp.BindAndValidate(c, req); err != nil {
		return xhttp.FailFromError(c, err)
	}
	tf := domrepo.NormalizeTimeframe(req.Timeframe)

	res, err := h.scan.Scan(c.Request().Context(), req.Symbol, tf)
	if err != nil {
		h.logger.Error("scan failed", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.FailFromError(c, xhttp.Upstream("scan failed", err))
	}
	return xhttp.OK(c, res)
}

// Consensus returns only the consensus signal for one symbol.
func (h *SignalsHandler) Consensus(c echo.Context) error {
	req := &scanRequest{}
	if err := xhttp.BindAndValidate(c, req); err != nil {
		return xhttp.FailFromError(c, err)
	}
	tf := domrepo.NormalizeTimeframe(req.Timeframe)

	res, err := h.scan.Scan(c.Request().Context(), req.Symbol, tf)
	if err != nil {
		h.logger.Error("consensus scan failed", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.FailFromError(c, xhttp.Upstream("scan failed", err))
	}
	return xhttp.OK(c, res.Consensus)
}

// Scan evaluates every configured symbol concurrently.
func (h *SignalsHandler) Scan(c echo.Context) error {
	tf := domrepo.NormalizeTimeframe(c.QueryParam("tf"))

	res := h.scan.ScanSymbols(c.Request().Context(), h.symbols, tf)
	return xhttp.OK(c, res)
}

// Candles serves stored OHLCV history for one symbol. from/to accept
// RFC3339 or unix seconds; the range is aligned to timeframe buckets.
func (h *SignalsHandler) Candles(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return xhttp.FailFromError(c, xhttp.BadRequest("symbol required"))
	}
	tf := domrepo.NormalizeTimeframe(c.QueryParam("tf"))

	now := time.Now().UTC()
	from := util.ParseTimeDefault(c.QueryParam("from"), now.Add(-24*time.Hour))
	to := util.ParseTimeDefault(c.QueryParam("to"), now)
	from, to = util.AlignRange(from, to, string(tf))

	candles, err := h.candles.GetCandles(c.Request().Context(), symbol, from, to, tf)
	if err != nil {
		h.logger.Error("candle query failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.FailFromError(c, xhttp.Internal("candle query failed", err))
	}
	return xhttp.OK(c, candles)
}

// Price serves the most recent live tick for one symbol.
func (h *SignalsHandler) Price(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return xhttp.FailFromError(c, xhttp.BadRequest("symbol required"))
	}

	tick, err := h.ticks.LatestTick(c.Request().Context(), symbol)
	if err != nil {
		return xhttp.FailFromError(c, xhttp.NotFound("no recent tick for "+symbol))
	}
	return xhttp.OK(c, tick)
}
