package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/loan-calculator/internal/version"
	"github.com/iwvelando/loan-calculator/pkg/analytics"
	"github.com/iwvelando/loan-calculator/pkg/banks"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/export"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/query"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/index.html
var staticFiles embed.FS

// trackTimeout bounds how long a request waits on the tracker.
const trackTimeout = 500 * time.Millisecond

type handler struct {
	logger  *zap.Logger
	config  *Config
	tracker analytics.Tracker
	counter analytics.Counter
	page    []byte
}

// Option customizes the handler built by NewHandler.
type Option func(*handler)

// WithTracker records button clicks with t.
func WithTracker(t analytics.Tracker) Option {
	return func(h *handler) {
		if t != nil {
			h.tracker = t
		}
	}
}

// WithCounter enables GET /api/stats backed by c.
func WithCounter(c analytics.Counter) Option {
	return func(h *handler) {
		h.counter = c
	}
}

// NewHandler constructs the HTTP handler that serves the calculator page and API.
func NewHandler(logger *zap.Logger, cfg *Config, opts ...Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		panic(fmt.Sprintf("failed to read embedded page: %v", err))
	}

	h := &handler{
		logger:  logger,
		config:  cfg,
		tracker: analytics.Nop{},
		page:    page,
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleRoot)
	r.Get(cfg.SharePath, h.handlePage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/calculate", h.handleCalculate)
		r.Get("/export/{format}", h.handleExport)
		r.Get("/share", h.handleShare)
		r.Get("/banks", h.handleBanks)
		r.Get("/stats", h.handleStats)
		r.Get("/version", h.handleVersion)
	})

	return r
}

// handleRoot permanently redirects to the calculator page, keeping the query.
func (h *handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	target := h.config.SharePath
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusPermanentRedirect)
}

func (h *handler) handlePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(h.page); err != nil {
		h.logger.Warn("failed to write page",
			zap.String("op", "server.handlePage"),
			zap.Error(err),
		)
	}
}

type summaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type calculateResponse struct {
	Params   query.Params  `json:"params"`
	Input    *loans.Input  `json:"input"`
	Result   *loans.Result `json:"result"`
	Summary  []summaryLine `json:"summary,omitempty"`
	ShareURL string        `json:"shareUrl,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}

// handleCalculate computes a schedule from the query string. Input the
// calculator cannot use yields 200 with a null result. Pass auto=1 when the
// page calculates on load so the request is not counted as a click.
func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	params := query.ReadValues(r.URL.Query())
	in, ok, err := h.loanInput(params)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	resp := calculateResponse{
		Params:   params,
		Warnings: validation.LoanWarnings(params),
	}
	if ok {
		resp.Input = &in
		resp.Result = loans.Compute(in)
	}
	if resp.Result != nil {
		doc, err := export.NewDocument(in, resp.Result, params.Metadata())
		if err == nil {
			for _, line := range doc.Summary() {
				resp.Summary = append(resp.Summary, summaryLine{Label: line.Label, Value: line.Value})
			}
		}
		if params.Complete() {
			resp.ShareURL = params.ShareURL(h.baseURL(r), h.config.SharePath)
		}
	}

	h.logger.Debug("calculated schedule",
		zap.String("op", op),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Bool("has_result", resp.Result != nil),
	)

	if r.URL.Query().Get("auto") != "1" {
		h.track(r, analytics.ButtonCalculate, params)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

var exportButtons = map[string]string{
	constants.OutputFormatXLSX: analytics.ButtonDownloadExcel,
	constants.OutputFormatPNG:  analytics.ButtonDownloadImage,
	constants.OutputFormatPDF:  analytics.ButtonDownloadPDF,
	constants.OutputFormatCSV:  analytics.ButtonDownloadCSV,
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	format, err := export.Lookup(chi.URLParam(r, "format"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}

	params := query.ReadValues(r.URL.Query())
	in, ok, err := h.loanInput(params)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	var result *loans.Result
	if ok {
		result = loans.Compute(in)
	}

	doc, err := export.NewDocument(in, result, params.Metadata())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, "no result for the supplied inputs", op)
		return
	}

	var buf bytes.Buffer
	if err := format.Write(&buf, doc); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render %s: %v", format.Name, err), op)
		return
	}

	h.track(r, exportButtons[format.Name], params)

	w.Header().Set("Content-Type", format.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(doc, format.Extension)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write export",
			zap.String("op", op),
			zap.String("format", format.Name),
			zap.Error(err),
		)
	}
}

// handleShare returns the link that restores the form. All seven keys are
// required, matching what the page accepts on load.
func (h *handler) handleShare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleShare"

	params, ok := query.FromValues(r.URL.Query())
	if !ok {
		h.respondErrorWithOp(w, http.StatusBadRequest, "amount, rate, term, type, bank, banker and contact are all required", op)
		return
	}

	h.track(r, analytics.ButtonCopyLink, params)
	h.writeJSON(w, http.StatusOK, map[string]string{
		"url": params.ShareURL(h.baseURL(r), h.config.SharePath),
	})
}

func (h *handler) handleBanks(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"banks":          banks.All(),
		"referenceRates": banks.ReferenceRates(),
	})
}

// handleStats returns click counts for ?date=YYYY-MM-DD (default today, UTC).
func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleStats"

	if h.counter == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "statistics are not enabled", op)
		return
	}

	day := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", raw), op)
			return
		}
		day = parsed
	}

	counts, err := h.counter.Counts(r.Context(), day)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":   day.Format(time.DateOnly),
		"counts": counts,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, version.Get())
}

// loanInput converts params and enforces the configured term limit. The
// error is reserved for requests the server refuses outright.
func (h *handler) loanInput(params query.Params) (loans.Input, bool, error) {
	in, ok := params.LoanInput()
	if ok {
		if err := validation.CheckTermLimit(in, h.config.MaxTermMonths); err != nil {
			return loans.Input{}, false, err
		}
	}
	return in, ok, nil
}

func (h *handler) baseURL(r *http.Request) string {
	if h.config.PublicURL != "" {
		return h.config.PublicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host
}

// track records a click. Failures are logged and never affect the response.
func (h *handler) track(r *http.Request, button string, params query.Params) {
	event := analytics.NewButtonClick(button, map[string]string{
		constants.QueryAmount: query.Digits(params.Amount),
		constants.QueryTerm:   params.Term,
		constants.QueryType:   params.Type,
		constants.QueryBank:   params.Bank,
	})

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), trackTimeout)
	defer cancel()
	if err := h.tracker.Track(ctx, event); err != nil {
		h.logger.Warn("failed to track event",
			zap.String("op", "server.track"),
			zap.String("button_name", button),
			zap.Error(err),
		)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before writing the status, so an encoding failure
// still produces a complete error response.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	const op = "server.writeJSON"

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", op),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write JSON response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}
