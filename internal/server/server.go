package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/datetime"
	"github.com/iwvelando/mortgage-estimator/pkg/mortgage"
	"github.com/iwvelando/mortgage-estimator/pkg/output"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configure the API handler.
type Options struct {
	Estimator      mortgage.Options
	MaxBodySize    int64
	CurrencySymbol string
	Version        string
	// Now supplies the default as-of date. Defaults to time.Now.
	Now func() time.Time
}

type handler struct {
	logger      *zap.Logger
	estimator   *mortgage.Estimator
	maxBodySize int64
	symbol      string
	version     string
	now         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the estimate API and metrics.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	symbol := opts.CurrencySymbol
	if symbol == "" {
		symbol = constants.DefaultCurrencySymbol
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	h := &handler{
		logger:      logger,
		estimator:   mortgage.NewEstimator(logger, opts.Estimator),
		maxBodySize: maxBodySize,
		symbol:      symbol,
		version:     trimmedVersion,
		now:         now,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/estimate", h.instrument("estimate", h.handleEstimate)).Methods(http.MethodPost)
	r.HandleFunc("/api/schedule", h.instrument("schedule", h.handleSchedule)).Methods(http.MethodGet)
	r.HandleFunc("/api/breakdown", h.instrument("breakdown", h.handleBreakdown)).Methods(http.MethodGet)
	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// estimateRequest mirrors the calculator form. Numeric fields accept JSON
// strings or numbers and are validated as text.
type estimateRequest struct {
	HomePrice       fieldValue `json:"homePrice"`
	DownPayment     fieldValue `json:"downPayment"`
	InterestRate    fieldValue `json:"interestRate"`
	PropertyTaxRate fieldValue `json:"propertyTaxRate"`
	Program         string     `json:"program"`
	TermYears       fieldValue `json:"termYears"`
	TermCancelled   bool       `json:"termCancelled"`
	AsOf            string     `json:"asOf"`
}

type fieldValue string

func (f *fieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*f = ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = fieldValue(s)
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("expected a string or number, got %s", trimmed)
		}
		*f = fieldValue(n.String())
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

type scheduleResponse struct {
	output.ScheduleView
	Countdown    string `json:"countdown"`
	CalendarText string `json:"calendarText"`
}

type breakdownResponse struct {
	Slices []output.SliceView `json:"slices"`
}

func (h *handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEstimate"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		estimatesTotal.WithLabelValues(outcomeBadInput).Inc()
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				errorResponse{Error: fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize)}, op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest,
			errorResponse{Error: fmt.Sprintf("failed to decode request: %v", err)}, op)
		return
	}

	program, err := mortgage.ParseProgram(req.Program)
	if err != nil {
		estimatesTotal.WithLabelValues(outcomeBadInput).Inc()
		h.respondErrorWithOp(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "program"}, op)
		return
	}

	asOf, err := datetime.ParseDate(req.AsOf, h.now())
	if err != nil {
		estimatesTotal.WithLabelValues(outcomeBadInput).Inc()
		h.respondErrorWithOp(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "asOf"}, op)
		return
	}

	raw := mortgage.RawInputs{
		HomePrice:       string(req.HomePrice),
		DownPayment:     string(req.DownPayment),
		InterestRate:    string(req.InterestRate),
		PropertyTaxRate: string(req.PropertyTaxRate),
		Program:         program,
		Term:            string(req.TermYears),
		TermCancelled:   req.TermCancelled,
	}

	estimate, err := h.estimator.Estimate(raw, asOf)
	if err != nil {
		if errors.Is(err, mortgage.ErrTermEntryCancelled) {
			estimatesTotal.WithLabelValues(outcomeCancelled).Inc()
			w.WriteHeader(http.StatusNoContent)
			return
		}

		var validationErr *mortgage.ValidationError
		if errors.As(err, &validationErr) {
			estimatesTotal.WithLabelValues(outcomeInvalid).Inc()
			validationFailuresTotal.WithLabelValues(validationErr.Code()).Inc()
			h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error: validationErr.Error(),
				Code:  validationErr.Code(),
				Field: validationErr.Field,
			})
			return
		}

		estimatesTotal.WithLabelValues(outcomeBadInput).Inc()
		h.respondErrorWithOp(w, http.StatusInternalServerError, errorResponse{Error: err.Error()}, op)
		return
	}

	estimatesTotal.WithLabelValues(outcomeOK).Inc()
	h.writeJSON(w, http.StatusOK, output.NewView(estimate, h.symbol))
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	asOf, err := datetime.ParseDate(r.URL.Query().Get("asOf"), h.now())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "asOf"},
			"server.handleSchedule")
		return
	}

	projection := mortgage.Project(asOf)
	h.writeJSON(w, http.StatusOK, scheduleResponse{
		ScheduleView: output.NewScheduleView(projection),
		Countdown:    output.CountdownText(projection),
		CalendarText: output.CalendarText(projection.Calendar),
	})
}

func (h *handler) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, breakdownResponse{
		Slices: output.NewBreakdownView(mortgage.PlaceholderBreakdown()),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timer := prometheus.NewTimer(requestDuration.WithLabelValues(route))
		defer timer.ObserveDuration()
		next(w, r)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, resp errorResponse, op string) {
	h.logger.Error("estimate request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", resp.Error),
	)

	h.writeJSON(w, status, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
