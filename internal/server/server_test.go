package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/mortgage-estimator/pkg/mortgage"
	"github.com/iwvelando/mortgage-estimator/pkg/output"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var fixedNow = time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)

func newTestHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewHandler(zaptest.NewLogger(t), opts)
}

func scenarioPayload() map[string]interface{} {
	return map[string]interface{}{
		"homePrice":       "1000000",
		"downPayment":     "200000",
		"interestRate":    "8",
		"propertyTaxRate": "1",
		"program":         "fixed",
		"termYears":       "30",
	}
}

func postEstimate(t *testing.T, handler http.Handler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/estimate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleEstimateSuccess(t *testing.T) {
	handler := newTestHandler(t, Options{})
	before := testutil.ToFloat64(estimatesTotal.WithLabelValues(outcomeOK))

	rr := postEstimate(t, handler, scenarioPayload())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var view output.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))

	assert.Equal(t, 360, view.Payment.NumPayments)
	assert.Equal(t, 800000.0, view.Payment.LoanAmount)
	assert.InDelta(t, 5872.43, view.Payment.TotalMonthlyPayment, 0.01)
	assert.Equal(t, "Monthly Payment: $5,872.43", view.Payment.Display)
	assert.Equal(t, "Fixed Rate", view.Inputs.Program)

	assert.Equal(t, "2024-01-15", view.Schedule.AsOf)
	assert.Equal(t, "2024-02-14", view.Schedule.NextDueDate)
	assert.Equal(t, 30, view.Schedule.DaysRemaining)
	assert.Equal(t, 1, view.Schedule.Calendar.Month)
	assert.Len(t, view.Schedule.Calendar.Weeks, 5)

	require.Len(t, view.Breakdown, 3)
	assert.Equal(t, "60.0%", view.Breakdown[0].Percent)

	assert.Equal(t, before+1, testutil.ToFloat64(estimatesTotal.WithLabelValues(outcomeOK)))
}

func TestHandleEstimateAcceptsNumbers(t *testing.T) {
	handler := newTestHandler(t, Options{})

	rr := postEstimate(t, handler, map[string]interface{}{
		"homePrice":       1000000,
		"downPayment":     200000,
		"interestRate":    8,
		"propertyTaxRate": 1,
		"program":         "adjustable",
		"termYears":       5,
		"asOf":            "2024-03-01",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var view output.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, 60, view.Payment.NumPayments)
	assert.Equal(t, "Adjustable Rate", view.Inputs.Program)
	assert.Equal(t, "2024-03-31", view.Schedule.NextDueDate)
}

func TestHandleEstimateUsesConfiguredSymbol(t *testing.T) {
	handler := newTestHandler(t, Options{CurrencySymbol: "₹"})

	rr := postEstimate(t, handler, scenarioPayload())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var view output.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.True(t, strings.HasPrefix(view.Payment.Display, "Monthly Payment: ₹"), view.Payment.Display)
}

func TestHandleEstimateValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		program string
		field   string
		value   string
		code    string
	}{
		{"not a number", "fixed", "homePrice", "abc", "NOT_A_NUMBER"},
		{"negative rate", "fixed", "interestRate", "-1", "NEGATIVE_VALUE"},
		{"down payment too large", "fixed", "downPayment", "2000000", "DOWN_PAYMENT_EXCEEDS_PRICE"},
		{"missing term", "adjustable", "termYears", "", "MISSING_TERM"},
		{"fractional term", "adjustable", "termYears", "2.5", "NOT_A_NUMBER"},
	}

	handler := newTestHandler(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(validationFailuresTotal.WithLabelValues(tt.code))

			payload := scenarioPayload()
			payload["program"] = tt.program
			payload[tt.field] = tt.value
			rr := postEstimate(t, handler, payload)
			require.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.field, resp.Field)
			assert.NotEmpty(t, resp.Error)

			assert.Equal(t, before+1, testutil.ToFloat64(validationFailuresTotal.WithLabelValues(tt.code)))
		})
	}
}

func TestHandleEstimateCancelledTerm(t *testing.T) {
	handler := newTestHandler(t, Options{})

	payload := scenarioPayload()
	payload["program"] = "adjustable"
	payload["termYears"] = ""
	payload["termCancelled"] = true
	rr := postEstimate(t, handler, payload)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestHandleEstimateBadRequests(t *testing.T) {
	handler := newTestHandler(t, Options{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"homePrice":`},
		{"boolean amount", `{"homePrice": true}`},
		{"unknown program", `{"homePrice":"1","downPayment":"0","interestRate":"1","propertyTaxRate":"1","termYears":"1","program":"balloon"}`},
		{"bad as-of date", `{"homePrice":"1","downPayment":"0","interestRate":"1","propertyTaxRate":"1","termYears":"1","asOf":"15/01/2024"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}
}

func TestHandleEstimateBodyTooLarge(t *testing.T) {
	handler := newTestHandler(t, Options{MaxBodySize: 16})

	rr := postEstimate(t, handler, scenarioPayload())
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code, rr.Body.String())
}

func TestHandleEstimateMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/estimate", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleEstimateDerivedBreakdown(t *testing.T) {
	handler := newTestHandler(t, Options{
		Estimator: mortgage.Options{BreakdownMethod: mortgage.BreakdownDerived},
	})

	rr := postEstimate(t, handler, scenarioPayload())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var view output.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.Len(t, view.Breakdown, 3)

	total := 0.0
	for _, slice := range view.Breakdown {
		total += slice.Share
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.NotEqual(t, 0.6, view.Breakdown[0].Share)
}

func TestHandleSchedule(t *testing.T) {
	handler := newTestHandler(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/schedule?asOf=2024-12-15", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "2025-01-14", resp.NextDueDate)
	assert.Equal(t, "December 2024", resp.Calendar.Title)
	assert.Equal(t, "Days remaining until next payment: 30 days", resp.Countdown)
	assert.True(t, strings.HasPrefix(resp.CalendarText, "December 2024\n"), resp.CalendarText)
}

func TestHandleScheduleDefaultsToNow(t *testing.T) {
	handler := newTestHandler(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "2024-01-15", resp.AsOf)
	assert.Equal(t, "2024-02-14", resp.NextDueDate)
}

func TestHandleScheduleInvalidDate(t *testing.T) {
	handler := newTestHandler(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/schedule?asOf=yesterday", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleBreakdown(t *testing.T) {
	handler := newTestHandler(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/breakdown", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp breakdownResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Slices, 3)
	assert.Equal(t, "Principal Payment", resp.Slices[0].Label)
	assert.Equal(t, "30.0%", resp.Slices[1].Percent)
	assert.Equal(t, "10.0%", resp.Slices[2].Percent)
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t, Options{Version: " v1.2.3 "})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "v1.2.3", resp["version"])
}

func TestHandleVersionDefault(t *testing.T) {
	handler := newTestHandler(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "dev", resp["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t, Options{})
	postEstimate(t, handler, scenarioPayload())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "mortgage_estimates_total")
	assert.Contains(t, body, "mortgage_http_request_duration_seconds")
}
