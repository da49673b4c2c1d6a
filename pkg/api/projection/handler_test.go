package projection

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"investment_projection/pkg/core/logger"
	coreProjection "investment_projection/pkg/core/projection"
	"investment_projection/pkg/core/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTemplate = "Amount {monthly_contribution_amount}; risk {risk_tolerance}; interests {interests}."

type scriptedUpstream struct {
	fragments []string
	err       error
	calls     int
	prompt    string
}

func (s *scriptedUpstream) StreamPrompt(ctx context.Context, agentType string, p string) iter.Seq2[string, error] {
	s.calls++
	s.prompt = p
	return func(yield func(string, error) bool) {
		for _, f := range s.fragments {
			if !yield(f, nil) {
				return
			}
		}
		if s.err != nil {
			yield("", s.err)
		}
	}
}

func newHandler(t *testing.T, up *scriptedUpstream) *Handler {
	t.Helper()
	tmpl, err := prompt.New("test", testTemplate, prompt.ProjectionPlaceholders)
	require.NoError(t, err)
	gen, err := coreProjection.NewGenerator(tmpl, up, 0)
	require.NoError(t, err)
	return NewHandler(gen, logger.Nop(), 0)
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/investment-projection", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleProjection(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHandleProjection_Success(t *testing.T) {
	up := &scriptedUpstream{fragments: []string{`{"a":`, `1}`}}
	h := newHandler(t, up)

	rec := post(h, `{"monthly_contribution_amount": 500, "risk_tolerance": "Average", "interests": "technology, healthcare, renewable energy"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Amount 500.0; risk Average; interests technology, healthcare, renewable energy.", up.prompt)
}

func TestHandleProjection_TrailingWhitespaceAccepted(t *testing.T) {
	up := &scriptedUpstream{fragments: []string{`{"ok":true}`}}
	rec := post(newHandler(t, up), "{\"monthly_contribution_amount\": 500, \"risk_tolerance\": \"High\", \"interests\": \"x\"}\n\t ")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, up.calls)
}

func TestHandleProjection_ValidationNeverCallsUpstream(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero amount", `{"monthly_contribution_amount": 0, "risk_tolerance": "High", "interests": "x"}`, "monthly_contribution_amount must be positive"},
		{"text amount", `{"monthly_contribution_amount": "lots", "risk_tolerance": "High", "interests": "x"}`, "monthly_contribution_amount must be a valid number"},
		{"bad risk", `{"monthly_contribution_amount": 10, "risk_tolerance": "Low", "interests": "x"}`, "risk_tolerance must be one of: High, Average, Minimal"},
		{"blank interests", `{"monthly_contribution_amount": 10, "risk_tolerance": "Minimal", "interests": "  "}`, "interests must be a non-empty string"},
		{"missing interests", `{"monthly_contribution_amount": -1, "risk_tolerance": "Nope"}`, "interests is required"},
		{"missing amount", `{"risk_tolerance": "High", "interests": "x"}`, "monthly_contribution_amount is required"},
		{"empty object", `{}`, "No JSON data provided"},
		{"not json", `monthly=500`, "No JSON data provided"},
		{"array body", `[1,2]`, "No JSON data provided"},
		{"trailing garbage", `{"monthly_contribution_amount": 10, "risk_tolerance": "High", "interests": "x"} garbage`, "No JSON data provided"},
		{"two objects", `{"monthly_contribution_amount": 10, "risk_tolerance": "High", "interests": "x"}{}`, "No JSON data provided"},
		{"huge exponent amount", `{"monthly_contribution_amount": 1e9999999, "risk_tolerance": "High", "interests": "x"}`, "monthly_contribution_amount must be a valid number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &scriptedUpstream{fragments: []string{"{}"}}
			rec := post(newHandler(t, up), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, errorMessage(t, rec))
			assert.Zero(t, up.calls)
		})
	}
}

func TestHandleProjection_UpstreamFormatError(t *testing.T) {
	up := &scriptedUpstream{fragments: []string{"sorry, I can't help"}}
	rec := post(newHandler(t, up), `{"monthly_contribution_amount": 500, "risk_tolerance": "Average", "interests": "tech"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON response from upstream: sorry, I can't help", errorMessage(t, rec))
}

func TestHandleProjection_UpstreamFailure(t *testing.T) {
	up := &scriptedUpstream{fragments: []string{`{"partial":`}, err: errors.New("connection reset")}
	rec := post(newHandler(t, up), `{"monthly_contribution_amount": 500, "risk_tolerance": "Average", "interests": "tech"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	msg := errorMessage(t, rec)
	assert.True(t, strings.HasPrefix(msg, "Internal server error: "), msg)
	assert.Contains(t, msg, "connection reset")
	assert.NotContains(t, rec.Body.String(), "partial")
}

func TestHandleProjection_Methods(t *testing.T) {
	h := newHandler(t, &scriptedUpstream{})

	rec := httptest.NewRecorder()
	h.HandleProjection(rec, httptest.NewRequest(http.MethodOptions, "/api/investment-projection", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

	rec = httptest.NewRecorder()
	h.HandleProjection(rec, httptest.NewRequest(http.MethodGet, "/api/investment-projection", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
