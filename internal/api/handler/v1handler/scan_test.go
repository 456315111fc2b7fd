package v1handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"riskscanner/internal/api/handler/v1handler"
	"riskscanner/internal/scanner"
	mockscanner "riskscanner/internal/scanner/mock"
	"riskscanner/pkg/domain"
	"riskscanner/pkg/rules"
	"riskscanner/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestMux(t *testing.T, s scanner.Scanner, maxBody int64) *http.ServeMux {
	t.Helper()

	mux := http.NewServeMux()
	v1handler.New(v1handler.Deps{Scanner: s}, v1handler.Options{MaxBodyBytes: maxBody}).Register(mux)

	return mux
}

func postScan(mux http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func TestScan_Baseline(t *testing.T) {
	s := scanner.New(rules.Baseline(), scanner.Options{Policy: scanner.DefaultPolicy(), Summarizer: scanner.Static})
	mux := newTestMux(t, s, 1<<20)

	rec := postScan(mux, `{"text": "Disputes resolved by binding arbitration; tenant provides indemnification; automatic renewal applies."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"summary": "This contract contains standard terms, but watch out for specific liability and dispute resolution clauses.",
		"score": 55,
		"risks": [
			{"category": "Dispute Resolution", "severity": "high",
			 "description": "Forced arbitration clause detected. This may waive your right to a jury trial.",
			 "original_text": "arbitration"},
			{"category": "Liability", "severity": "medium",
			 "description": "Indemnification clause. You may be liable for third-party claims.",
			 "original_text": "indemnification"},
			{"category": "Financial", "severity": "medium",
			 "description": "Automatic renewal clause. Contract renews automatically unless cancelled.",
			 "original_text": "automatic renewal"}
		]
	}`, rec.Body.String())

	rec = postScan(mux, "{\"text\": \"This is a simple purchase agreement.\", \"url\": null}\n\t ")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"summary": "`+scanner.StaticSummary+`", "score": 85, "risks": []}`, rec.Body.String())
}

func TestScan_PassesRequestToScanner(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mockscanner.NewMockScanner(ctrl)
	mux := newTestMux(t, s, 0)

	s.EXPECT().Scan(gomock.Any(), &domain.ScanRequest{Text: "ARBITRATION REQUIRED", URL: "HTTPS://Shop.Example.com:443/terms#top"}).
		Return(&domain.ScanResponse{
			Summary: "s",
			Score:   75,
			Risks: []domain.Risk{{
				Category: "Dispute Resolution", Severity: domain.SeverityHigh,
				Description: "d", OriginalText: "ARBITRATION",
			}},
		}, nil)

	rec := postScan(mux, `{"text": "ARBITRATION REQUIRED", "url": "HTTPS://Shop.Example.com:443/terms#top", "extra": [1, 2]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"summary": "s", "score": 75, "risks": [
		{"category": "Dispute Resolution", "severity": "high", "description": "d", "original_text": "ARBITRATION"}
	]}`, rec.Body.String())
}

func TestScan_InvalidBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{name: "missing text", body: `{}`, wantDetail: "text: field required"},
		{name: "only url", body: `{"url": "https://example.com"}`, wantDetail: "text: field required"},
		{name: "text not a string", body: `{"text": 42}`, wantDetail: "text: must be a string"},
		{name: "text null", body: `{"text": null}`, wantDetail: "text: must be a string"},
		{name: "url not a string", body: `{"text": "a", "url": 1}`, wantDetail: "url: must be a string or null"},
		{name: "array body", body: `["text"]`, wantDetail: "request body must be a JSON object"},
		{name: "empty body", body: ``, wantDetail: "request body must be a JSON object"},
		{name: "truncated", body: `{"text": "abc`, wantDetail: "invalid JSON body"},
		{name: "trailing data", body: `{"text":"arbitration"} {"oops`, wantDetail: "invalid JSON body"},
		{name: "second object", body: `{"text":"a"}{"text":"b"}`, wantDetail: "invalid JSON body"},
		{name: "trailing garbage", body: `{"text":"a"} x`, wantDetail: "invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the mock fails the test if the scanner is called
			ctrl := gomock.NewController(t)
			mux := newTestMux(t, mockscanner.NewMockScanner(ctrl), 0)

			rec := postScan(mux, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			require.JSONEq(t, `{"detail": "`+tt.wantDetail+`"}`, rec.Body.String())
		})
	}
}

func TestScan_PayloadTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux := newTestMux(t, mockscanner.NewMockScanner(ctrl), 16)

	rec := postScan(mux, `{"text": "`+strings.Repeat("a", 64)+`"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.JSONEq(t, `{"detail": "request body exceeds 16 bytes"}`, rec.Body.String())
}

func TestScan_EvaluationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mockscanner.NewMockScanner(ctrl)
	mux := newTestMux(t, s, 0)

	s.EXPECT().Scan(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrEvaluation, "rule evaluation failed: boom"))

	rec := postScan(mux, `{"text": "arbitration"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"detail": "rule evaluation failed: boom"}`, rec.Body.String())
}

func TestScan_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux := newTestMux(t, mockscanner.NewMockScanner(ctrl), 0)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scan", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
