package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPathParam(t *testing.T) {
	cases := []struct {
		path   string
		prefix string
		suffix string
		want   string
	}{
		{"/api/portfolios/abc-123", "/api/portfolios/", "", "abc-123"},
		{"/api/portfolios/abc-123/assets", "/api/portfolios/", "/assets", "abc-123"},
		{"/api/portfolios/abc-123/assets/xyz", "/api/portfolios/", "/assets", "abc-123"},
		{"/api/stocks/quote/AAPL", "/api/stocks/quote/", "", "AAPL"},
		{"/other/path", "/api/portfolios/", "", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if got := PathParam(req, tc.prefix, tc.suffix); got != tc.want {
			t.Errorf("PathParam(%q, %q, %q) = %q, want %q", tc.path, tc.prefix, tc.suffix, got, tc.want)
		}
	}
}

func TestWriteData_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusOK, map[string]string{"hello": "world"})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var resp struct {
		Status string            `json:"status"`
		Data   map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
	if resp.Data["hello"] != "world" {
		t.Errorf("unexpected data: %v", resp.Data)
	}
}

func TestDecodeJSON_RejectsBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	rec := httptest.NewRecorder()

	var v map[string]string
	if DecodeJSON(rec, req, &v) {
		t.Error("expected DecodeJSON to fail on empty body")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
