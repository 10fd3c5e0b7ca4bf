package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/maksimkurb/configurator/src/internal/coerce"
	"github.com/maksimkurb/configurator/src/internal/config"
	"github.com/maksimkurb/configurator/src/internal/log"
)

func init() {
	log.DisableLogs()
}

func newTestRouter(t *testing.T, content string) (http.Handler, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
	}
	engine, err := config.Open(config.Schema{
		"network": {"port": coerce.Integer, "enabled": coerce.Boolean, "ratio": coerce.Float},
		"ui":      {"theme": coerce.String},
	}, path)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	return NewRouter(engine), path
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.RemoteAddr = "127.0.0.1:40000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const validStore = "[network]\nport=8080\nenabled=true\nratio=0.5\n\n[ui]\ntheme=dark\n"

func TestGetConfig(t *testing.T) {
	h, _ := newTestRouter(t, validStore)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/config", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data map[string]map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Data["network"]["port"] != float64(8080) {
		t.Errorf("Expected port 8080, got %v", resp.Data["network"]["port"])
	}
	if resp.Data["network"]["enabled"] != true {
		t.Errorf("Expected enabled true, got %v", resp.Data["network"]["enabled"])
	}
	if resp.Data["ui"]["theme"] != "dark" {
		t.Errorf("Expected theme dark, got %v", resp.Data["ui"]["theme"])
	}
}

func TestGetSection_Unknown(t *testing.T) {
	h, _ := newTestRouter(t, validStore)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/config/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestGetConfig_StoreNotFound(t *testing.T) {
	h, _ := newTestRouter(t, "")

	rec := doRequest(t, h, http.MethodGet, "/api/v1/config", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), string(ErrCodeStoreNotFound)) {
		t.Errorf("Expected store_not_found code, got %s", rec.Body.String())
	}
}

func TestUpdateSection(t *testing.T) {
	h, path := newTestRouter(t, validStore)

	rec := doRequest(t, h, http.MethodPut, "/api/v1/config/network", `{"port": 9090, "enabled": "no", "ratio": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	for _, want := range []string{"port=9090", "enabled=false", "ratio=1.0", "theme=dark"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("Expected %q in store:\n%s", want, content)
		}
	}
}

func TestUpdateSection_LargeInteger(t *testing.T) {
	h, path := newTestRouter(t, validStore)

	rec := doRequest(t, h, http.MethodPut, "/api/v1/config/network", `{"port": 9007199254740993, "enabled": true, "ratio": 0.1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"port":9007199254740993`) {
		t.Errorf("Expected exact port in response, got %s", rec.Body.String())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	for _, want := range []string{"port=9007199254740993", "ratio=0.1"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("Expected %q in store:\n%s", want, content)
		}
	}
}

func TestUpdateSection_Errors(t *testing.T) {
	tests := []struct {
		name     string
		section  string
		body     string
		wantCode int
		wantKind string
	}{
		{"missing key", "network", `{"port": 1, "enabled": true}`, http.StatusBadRequest, "MISSING_KEY"},
		{"invalid boolean", "network", `{"port": 1, "enabled": "maybe", "ratio": 0}`, http.StatusBadRequest, "INVALID_BOOLEAN"},
		{"invalid integer", "network", `{"port": 1.5, "enabled": true, "ratio": 0}`, http.StatusBadRequest, "INVALID_VALUE"},
		{"integer out of range", "network", `{"port": 1e30, "enabled": true, "ratio": 0}`, http.StatusBadRequest, "INVALID_VALUE"},
		{"unknown key", "ui", `{"theme": "x", "font": "y"}`, http.StatusBadRequest, ""},
		{"unknown section", "ghost", `{"a": 1}`, http.StatusNotFound, ""},
		{"malformed json", "ui", `{"theme":`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, path := newTestRouter(t, validStore)

			rec := doRequest(t, h, http.MethodPut, "/api/v1/config/"+tt.section, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("Expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}

			if tt.wantKind != "" {
				var resp ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("Failed to decode error: %v", err)
				}
				if resp.Error.Details["kind"] != tt.wantKind {
					t.Errorf("Expected kind %s, got %v", tt.wantKind, resp.Error.Details["kind"])
				}
			}

			content, _ := os.ReadFile(path)
			if string(content) != validStore {
				t.Errorf("Expected store to be untouched, got:\n%s", content)
			}
		})
	}
}

func TestGetSchema(t *testing.T) {
	h, _ := newTestRouter(t, validStore)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/schema", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data SchemaResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Data["network"]["enabled"] != "boolean" {
		t.Errorf("Expected boolean type, got %v", resp.Data["network"]["enabled"])
	}
}

func TestPrivateSubnetOnly(t *testing.T) {
	h, _ := newTestRouter(t, validStore)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schema", nil)
	req.RemoteAddr = "8.8.8.8:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for public client, got %d", rec.Code)
	}
}

func TestJSONContentType(t *testing.T) {
	h, _ := newTestRouter(t, validStore)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/config/ui", strings.NewReader(`{"theme":"x"}`))
	req.RemoteAddr = "127.0.0.1:1"
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-JSON body, got %d", rec.Code)
	}
}
