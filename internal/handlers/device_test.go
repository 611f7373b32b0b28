package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"climate_station/internal/models"
	"climate_station/internal/service"
)

func doJSON(t *testing.T, h http.Handler, method, path, body string, hdr http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Buffer
	if body != "" {
		rd = bytes.NewBufferString(body)
	} else {
		rd = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestStatusHandler(t *testing.T) {
	snap := models.StatusSnapshot{
		Mode:   "AUTO",
		Sensor: &models.SensorReading{Temperature: 23.4, Humidity: 51, Light: 66},
	}
	r := newTestRouter(&service.Service{Status: &mockStatus{snap: snap}})

	w := doJSON(t, r, http.MethodGet, "/status", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(raw["mode"]) != `"AUTO"` {
		t.Fatalf("mode=%s", raw["mode"])
	}
	if string(raw["fan"]) != "null" {
		t.Fatalf("fan should be null when absent, got %s", raw["fan"])
	}

	r = newTestRouter(&service.Service{Status: &mockStatus{err: errors.New("db")}})
	if w := doJSON(t, r, http.MethodGet, "/status", "", nil); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestSummaryHandler(t *testing.T) {
	stats := models.SummaryStats{AvgTemperature: 21.5, MinLight: 3, MaxLight: 90}
	r := newTestRouter(&service.Service{Summary: &mockSummary{stats: stats}})

	w := doJSON(t, r, http.MethodGet, "/summary", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got models.SummaryStats
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got != stats {
		t.Fatalf("got %+v, want %+v", got, stats)
	}

	r = newTestRouter(&service.Service{Summary: &mockSummary{err: service.ErrNotEnoughData}})
	w = doJSON(t, r, http.MethodGet, "/summary", "", nil)
	if w.Code != http.StatusBadRequest || !bytes.Contains(w.Body.Bytes(), []byte(msgNotEnoughData)) {
		t.Fatalf("expected 400 not enough data, got %d %s", w.Code, w.Body.String())
	}
}

func TestGetSettingsHandler(t *testing.T) {
	cases := []struct {
		name     string
		settings *mockSettings
		wantCode int
		wantBody string
	}{
		{
			name:     "no settings yet",
			settings: &mockSettings{},
			wantCode: http.StatusOK,
			wantBody: `{}`,
		},
		{
			name:     "stored settings",
			settings: &mockSettings{current: &models.Settings{ID: 2, TempHighThreshold: 30, TempLowThreshold: 10, LightThreshold: 500}},
			wantCode: http.StatusOK,
		},
		{
			name:     "store failure",
			settings: &mockSettings{currentErr: errors.New("locked")},
			wantCode: http.StatusInternalServerError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Settings: tc.settings})
			w := doJSON(t, r, http.MethodGet, "/settings", "", nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d", w.Code, tc.wantCode)
			}
			if tc.wantBody != "" && w.Body.String() != tc.wantBody {
				t.Fatalf("body=%s, want %s", w.Body.String(), tc.wantBody)
			}
			if tc.settings.current != nil {
				var got models.SettingsPayload
				_ = json.Unmarshal(w.Body.Bytes(), &got)
				if !got.Complete() || *got.LightThreshold != 500 {
					t.Fatalf("unexpected payload %s", w.Body.String())
				}
			}
		})
	}
}

func TestPostSettingsHandler(t *testing.T) {
	const valid = `{"temp_high_threshold":30,"temp_low_threshold":10,"light_threshold":500}`

	cases := []struct {
		name      string
		body      string
		updateErr error
		wantCode  int
		wantError string
	}{
		{name: "created", body: valid, wantCode: http.StatusCreated},
		{name: "malformed json", body: `{"temp_high_threshold":`, wantCode: http.StatusBadRequest},
		{name: "missing field", body: `{"temp_high_threshold":30}`, updateErr: service.ErrMissingSettings, wantCode: http.StatusBadRequest, wantError: msgMissingFields},
		{name: "invalid range", body: valid, updateErr: errors.Join(service.ErrInvalidSettings, errors.New("bad range")), wantCode: http.StatusBadRequest},
		{name: "store failure", body: valid, updateErr: errors.New("disk"), wantCode: http.StatusInternalServerError, wantError: errUpdateSettings},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := &mockSettings{updateErr: tc.updateErr}
			r := newTestRouter(&service.Service{Settings: settings})

			w := doJSON(t, r, http.MethodPost, "/settings", tc.body, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			var out map[string]string
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if tc.wantCode == http.StatusCreated {
				if out["message"] != msgSettingsUpdated {
					t.Fatalf("message=%q", out["message"])
				}
				p := settings.updates[0]
				if *p.TempHighThreshold != 30 || *p.TempLowThreshold != 10 || *p.LightThreshold != 500 {
					t.Fatalf("payload not forwarded: %+v", p)
				}
				return
			}
			if out["error"] == "" {
				t.Fatalf("expected error field, body=%s", w.Body.String())
			}
			if tc.wantError != "" && out["error"] != tc.wantError {
				t.Fatalf("error=%q, want %q", out["error"], tc.wantError)
			}
		})
	}
}

func TestPostSettings_AuthEnabled(t *testing.T) {
	const body = `{"temp_high_threshold":30,"temp_low_threshold":10,"light_threshold":500}`
	auth := &mockAuth{parseID: 3}
	settings := &mockSettings{}
	r := newTestRouterWith(&service.Service{Settings: settings, Authorization: auth}, Options{AuthEnabled: true})

	if w := doJSON(t, r, http.MethodPost, "/settings", body, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if len(settings.updates) != 0 {
		t.Fatalf("update must not run without token")
	}
	if w := doJSON(t, r, http.MethodPost, "/settings", body, authHeader("good")); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 with token, got %d", w.Code)
	}
	if auth.lastParseToken != "good" {
		t.Fatalf("token not parsed: %q", auth.lastParseToken)
	}
	// reads stay public
	if w := doJSON(t, r, http.MethodGet, "/settings", "", nil); w.Code != http.StatusOK {
		t.Fatalf("GET /settings should not need auth, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(statusOK)) {
		t.Fatalf("health=%d %s", w.Code, w.Body.String())
	}
}
