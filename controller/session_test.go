package controller

import (
	"context"
	"encoding/json"
	"github.com/Netcracker/qubership-web-audit-service/exception"
	"github.com/Netcracker/qubership-web-audit-service/presenter"
	"github.com/Netcracker/qubership-web-audit-service/service"
	"github.com/Netcracker/qubership-web-audit-service/view"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type analyzerStub struct {
	release chan struct{}
	result  *view.AuditResult
	err     error
}

func (a *analyzerStub) Analyze(ctx context.Context, url string, device view.Device, location view.Location) (*view.AuditResult, error) {
	if a.release != nil {
		select {
		case <-a.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return a.result, a.err
}

func newTestSessionController(t *testing.T, analyzer *analyzerStub) SessionController {
	t.Helper()
	renderer, err := presenter.NewRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewSessionController(service.NewSessionService(analyzer, time.Millisecond, time.Hour, 10), renderer)
}

// call runs the handler with the session cookie of the previous response, if any.
func call(handler http.HandlerFunc, method string, target string, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if strings.HasPrefix(target, "/api/") {
		req.Header.Set("Content-Type", "application/json")
	} else {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie is not set")
	return nil
}

func decodeSessionView(t *testing.T, rec *httptest.ResponseRecorder) view.SessionView {
	t.Helper()
	var v view.SessionView
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func waitForSessionPhase(t *testing.T, c SessionController, cookie *http.Cookie, phase string) view.SessionView {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		v := decodeSessionView(t, call(c.GetSession, http.MethodGet, "/api/session", "", cookie))
		if v.Phase == phase {
			return v
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("session did not reach %s", phase)
	return view.SessionView{}
}

func TestApiSessionFlow(t *testing.T) {
	analyzer := &analyzerStub{
		release: make(chan struct{}),
		result: &view.AuditResult{
			PerformanceScore: 42,
			HihiRank:         view.HihiRank{Tier: view.TierC, Name: "Rùa Bò", Emoji: "🐢"},
			Opportunities:    []view.Opportunity{},
			CodeSuggestions:  []view.CodeSuggestion{},
		},
	}
	c := newTestSessionController(t, analyzer)

	rec := call(c.GetSession, http.MethodGet, "/api/session", "", nil)
	cookie := sessionCookie(t, rec)
	initial := decodeSessionView(t, rec)
	if initial.Phase != "idle" || initial.Device != view.DeviceMobile || initial.Location != view.LocationVietnam {
		t.Fatalf("unexpected initial session %+v", initial)
	}

	rec = call(c.Analyze, http.MethodPost, "/api/session/analyze", `{"url":"example.com","device":"mobile","location":"Vietnam"}`, cookie)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	v := decodeSessionView(t, rec)
	if v.Phase != "analyzing" || !v.ControlsDisabled || v.AnalyzedUrl != "https://example.com" {
		t.Errorf("unexpected session %+v", v)
	}

	for _, tc := range []struct {
		handler http.HandlerFunc
		target  string
		body    string
	}{
		{c.Analyze, "/api/session/analyze", `{"url":"other.com"}`},
		{c.UpdateSettings, "/api/session/settings", `{"device":"desktop"}`},
		{c.Reset, "/api/session/reset", ``},
	} {
		rec = call(tc.handler, http.MethodPost, tc.target, tc.body, cookie)
		if rec.Code != http.StatusConflict {
			t.Errorf("%s while analyzing: status = %d", tc.target, rec.Code)
		}
	}

	close(analyzer.release)
	v = waitForSessionPhase(t, c, cookie, "complete")
	if v.Result == nil || v.Result.PerformanceScore != 42 || v.ControlsDisabled {
		t.Errorf("unexpected complete session %+v", v)
	}

	rec = call(c.GetDashboard, http.MethodGet, "/api/session/dashboard?tab=code", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var d presenter.Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Code == nil || d.Code.EmptyTitle != presenter.NoCodeTitle {
		t.Errorf("unexpected dashboard %+v", d)
	}

	rec = call(c.Reset, http.MethodPost, "/api/session/reset", "", cookie)
	v = decodeSessionView(t, rec)
	if rec.Code != http.StatusOK || v.Phase != "idle" || v.Url != "" || v.Result != nil {
		t.Errorf("unexpected reset result %d %+v", rec.Code, v)
	}

	rec = call(c.GetDashboard, http.MethodGet, "/api/session/dashboard", "", cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("dashboard without result: status = %d", rec.Code)
	}
}

func TestApiSessionValidation(t *testing.T) {
	c := newTestSessionController(t, &analyzerStub{result: &view.AuditResult{}})
	cookie := sessionCookie(t, call(c.GetSession, http.MethodGet, "/api/session", "", nil))

	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  string
		body    string
		code    string
	}{
		{"empty url", c.Analyze, "/api/session/analyze", `{"url":"  "}`, exception.RequiredParamsMissing},
		{"bad device", c.Analyze, "/api/session/analyze", `{"url":"a.vn","device":"tablet"}`, exception.InvalidParameterValue},
		{"bad location", c.UpdateSettings, "/api/session/settings", `{"location":"Mars"}`, exception.InvalidParameterValue},
		{"bad body", c.UpdateSettings, "/api/session/settings", `{`, exception.BadRequestBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(tt.handler, http.MethodPost, tt.target, tt.body, cookie)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			var e exception.CustomError
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %s, want %s", e.Code, tt.code)
			}
		})
	}

	rec := call(c.UpdateSettings, http.MethodPost, "/api/session/settings", `{"device":"desktop","location":"Japan"}`, cookie)
	v := decodeSessionView(t, rec)
	if rec.Code != http.StatusOK || v.Device != view.DeviceDesktop || v.Location != view.LocationJapan || v.Phase != "idle" {
		t.Errorf("unexpected settings result %d %+v", rec.Code, v)
	}
}

func TestApiSessionFailure(t *testing.T) {
	c := newTestSessionController(t, &analyzerStub{err: exception.UpstreamError{Message: "boom"}})
	cookie := sessionCookie(t, call(c.GetSession, http.MethodGet, "/api/session", "", nil))

	if rec := call(c.Analyze, http.MethodPost, "/api/session/analyze", `{"url":"example.com"}`, cookie); rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	v := waitForSessionPhase(t, c, cookie, "error")
	if v.ErrorMessage != "boom" {
		t.Errorf("error message = %q", v.ErrorMessage)
	}
}

func TestPageFlow(t *testing.T) {
	analyzer := &analyzerStub{release: make(chan struct{}), result: &view.AuditResult{PerformanceScore: 42}}
	c := newTestSessionController(t, analyzer)

	rec := call(c.GetPage, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "HiHi Analytics") {
		t.Fatalf("status = %d", rec.Code)
	}
	cookie := sessionCookie(t, rec)

	rec = call(c.SubmitForm, http.MethodPost, "/analyze", "url=&device=mobile&location=Vietnam", cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty url: status = %d", rec.Code)
	}

	rec = call(c.SubmitForm, http.MethodPost, "/analyze", "url=example.com&device=desktop&location=Japan", cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("submit: status = %d", rec.Code)
	}

	rec = call(c.GetPage, http.MethodGet, "/", "", cookie)
	body := rec.Body.String()
	if !strings.Contains(body, `http-equiv="refresh"`) || !strings.Contains(body, "ĐANG SOI...") {
		t.Error("analyzing page must refresh and show the busy submit label")
	}

	rec = call(c.ResetForm, http.MethodPost, "/reset", "", cookie)
	if rec.Code != http.StatusConflict {
		t.Errorf("reset while analyzing: status = %d", rec.Code)
	}

	close(analyzer.release)
	waitForSessionPhase(t, c, cookie, "complete")

	rec = call(c.GetPage, http.MethodGet, "/?tab=overview", "", cookie)
	if !strings.Contains(rec.Body.String(), `<span class="gauge-score">42</span>`) {
		t.Error("dashboard must be rendered")
	}

	rec = call(c.ExportForm, http.MethodPost, "/export", "tab=details", cookie)
	if !strings.Contains(rec.Body.String(), exception.NotImplementedMsg) {
		t.Error("export must show the coming soon notice")
	}

	rec = call(c.ResetForm, http.MethodPost, "/reset", "", cookie)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("reset: status = %d", rec.Code)
	}
	rec = call(c.SettingsForm, http.MethodPost, "/settings", "device=mobile&location=USA", cookie)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("settings: status = %d", rec.Code)
	}
	v := decodeSessionView(t, call(c.GetSession, http.MethodGet, "/api/session", "", cookie))
	if v.Phase != "idle" || v.Device != view.DeviceMobile || v.Location != view.LocationUSA {
		t.Errorf("unexpected session %+v", v)
	}
}
