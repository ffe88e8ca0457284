package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/wrenlet/inkwell/internal/aiservice"
	"github.com/wrenlet/inkwell/internal/blogservice"
	"github.com/wrenlet/inkwell/internal/common"
	"github.com/wrenlet/inkwell/internal/supabase"
	"github.com/wrenlet/inkwell/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

// newTestServer wraps the handler in an httptest server whose client
// carries a cookie jar and does not follow redirects, so tests can
// assert on session cookies and Location headers.
func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	ts.Client().Jar = jar
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{ts}
}

// newTestApplication wires an application against a fake remote
// backend and a fake generative endpoint. A nil gateway handler makes
// the backend unreachable-equivalent (empty URL, features disabled).
func newTestApplication(t *testing.T, gateway http.HandlerFunc, gemini http.HandlerFunc) *application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var gatewayURL string
	if gateway != nil {
		srv := httptest.NewServer(gateway)
		t.Cleanup(srv.Close)
		gatewayURL = srv.URL
	}

	db := supabase.New(gatewayURL, "anon-key")
	adm := supabase.New(gatewayURL, "service-key")

	var ai *aiservice.AIService
	if gemini != nil {
		srv := httptest.NewServer(gemini)
		t.Cleanup(srv.Close)
		ai = aiservice.NewAIServiceWithEndpoint("test-key", srv.URL)
	} else {
		ai = aiservice.NewAIService("")
	}

	cfg := &Config{Port: ":0", Environment: "test", Version: "test"}
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:      cfg,
		logger:      logger,
		sessions:    newSessionStore("test-secret"),
		cache:       cache,
		blogService: blogservice.NewBlogService(db, adm, cache),
		aiService:   ai,
	}
	app.userService = userservice.NewUserService(db, adm, nil, cache, "", "")

	return app
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	// Redirects carry an HTML "see other" body, not JSON.
	var envelope envelope
	if len(responseBody) > 0 && strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		err = json.Unmarshal(responseBody, &envelope)
		if err != nil {
			t.Fatal(err)
		}
	}

	return res.StatusCode, res.Header, envelope
}

// postForm submits a url-encoded form the way a browser would.
func (ts *testServer) postForm(t *testing.T, path string, form url.Values) (int, http.Header, envelope) {
	res, err := ts.Client().Post(ts.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) postJSON(t *testing.T, path string, data any) (int, http.Header, envelope) {
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	res, err := ts.Client().Post(ts.URL+path, "application/json", strings.NewReader(string(payload)))
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	res, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

// login authenticates through the real login handler so the test
// client's jar carries a genuine session cookie.
func (ts *testServer) login(t *testing.T, email, password string) {
	status, headers, _ := ts.postForm(t, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})

	if status != http.StatusSeeOther {
		t.Fatalf("login failed: status %d", status)
	}
	if loc := headers.Get("Location"); loc == "/login" {
		t.Fatalf("login failed: redirected back to /login")
	}
}

// loginAsAdmin uses the static administrator pair.
func (ts *testServer) loginAsAdmin(t *testing.T) {
	ts.login(t, "admin@gmail.com", "admin@1234")
}

// generationResponse is the upstream wire shape returning one text part.
func generationResponse(text string) string {
	body := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}

	raw, _ := json.Marshal(body)
	return string(raw)
}
