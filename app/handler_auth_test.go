package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// signInResponse is the auth gateway's password-grant success shape.
func signInResponse(userID, email string) string {
	body := map[string]any{
		"access_token": "test-access-token",
		"user":         map[string]any{"id": userID, "email": email},
	}

	raw, _ := json.Marshal(body)
	return string(raw)
}

func TestRegisterHandler(t *testing.T) {
	testCases := []struct {
		name         string
		form         url.Values
		gatewayCode  int
		gatewayBody  string
		wantStatus   int
		wantLocation string
	}{
		{
			name: "Valid Request",
			form: url.Values{
				"email":      {"new@example.com"},
				"first_name": {"New"},
				"last_name":  {"User"},
				"password":   {"Test_1234!"},
			},
			gatewayCode:  http.StatusOK,
			gatewayBody:  `{"id":"user-1","email":"new@example.com"}`,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name: "Duplicate Email",
			form: url.Values{
				"email":      {"taken@example.com"},
				"first_name": {"New"},
				"last_name":  {"User"},
				"password":   {"Test_1234!"},
			},
			gatewayCode:  http.StatusUnprocessableEntity,
			gatewayBody:  `{"message":"User already registered"}`,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name: "Missing Fields",
			form: url.Values{
				"email": {"new@example.com"},
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/v1/signup", r.URL.Path)
				w.WriteHeader(tc.gatewayCode)
				w.Write([]byte(tc.gatewayBody))
			}, nil)
			ts := newTestServer(t, app.routes())

			status, headers, _ := ts.postForm(t, "/register", tc.form)

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantLocation != "" {
				assert.Equal(t, tc.wantLocation, headers.Get("Location"))
			}
		})
	}
}

func TestRegisterHandlerSendsMetadata(t *testing.T) {
	var body map[string]any
	app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"id":"user-1","email":"new@example.com"}`))
	}, nil)
	ts := newTestServer(t, app.routes())

	ts.postForm(t, "/register", url.Values{
		"email":      {"new@example.com"},
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"password":   {"Test_1234!"},
	})

	meta, ok := body["data"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Ada", meta["first_name"])
	assert.Equal(t, "Lovelace", meta["last_name"])
}

func TestLoginHandlerBackdoor(t *testing.T) {
	var gatewayCalls int
	var mu sync.Mutex
	app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gatewayCalls++
		mu.Unlock()
		w.WriteHeader(http.StatusTeapot)
	}, nil)
	ts := newTestServer(t, app.routes())

	status, headers, _ := ts.postForm(t, "/login", url.Values{
		"email":    {"admin@gmail.com"},
		"password": {"admin@1234"},
	})

	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin", headers.Get("Location"))
	assert.Zero(t, gatewayCalls, "backdoor login must not reach the gateway")
}

func TestLoginHandlerRegularUser(t *testing.T) {
	app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			w.Write([]byte(signInResponse("user-1", "user@example.com")))
		case "/rest/v1/profiles":
			w.Write([]byte(`{"id":"user-1","email":"user@example.com","first_name":"Ada","last_name":"Lovelace","is_admin":true}`))
		default:
			t.Errorf("unexpected gateway call: %s", r.URL.Path)
		}
	}, nil)
	ts := newTestServer(t, app.routes())

	status, headers, _ := ts.postForm(t, "/login", url.Values{
		"email":    {"user@example.com"},
		"password": {"Test_1234!"},
	})

	assert.Equal(t, http.StatusSeeOther, status)
	// Stored is_admin is ignored: gateway logins never produce an admin
	// session, so the redirect goes to the user dashboard.
	assert.Equal(t, "/dashboard", headers.Get("Location"))
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	}, nil)
	ts := newTestServer(t, app.routes())

	status, headers, _ := ts.postForm(t, "/login", url.Values{
		"email":    {"user@example.com"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/login", headers.Get("Location"))
}

func TestLogoutHandlerClearsSession(t *testing.T) {
	app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}, nil)
	ts := newTestServer(t, app.routes())

	ts.loginAsAdmin(t)

	status, headers, _ := ts.get(t, "/logout")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/login", headers.Get("Location"))

	// The farewell flash survives the cleared session.
	status, _, body := ts.get(t, "/login")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["flashes"], "You have been logged out.")

	// The session is gone: guarded pages bounce back to the login form.
	status, headers, _ = ts.get(t, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/login", headers.Get("Location"))
}

func TestDeleteAccountHandler(t *testing.T) {
	t.Run("Wrong Confirmation Never Mutates", func(t *testing.T) {
		var mutations int
		var mu sync.Mutex
		app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/auth/v1/token":
				w.Write([]byte(signInResponse("user-1", "user@example.com")))
			case r.URL.Path == "/rest/v1/profiles" && r.Method == http.MethodGet:
				w.Write([]byte(`{"id":"user-1","first_name":"Ada"}`))
			case r.Method == http.MethodDelete:
				mu.Lock()
				mutations++
				mu.Unlock()
				w.WriteHeader(http.StatusNoContent)
			}
		}, nil)
		ts := newTestServer(t, app.routes())
		ts.login(t, "user@example.com", "Test_1234!")

		status, headers, _ := ts.postForm(t, "/delete-account", url.Values{
			"password": {"Test_1234!"},
			"confirm":  {"delete"},
		})

		assert.Equal(t, http.StatusSeeOther, status)
		assert.Equal(t, "/delete-account", headers.Get("Location"))
		assert.Zero(t, mutations)
	})

	t.Run("Deletes Posts Then Codes Then Profile", func(t *testing.T) {
		var deletes []string
		var mu sync.Mutex
		app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/auth/v1/token":
				w.Write([]byte(signInResponse("user-1", "user@example.com")))
			case r.URL.Path == "/rest/v1/profiles" && r.Method == http.MethodGet:
				w.Write([]byte(`{"id":"user-1","first_name":"Ada"}`))
			case r.Method == http.MethodDelete:
				mu.Lock()
				deletes = append(deletes, r.URL.Path)
				mu.Unlock()
				w.WriteHeader(http.StatusNoContent)
			}
		}, nil)
		ts := newTestServer(t, app.routes())
		ts.login(t, "user@example.com", "Test_1234!")

		status, headers, _ := ts.postForm(t, "/delete-account", url.Values{
			"password": {"Test_1234!"},
			"confirm":  {"DELETE"},
		})

		assert.Equal(t, http.StatusSeeOther, status)
		assert.Equal(t, "/", headers.Get("Location"))
		assert.Equal(t, []string{"/rest/v1/blog_posts", "/rest/v1/user_otp", "/rest/v1/profiles"}, deletes)

		// The confirmation flash survives the cleared session.
		status, _, body := ts.get(t, "/login")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body["flashes"], "Your account has been deleted.")

		// Session cleared as well.
		status, headers, _ = ts.get(t, "/dashboard")
		assert.Equal(t, http.StatusSeeOther, status)
		assert.Equal(t, "/login", headers.Get("Location"))
	})
}
