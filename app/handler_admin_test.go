package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminDashboardHandler(t *testing.T) {
	app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/profiles":
			assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
			w.Write([]byte(`[{"id":"u1","email":"a@example.com","is_admin":true},{"id":"u2","email":"b@example.com","is_admin":false}]`))
		case "/rest/v1/blog_posts":
			w.Write([]byte(`[{"id":"p1","title":"T","published":false}]`))
		default:
			t.Errorf("unexpected gateway call: %s", r.URL.Path)
		}
	}, nil)
	ts := newTestServer(t, app.routes())
	ts.loginAsAdmin(t)

	status, _, body := ts.get(t, "/admin")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["total_users"])
	assert.Equal(t, float64(1), body["admin_count"])
	posts, ok := body["posts"].([]any)
	assert.True(t, ok)
	assert.Len(t, posts, 1)
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	app := newTestApplication(t, loginGateway("user-1", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected gateway call: %s", r.URL.Path)
	}), nil)
	ts := newTestServer(t, app.routes())
	ts.login(t, "user@example.com", "Test_1234!")

	status, headers, _ := ts.get(t, "/admin")

	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/dashboard", headers.Get("Location"))
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	app := newTestApplication(t, nil, nil)
	ts := newTestServer(t, app.routes())

	status, headers, _ := ts.get(t, "/admin")

	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/login", headers.Get("Location"))
}

func TestAdminCreateUserHandler(t *testing.T) {
	var authCreate map[string]any
	var profileInsert map[string]any
	app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/admin/users":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&authCreate))
			w.Write([]byte(`{"id":"u9","email":"new@example.com"}`))
		case "/rest/v1/profiles":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&profileInsert))
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected gateway call: %s", r.URL.Path)
		}
	}, nil)
	ts := newTestServer(t, app.routes())
	ts.loginAsAdmin(t)

	status, headers, _ := ts.postForm(t, "/admin", url.Values{
		"email":      {"new@example.com"},
		"first_name": {"New"},
		"last_name":  {"Admin"},
		"password":   {"Test_1234!"},
		"is_admin":   {"on"},
	})

	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin", headers.Get("Location"))

	assert.Equal(t, true, authCreate["email_confirm"])
	assert.Equal(t, "u9", profileInsert["id"])
	assert.Equal(t, true, profileInsert["is_admin"])
}

func TestAdminDeleteUserHandler(t *testing.T) {
	var deletedPath string
	var mu sync.Mutex
	app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		mu.Lock()
		deletedPath = r.URL.Path
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}, nil)
	ts := newTestServer(t, app.routes())
	ts.loginAsAdmin(t)

	status, headers, _ := ts.postForm(t, "/admin/delete-user/u7", url.Values{})

	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin", headers.Get("Location"))
	assert.Equal(t, "/auth/v1/admin/users/u7", deletedPath)
}

func TestAdminDeleteUserHandlerSelf(t *testing.T) {
	app := newTestApplication(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no gateway call expected when deleting own account")
	}, nil)
	ts := newTestServer(t, app.routes())
	ts.loginAsAdmin(t)

	status, headers, _ := ts.postForm(t, "/admin/delete-user/admin_user", url.Values{})

	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin", headers.Get("Location"))
}
