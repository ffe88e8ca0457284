package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnconfiguredClient(t *testing.T) {
	c := New("", "")

	assert.False(t, c.Enabled())

	var rows []map[string]any
	err := c.From("profiles").Select(context.Background(), &rows)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = c.SignInWithPassword(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, ErrNotConfigured)

	err = c.Upload(context.Background(), "blog-images", "x/y.png", []byte("img"), "image/png")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestQuerySelect(t *testing.T) {
	var gotPath, gotQuery, gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"p1","title":"Hello"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon-key")

	var rows []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	err := c.From("blog_posts").Eq("published", "true").OrderDesc("created_at").Select(context.Background(), &rows)
	assert.NoError(t, err)
	assert.Equal(t, "/rest/v1/blog_posts", gotPath)
	assert.Contains(t, gotQuery, "published=eq.true")
	assert.Contains(t, gotQuery, "order=created_at.desc")
	assert.Equal(t, "anon-key", gotKey)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Hello", rows[0].Title)
}

func TestQuerySingleNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"message":"JSON object requested, multiple (or no) rows returned"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon-key")

	var row map[string]any
	err := c.From("blog_posts").Eq("id", "missing").Single(context.Background(), &row)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestQueryInsertReturning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p1","title":"Hello","published":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon-key")

	var row struct {
		ID        string `json:"id"`
		Published bool   `json:"published"`
	}
	err := c.From("blog_posts").Insert(context.Background(), map[string]any{"title": "Hello"}, &row)
	assert.NoError(t, err)
	assert.Equal(t, "p1", row.ID)
	assert.True(t, row.Published)
}

func TestQueryDeleteNoRowsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "anon-key")

	err := c.From("user_otp").Eq("user_id", "nobody").Delete(context.Background())
	assert.NoError(t, err)
}

func TestSignInWithPassword(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		wantToken string
	}{
		{
			name:      "Valid Credentials",
			status:    http.StatusOK,
			body:      `{"access_token":"tok-1","user":{"id":"u1","email":"a@b.com"}}`,
			wantToken: "tok-1",
		},
		{
			name:    "Invalid Credentials",
			status:  http.StatusBadRequest,
			body:    `{"error_description":"Invalid login credentials"}`,
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "Upstream Failure",
			status:  http.StatusInternalServerError,
			body:    `{"msg":"internal error"}`,
			wantErr: &APIError{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/v1/token", r.URL.Path)
				assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, "anon-key")

			session, err := c.SignInWithPassword(context.Background(), "a@b.com", "pw")
			switch want := tc.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
				assert.Equal(t, tc.wantToken, session.AccessToken)
				assert.Equal(t, "u1", session.User.ID)
			case *APIError:
				var apiErr *APIError
				assert.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tc.status, apiErr.Status)
			default:
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"msg":"User already registered"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon-key")

	_, err := c.SignUp(context.Background(), "a@b.com", "pw", map[string]any{"first_name": "Ada"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestStorageUploadAndPublicURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/blog-images/u1/token_pic.png", r.URL.Path)
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"Key":"blog-images/u1/token_pic.png"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "service-key")

	err := c.Upload(context.Background(), "blog-images", "u1/token_pic.png", []byte("img"), "image/png")
	assert.NoError(t, err)

	assert.Equal(t, srv.URL+"/storage/v1/object/public/blog-images/u1/token_pic.png", c.PublicURL("blog-images", "u1/token_pic.png"))
}
