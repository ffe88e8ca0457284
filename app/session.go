package main

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/wrenlet/inkwell/internal/userservice"
)

const sessionName = "inkwell_session"

func newSessionStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // browser session
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return store
}

// currentUser reconstructs the session identity from the cookie. A nil
// return means not logged in.
func (app *application) currentUser(r *http.Request) *userservice.Session {
	session, err := app.sessions.Get(r, sessionName)
	if err != nil {
		return nil
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok || userID == "" {
		return nil
	}

	email, _ := session.Values["email"].(string)
	name, _ := session.Values["name"].(string)
	isAdmin, _ := session.Values["is_admin"].(bool)
	token, _ := session.Values["access_token"].(string)

	return &userservice.Session{
		UserID:      userID,
		Email:       email,
		Name:        name,
		IsAdmin:     isAdmin,
		AccessToken: token,
	}
}

func (app *application) saveSession(w http.ResponseWriter, r *http.Request, sess *userservice.Session) error {
	session, _ := app.sessions.Get(r, sessionName)

	session.Values["user_id"] = sess.UserID
	session.Values["email"] = sess.Email
	session.Values["name"] = sess.Name
	session.Values["is_admin"] = sess.IsAdmin
	session.Values["access_token"] = sess.AccessToken

	return session.Save(r, w)
}

// clearSession drops the identity values but leaves the cookie alive,
// so a flash queued right after still reaches the next request.
func (app *application) clearSession(w http.ResponseWriter, r *http.Request) {
	session, _ := app.sessions.Get(r, sessionName)

	for key := range session.Values {
		delete(session.Values, key)
	}

	session.Save(r, w)
}

// flash queues a one-shot message shown by the next view request.
func (app *application) flash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := app.sessions.Get(r, sessionName)
	session.AddFlash(message)
	session.Save(r, w)
}

func (app *application) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := app.sessions.Get(r, sessionName)

	raw := session.Flashes()
	if len(raw) > 0 {
		session.Save(r, w)
	}

	flashes := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			flashes = append(flashes, s)
		}
	}

	return flashes
}
