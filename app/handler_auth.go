package main

import (
	"errors"
	"net/http"

	"github.com/wrenlet/inkwell/internal/blogservice"
	"github.com/wrenlet/inkwell/internal/common"
	"github.com/wrenlet/inkwell/internal/supabase"
	"github.com/wrenlet/inkwell/internal/userservice"
)

func (app *application) registerFormHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{"page": "register", "flashes": app.popFlashes(w, r)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.parseForm(r); err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var (
		email     = r.PostFormValue("email")
		firstName = r.PostFormValue("first_name")
		lastName  = r.PostFormValue("last_name")
		password  = r.PostFormValue("password")
	)

	err := app.userService.Register(r.Context(), email, firstName, lastName, password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.flash(w, r, "This email is already registered. Please log in.")
			app.redirect(w, r, "/login")
		case errors.Is(err, supabase.ErrNotConfigured):
			app.flash(w, r, "Registration is temporarily unavailable.")
			app.redirect(w, r, "/register")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// No auto-login: the account may need email confirmation first.
	app.flash(w, r, "Registration successful! Please log in.")
	app.redirect(w, r, "/login")
}

func (app *application) loginFormHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{"page": "login", "flashes": app.popFlashes(w, r)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.parseForm(r); err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var (
		email    = r.PostFormValue("email")
		password = r.PostFormValue("password")
	)

	sess, err := app.userService.Login(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure),
			errors.Is(err, supabase.ErrNotConfigured):
			app.flash(w, r, "Invalid email or password.")
			app.redirect(w, r, "/login")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := app.saveSession(w, r, sess); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if sess.IsAdmin {
		app.redirect(w, r, "/admin")
		return
	}

	app.redirect(w, r, "/dashboard")
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	// Best effort: the session cookie is cleared no matter what the
	// gateway says.
	if err := app.userService.Logout(r.Context(), user); err != nil {
		app.logError(r, err)
	}

	app.clearSession(w, r)
	app.flash(w, r, "You have been logged out.")
	app.redirect(w, r, "/login")
}

func (app *application) deleteAccountFormHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{"page": "delete-account", "flashes": app.popFlashes(w, r)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.parseForm(r); err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var (
		password = r.PostFormValue("password")
		confirm  = r.PostFormValue("confirm")
	)

	user := app.currentUser(r)

	err := app.userService.DeleteAccount(r.Context(), user, password, confirm)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.flash(w, r, "Incorrect password. Account not deleted.")
			app.redirect(w, r, "/delete-account")
		case errors.As(err, &common.ValidationError{}):
			app.flash(w, r, "You must type DELETE to confirm.")
			app.redirect(w, r, "/delete-account")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.clearSession(w, r)
	app.flash(w, r, "Your account has been deleted.")
	app.redirect(w, r, "/")
}

func (app *application) profileHandler(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	var profile *userservice.Profile
	if user.UserID != userservice.BackdoorUserID {
		p, err := app.userService.GetProfile(r.Context(), user.UserID)
		if err != nil && !errors.Is(err, userservice.ErrNotFound) {
			app.serverErrorResponse(w, r, err)
			return
		}
		profile = p
	}

	posts, err := app.blogService.ListByAuthor(r.Context(), user.UserID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if posts == nil {
		posts = []blogservice.Post{}
	}

	env := envelope{
		"page":    "profile",
		"user":    user,
		"profile": profile,
		"posts":   posts,
		"flashes": app.popFlashes(w, r),
	}

	if err := app.writeJSON(w, http.StatusOK, env, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
