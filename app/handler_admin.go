package main

import (
	"errors"
	"net/http"

	"github.com/wrenlet/inkwell/internal/blogservice"
	"github.com/wrenlet/inkwell/internal/common"
	"github.com/wrenlet/inkwell/internal/userservice"
)

func (app *application) adminDashboardHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.userService.ListProfiles(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if users == nil {
		users = []userservice.Profile{}
	}

	posts, err := app.blogService.ListAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if posts == nil {
		posts = []blogservice.Post{}
	}

	var adminCount int
	for _, u := range users {
		if u.IsAdmin {
			adminCount++
		}
	}

	env := envelope{
		"page":        "admin",
		"users":       users,
		"posts":       posts,
		"total_users": len(users),
		"admin_count": adminCount,
		"flashes":     app.popFlashes(w, r),
	}

	if err := app.writeJSON(w, http.StatusOK, env, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) adminCreateUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.parseForm(r); err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var (
		email     = r.PostFormValue("email")
		firstName = r.PostFormValue("first_name")
		lastName  = r.PostFormValue("last_name")
		password  = r.PostFormValue("password")
		isAdmin   = r.PostFormValue("is_admin") == "on" || r.PostFormValue("is_admin") == "true"
	)

	err := app.userService.AdminCreateUser(r.Context(), email, firstName, lastName, password, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.flash(w, r, "A user with this email already exists.")
			app.redirect(w, r, "/admin")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.flash(w, r, "User created.")
	app.redirect(w, r, "/admin")
}

func (app *application) adminDeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// An administrator cannot delete their own gateway account from
	// here; the backdoor session has no gateway identity anyway.
	user := app.currentUser(r)
	if id == user.UserID {
		app.flash(w, r, "You cannot delete your own account from the admin panel.")
		app.redirect(w, r, "/admin")
		return
	}

	if err := app.userService.AdminDeleteUser(r.Context(), id); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.flash(w, r, "User deleted.")
	app.redirect(w, r, "/admin")
}
