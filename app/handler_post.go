package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/wrenlet/inkwell/internal/blogservice"
	"github.com/wrenlet/inkwell/internal/common"
)

func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.blogService.ListPublished(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if posts == nil {
		posts = []blogservice.Post{}
	}

	env := envelope{
		"page":    "home",
		"posts":   posts,
		"flashes": app.popFlashes(w, r),
	}
	if user := app.currentUser(r); user != nil {
		env["user"] = user
	}

	if err := app.writeJSON(w, http.StatusOK, env, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	posts, err := app.blogService.ListByAuthor(r.Context(), user.UserID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if posts == nil {
		posts = []blogservice.Post{}
	}

	env := envelope{
		"page":    "dashboard",
		"user":    user,
		"posts":   posts,
		"flashes": app.popFlashes(w, r),
	}

	if err := app.writeJSON(w, http.StatusOK, env, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createPostFormHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{"page": "create-post", "flashes": app.popFlashes(w, r)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.parseForm(r); err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.currentUser(r)

	req := &blogservice.CreatePostRequest{
		AuthorID: user.UserID,
		Title:    r.PostFormValue("title"),
		Content:  r.PostFormValue("content"),
		VideoURL: r.PostFormValue("video_url"),
		Publish:  r.PostFormValue("action") == "publish",
	}

	// Reject the post before touching storage: an invalid submission
	// must not leave an orphaned object behind.
	if err := req.Validate(); err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// The cover image is optional and its failure must not fail the
	// post itself.
	if url, err := app.uploadCoverImage(r, user.UserID); err != nil {
		app.logError(r, err)
		app.flash(w, r, "Post saved, but the cover image could not be uploaded.")
	} else if url != "" {
		req.CoverImageURL = &url
	}

	_, err := app.blogService.CreatePost(r.Context(), req)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if req.Publish {
		app.flash(w, r, "Post published!")
	} else {
		app.flash(w, r, "Draft saved.")
	}
	app.redirect(w, r, "/dashboard")
}

// uploadCoverImage reads the optional multipart cover_image field and
// stores it. An absent field returns ("", nil).
func (app *application) uploadCoverImage(r *http.Request, authorID string) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}

	file, header, err := r.FormFile("cover_image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if header.Filename == "" {
		return "", nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return app.blogService.UploadCoverImage(r.Context(), authorID, header.Filename, data)
}

func (app *application) editPostFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.currentUser(r)

	post, err := app.blogService.GetPostForEdit(r.Context(), id, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	env := envelope{
		"page":    "edit-post",
		"post":    post,
		"flashes": app.popFlashes(w, r),
	}

	if err := app.writeJSON(w, http.StatusOK, env, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) editPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if err := app.parseForm(r); err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.currentUser(r)

	var (
		title   = r.PostFormValue("title")
		content = r.PostFormValue("content")
		publish = r.PostFormValue("action") == "publish"
	)

	err = app.blogService.UpdatePost(r.Context(), id, user.UserID, title, content, publish)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.flash(w, r, "Post updated.")
	app.redirect(w, r, "/dashboard")
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.currentUser(r)

	err = app.blogService.DeletePost(r.Context(), id, user.UserID, user.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, blogservice.ErrNotAuthorized):
			app.unAuthorizedErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.flash(w, r, "Post deleted.")
	if user.IsAdmin {
		app.redirect(w, r, "/admin")
		return
	}
	app.redirect(w, r, "/dashboard")
}

func (app *application) viewPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var viewerID string
	if user := app.currentUser(r); user != nil {
		viewerID = user.UserID
	}

	post, err := app.blogService.GetVisiblePost(r.Context(), id, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	env := envelope{
		"page":    "post",
		"post":    post,
		"flashes": app.popFlashes(w, r),
	}

	if err := app.writeJSON(w, http.StatusOK, env, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
