package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/healthz", app.healthCheckHandler)

	// public pages
	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/post/:id", app.viewPostHandler)

	// auth
	router.HandlerFunc(http.MethodGet, "/register", app.registerFormHandler)
	router.HandlerFunc(http.MethodPost, "/register", app.registerHandler)
	router.HandlerFunc(http.MethodGet, "/login", app.loginFormHandler)
	router.HandlerFunc(http.MethodPost, "/login", app.loginHandler)
	router.HandlerFunc(http.MethodGet, "/logout", app.requireLogin(app.logoutHandler))
	router.HandlerFunc(http.MethodGet, "/delete-account", app.requireLogin(app.deleteAccountFormHandler))
	router.HandlerFunc(http.MethodPost, "/delete-account", app.requireLogin(app.deleteAccountHandler))
	router.HandlerFunc(http.MethodGet, "/profile", app.requireLogin(app.profileHandler))

	// posts
	router.HandlerFunc(http.MethodGet, "/dashboard", app.requireLogin(app.dashboardHandler))
	router.HandlerFunc(http.MethodGet, "/create-post", app.requireLogin(app.createPostFormHandler))
	router.HandlerFunc(http.MethodPost, "/create-post", app.requireLogin(app.createPostHandler))
	router.HandlerFunc(http.MethodGet, "/edit-post/:id", app.requireLogin(app.editPostFormHandler))
	router.HandlerFunc(http.MethodPost, "/edit-post/:id", app.requireLogin(app.editPostHandler))
	router.HandlerFunc(http.MethodPost, "/delete-post/:id", app.requireLogin(app.deletePostHandler))

	// ai assistance
	router.HandlerFunc(http.MethodPost, "/ai/suggest-headline", app.requireLogin(app.rateLimit(app.suggestHeadlineHandler)))
	router.HandlerFunc(http.MethodPost, "/ai/generate-summary", app.requireLogin(app.rateLimit(app.generateSummaryHandler)))
	router.HandlerFunc(http.MethodPost, "/ai/suggest-keywords", app.requireLogin(app.rateLimit(app.suggestKeywordsHandler)))
	router.HandlerFunc(http.MethodPost, "/ai/improve-content", app.requireLogin(app.rateLimit(app.improveContentHandler)))
	router.HandlerFunc(http.MethodPost, "/ai/chatbot", app.requireLogin(app.rateLimit(app.chatbotHandler)))

	// admin
	router.HandlerFunc(http.MethodGet, "/admin", app.requireAdmin(app.adminDashboardHandler))
	router.HandlerFunc(http.MethodPost, "/admin", app.requireAdmin(app.adminCreateUserHandler))
	router.HandlerFunc(http.MethodPost, "/admin/delete-user/:id", app.requireAdmin(app.adminDeleteUserHandler))

	return app.recoverPanic(app.logRequest(router))
}
