package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/wrenlet/inkwell/internal/common"
)

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ip     = r.RemoteAddr
			method = r.Method
			proto  = r.Proto
			uri    = r.URL.RequestURI()
		)

		app.logger.Info("request from", slog.String("method", method), slog.String("uri", uri), slog.String("remote_addr", ip), slog.String("proto", proto))

		next.ServeHTTP(w, r)
	})
}

// requireLogin guards browser-facing routes: anonymous requests are
// flashed and redirected to the login form.
func (app *application) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := app.currentUser(r)
		if user == nil {
			app.flash(w, r, "Please log in to access this page.")
			app.redirect(w, r, "/login")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireAdmin additionally bounces non-administrators back to their
// dashboard.
func (app *application) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	fn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := app.currentUser(r)
		if !user.IsAdmin {
			app.flash(w, r, "You are not authorized to access that page.")
			app.redirect(w, r, "/dashboard")
			return
		}

		next.ServeHTTP(w, r)
	})

	return app.requireLogin(fn)
}

// rateLimit throttles the AI endpoints per client IP. The limiters
// live in the shared TTL cache so idle clients age out without a
// cleanup goroutine.
func (app *application) rateLimit(next http.HandlerFunc) http.HandlerFunc {
	const (
		requestsPerSecond = 2
		burst             = 4
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		ip := app.clientIP(r)
		key := common.CacheKeyRateLimiter(ip)

		// Concurrent first requests race to insert; the loser adopts
		// the winner's limiter so the burst cap holds per client.
		limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
		if !app.cache.Add(key, limiter) {
			if cached, ok := app.cache.Get(key); ok {
				limiter = cached.(*rate.Limiter)
			}
		}

		if !limiter.Allow() {
			app.rateLimitExceededErrorResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
