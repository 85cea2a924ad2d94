package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
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

// requestLogger attaches a request-scoped logger to the context so handlers
// get the request id on every log line for free.
func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("requestId", middleware.GetReqID(r.Context()))

		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
		if userId == 0 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		role := domain.Role(app.sessionManager.GetString(r.Context(), SessionKeyUserRole.String()))

		ctx := context.WithValue(r.Context(), SessionKeyUserId, userId)
		ctx = context.WithValue(ctx, SessionKeyUserRole, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) requireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := app.contextGetUserRole(r)

			for _, role := range roles {
				if userRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			app.forbiddenResponse(w, r)
		})
	}
}

// rateLimit is a fixed-window limiter keyed by client IP, backed by Redis so
// the limit holds across instances.
func (app *Application) rateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			key := fmt.Sprintf("ratelimit:%s:%s", r.URL.Path, ip)

			count, err := app.redis.Incr(r.Context(), key).Result()
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}

			if count == 1 {
				err = app.redis.Expire(r.Context(), key, window).Err()
				if err != nil {
					app.serverErrorResponse(w, r, err)
					return
				}
			}

			if count > int64(limit) {
				app.rateLimitExceededResponse(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
