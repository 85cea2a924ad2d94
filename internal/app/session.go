package app

import (
	"log/slog"
	"net/http"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type sessionKey string

const (
	SessionKeyUserId   = sessionKey("userID")
	SessionKeyUserRole = sessionKey("userRole")
)

type contextKey string

const loggerContextKey = contextKey("logger")

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetUserId(r *http.Request) int {
	userId, ok := r.Context().Value(SessionKeyUserId).(int)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}

func (app *Application) contextGetUserRole(r *http.Request) domain.Role {
	role, ok := r.Context().Value(SessionKeyUserRole).(domain.Role)
	if !ok {
		panic("missing user role from context")
	}

	return role
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
