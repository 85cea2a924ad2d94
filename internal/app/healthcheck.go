package app

import (
	"context"
	"net/http"
	"time"
)

type healthcheckResponse struct {
	Status     string            `json:"status"`
	SystemInfo map[string]string `json:"systemInfo"`
}

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	httpStatus := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if app.db != nil {
		if err := app.db.Ping(ctx); err != nil {
			app.logError(r, err)
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	if app.redis != nil {
		if err := app.redis.Ping(ctx).Err(); err != nil {
			app.logError(r, err)
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	resp := healthcheckResponse{
		Status: status,
		SystemInfo: map[string]string{
			"version":     version,
			"environment": app.config.Env,
		},
	}

	app.writeJSON(w, httpStatus, resp, nil)
}
