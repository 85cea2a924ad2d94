package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
)

func (app *Application) GetAdminDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := app.statsRepo.GetDashboardStats(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := map[string]any{
		"totalStudents":    stats.TotalStudents,
		"totalTeachers":    stats.TotalTeachers,
		"totalCourses":     stats.TotalCourses,
		"totalEnrollments": stats.TotalEnrollments,
		"totalRevenue":     stats.TotalRevenue,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAdminSystemStats(w http.ResponseWriter, r *http.Request) {
	stats, err := app.statsRepo.GetSystemStats(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := map[string]any{
		"totalUsers":          stats.TotalUsers,
		"activeUsers":         stats.ActiveUsers,
		"totalPayments":       stats.TotalPayments,
		"succeededPayments":   stats.SucceededPayments,
		"failedPayments":      stats.FailedPayments,
		"totalRevenue":        stats.TotalRevenue,
		"averageCourseRating": stats.AverageCourseRating,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type adminUserResponse struct {
	ProfileId   int       `json:"profileId"`
	UserId      int       `json:"userId"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	PhoneNumber *string   `json:"phoneNumber,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toAdminUserResponse(summary *domain.AdminUserSummary) adminUserResponse {
	return adminUserResponse{
		ProfileId:   summary.ProfileID,
		UserId:      summary.UserID,
		Email:       summary.Email,
		FirstName:   summary.FirstName,
		LastName:    summary.LastName,
		PhoneNumber: summary.PhoneNumber,
		IsActive:    summary.IsActive,
		CreatedAt:   summary.CreatedAt,
	}
}

func (app *Application) GetAdminTeachers(w http.ResponseWriter, r *http.Request) {
	app.listAdminUsers(w, r, app.statsRepo.GetTeachers, "teachers")
}

func (app *Application) GetAdminStudents(w http.ResponseWriter, r *http.Request) {
	app.listAdminUsers(w, r, app.statsRepo.GetStudents, "students")
}

func (app *Application) listAdminUsers(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, pagination domain.Pagination) ([]*domain.AdminUserSummary, *domain.Metadata, error),
	key string) {

	pagination := readPagination(r.URL.Query(), "created_at", "created_at", "-created_at")

	summaries, metadata, err := fetch(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]adminUserResponse, 0, len(summaries))
	for _, summary := range summaries {
		resp = append(resp, toAdminUserResponse(summary))
	}

	err = app.writeJSON(w, http.StatusOK, map[string]any{key: resp, "metadata": toMetadataResponse(metadata)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAdminPayments(w http.ResponseWriter, r *http.Request) {
	pagination := readPagination(r.URL.Query(), "-created_at", "created_at", "-created_at", "amount", "-amount")

	payments, metadata, err := app.statsRepo.GetPayments(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]map[string]any, 0, len(payments))
	for _, payment := range payments {
		resp = append(resp, map[string]any{
			"id":               payment.ID,
			"payerEmail":       payment.PayerEmail,
			"payerName":        payment.PayerName,
			"amount":           payment.Amount,
			"currency":         payment.Currency,
			"status":           payment.Status,
			"purpose":          payment.Purpose,
			"gatewayOrderId":   payment.GatewayOrderId,
			"gatewayPaymentId": payment.GatewayPaymentId,
			"createdAt":        payment.CreatedAt,
		})
	}

	err = app.writeJSON(w, http.StatusOK, map[string]any{"payments": resp, "metadata": toMetadataResponse(metadata)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAdminCourses(w http.ResponseWriter, r *http.Request) {
	pagination := readPagination(r.URL.Query(), "-created_at", "created_at", "-created_at", "title", "rating", "-rating")

	courses, metadata, err := app.statsRepo.GetCourses(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, toCourseResponse(course))
	}

	err = app.writeJSON(w, http.StatusOK, map[string]any{"courses": resp, "metadata": toMetadataResponse(metadata)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetContactMessages(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	onlyUnread := readString(qs, "unread", "") == "true"
	pagination := readPagination(qs, "-created_at", "created_at", "-created_at")

	messages, metadata, err := app.contactRepo.GetAll(r.Context(), onlyUnread, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]contactMessageResponse, 0, len(messages))
	for _, message := range messages {
		resp = append(resp, toContactMessageResponse(message))
	}

	err = app.writeJSON(w, http.StatusOK, map[string]any{"messages": resp, "metadata": toMetadataResponse(metadata)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) MarkContactMessageRead(w http.ResponseWriter, r *http.Request) {
	messageId, err := app.readIDParam(r, "messageId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	message, err := app.contactRepo.MarkAsRead(r.Context(), messageId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toContactMessageResponse(message), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
