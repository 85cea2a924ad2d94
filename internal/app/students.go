package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type studentProfileResponse struct {
	Id        int       `json:"id"`
	UserId    int       `json:"userId"`
	Grade     *string   `json:"grade,omitempty"`
	School    *string   `json:"school,omitempty"`
	Interests []string  `json:"interests"`
	CreatedAt time.Time `json:"createdAt"`
}

func toStudentProfileResponse(profile *domain.StudentProfile) studentProfileResponse {
	return studentProfileResponse{
		Id:        profile.ID,
		UserId:    profile.UserID,
		Grade:     profile.Grade,
		School:    profile.School,
		Interests: profile.Interests,
		CreatedAt: profile.CreatedAt,
	}
}

func (app *Application) GetStudentProfile(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	profile, err := app.userRepo.GetStudentProfile(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toStudentProfileResponse(profile), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updateStudentProfileRequest struct {
	Grade     *string  `json:"grade" validate:"omitempty,max=50"`
	School    *string  `json:"school" validate:"omitempty,max=100"`
	Interests []string `json:"interests" validate:"omitempty,max=20,dive,min=1,max=50"`
}

func (app *Application) UpdateStudentProfile(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	var input updateStudentProfileRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	profile, err := app.userRepo.GetStudentProfile(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.Grade != nil {
		profile.Grade = input.Grade
	}
	if input.School != nil {
		profile.School = input.School
	}
	if input.Interests != nil {
		profile.Interests = input.Interests
	}

	err = app.userRepo.UpdateStudentProfile(r.Context(), profile)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toStudentProfileResponse(profile), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type studentDashboardResponse struct {
	TotalEnrollments  int                  `json:"totalEnrollments"`
	CompletedCourses  int                  `json:"completedCourses"`
	InProgressCourses int                  `json:"inProgressCourses"`
	RecentEnrollments []enrollmentResponse `json:"recentEnrollments"`
}

func (app *Application) GetStudentDashboard(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	dashboard, err := app.enrollmentRepo.GetStudentDashboard(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	enrollments, err := app.enrollmentRepo.GetAllByStudent(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(enrollments) > 5 {
		enrollments = enrollments[:5]
	}

	recent := make([]enrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		recent = append(recent, toEnrollmentResponse(enrollment))
	}

	resp := studentDashboardResponse{
		TotalEnrollments:  dashboard.TotalEnrollments,
		CompletedCourses:  dashboard.CompletedCourses,
		InProgressCourses: dashboard.InProgressCourses,
		RecentEnrollments: recent,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
