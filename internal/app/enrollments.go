package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type enrollmentResponse struct {
	Id          int        `json:"id"`
	CourseId    int        `json:"courseId"`
	CourseTitle string     `json:"courseTitle,omitempty"`
	CourseThumb *string    `json:"courseThumbnail,omitempty"`
	TeacherName string     `json:"teacherName,omitempty"`
	Progress    int        `json:"progress"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func toEnrollmentResponse(enrollment *domain.Enrollment) enrollmentResponse {
	return enrollmentResponse{
		Id:          enrollment.ID,
		CourseId:    enrollment.CourseID,
		CourseTitle: enrollment.CourseTitle,
		CourseThumb: enrollment.CourseThumb,
		TeacherName: enrollment.TeacherName,
		Progress:    enrollment.Progress,
		EnrolledAt:  enrollment.EnrolledAt,
		CompletedAt: enrollment.CompletedAt,
	}
}

type createEnrollmentRequest struct {
	CourseId int `json:"courseId" validate:"required,gte=1"`
}

// CreateEnrollment is the free-enrollment path. Paid courses must go through
// the payment flow, so a non-zero price is rejected here.
func (app *Application) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	var input createEnrollmentRequest

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

	course, err := app.courseRepo.GetById(r.Context(), input.CourseId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if !course.IsPublished {
		app.badRequestResponse(w, r, domain.ErrCourseNotPublished)
		return
	}

	if course.Price.IsPositive() {
		app.badRequestResponse(w, r, errors.New("this course requires payment to enroll"))
		return
	}

	enrollment := domain.Enrollment{
		StudentID: userId,
		CourseID:  course.ID,
	}

	err = app.enrollmentRepo.Create(r.Context(), &enrollment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyEnrolled):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toEnrollmentResponse(&enrollment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMyEnrollments(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	enrollments, err := app.enrollmentRepo.GetAllByStudent(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]enrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		resp = append(resp, toEnrollmentResponse(enrollment))
	}

	err = app.writeJSON(w, http.StatusOK, map[string]any{"enrollments": resp}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetEnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	courseId, err := app.readIDParam(r, "courseId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	enrollment, err := app.enrollmentRepo.GetByStudentAndCourse(r.Context(), userId, courseId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.writeJSON(w, http.StatusOK, map[string]any{"enrolled": false}, nil)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := map[string]any{
		"enrolled":   true,
		"enrollment": toEnrollmentResponse(enrollment),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updateProgressRequest struct {
	Progress int `json:"progress" validate:"gte=0,lte=100"`
}

func (app *Application) UpdateEnrollmentProgress(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	enrollmentId, err := app.readIDParam(r, "enrollmentId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input updateProgressRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	enrollment := domain.Enrollment{
		ID:        enrollmentId,
		StudentID: userId,
		Progress:  input.Progress,
	}

	err = app.enrollmentRepo.UpdateProgress(r.Context(), &enrollment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toEnrollmentResponse(&enrollment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CompleteEnrollment(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	enrollmentId, err := app.readIDParam(r, "enrollmentId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	enrollment := domain.Enrollment{
		ID:        enrollmentId,
		StudentID: userId,
		Progress:  100,
	}

	err = app.enrollmentRepo.UpdateProgress(r.Context(), &enrollment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toEnrollmentResponse(&enrollment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
