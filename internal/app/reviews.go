package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type reviewResponse struct {
	Id           int       `json:"id"`
	StudentId    int       `json:"studentId"`
	StudentName  string    `json:"studentName,omitempty"`
	StudentImage *string   `json:"studentImage,omitempty"`
	CourseId     *int      `json:"courseId,omitempty"`
	TeacherId    *int      `json:"teacherId,omitempty"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toReviewResponse(review *domain.Review) reviewResponse {
	return reviewResponse{
		Id:           review.ID,
		StudentId:    review.StudentID,
		StudentName:  review.StudentName,
		StudentImage: review.StudentImage,
		CourseId:     review.CourseID,
		TeacherId:    review.TeacherID,
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreatedAt,
	}
}

type createReviewRequest struct {
	CourseId  *int    `json:"courseId" validate:"omitempty,gte=1"`
	TeacherId *int    `json:"teacherId" validate:"omitempty,gte=1"`
	Rating    int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   *string `json:"comment" validate:"omitempty,max=2000"`
}

func (app *Application) CreateReview(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	var input createReviewRequest

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

	// A review targets a course or a teacher, never both and never neither.
	if (input.CourseId == nil) == (input.TeacherId == nil) {
		app.badRequestResponse(w, r, errors.New("exactly one of courseId or teacherId must be provided"))
		return
	}

	// Only enrolled students may review a course.
	if input.CourseId != nil {
		_, err := app.enrollmentRepo.GetByStudentAndCourse(r.Context(), userId, *input.CourseId)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrRecordNotFound):
				app.forbiddenResponse(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}

			return
		}
	}

	review := domain.Review{
		StudentID: userId,
		CourseID:  input.CourseId,
		TeacherID: input.TeacherId,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	err = app.reviewRepo.Create(r.Context(), &review)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyReviewed):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toReviewResponse(&review), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetReviews(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filters := domain.ReviewFilters{
		Pagination: readPagination(qs, "-created_at", "created_at", "-created_at", "rating", "-rating"),
		CourseID:   readInt(qs, "courseId", 0),
		TeacherID:  readInt(qs, "teacherId", 0),
	}

	if filters.CourseID == 0 && filters.TeacherID == 0 {
		app.badRequestResponse(w, r, errors.New("either courseId or teacherId must be provided"))
		return
	}

	reviews, metadata, err := app.reviewRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		resp = append(resp, toReviewResponse(review))
	}

	err = app.writeJSON(w, http.StatusOK, map[string]any{"reviews": resp, "metadata": toMetadataResponse(metadata)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

func (app *Application) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	reviewId, err := app.readIDParam(r, "reviewId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input updateReviewRequest

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

	review := domain.Review{
		ID:        reviewId,
		StudentID: userId,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	err = app.reviewRepo.Update(r.Context(), &review)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toReviewResponse(&review), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	reviewId, err := app.readIDParam(r, "reviewId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.reviewRepo.GetById(r.Context(), reviewId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if review.StudentID != userId {
		app.forbiddenResponse(w, r)
		return
	}

	err = app.reviewRepo.Delete(r.Context(), reviewId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
