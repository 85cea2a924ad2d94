package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/shopspring/decimal"
)

type courseResponse struct {
	Id               int             `json:"id"`
	TeacherId        int             `json:"teacherId"`
	TeacherName      string          `json:"teacherName,omitempty"`
	TeacherImage     *string         `json:"teacherImage,omitempty"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	ShortDescription *string         `json:"shortDescription,omitempty"`
	Category         string          `json:"category"`
	Level            string          `json:"level"`
	Price            decimal.Decimal `json:"price"`
	Duration         int             `json:"duration"`
	ThumbnailImage   *string         `json:"thumbnailImage,omitempty"`
	Syllabus         *string         `json:"syllabus,omitempty"`
	IsPublished      bool            `json:"isPublished"`
	Rating           float64         `json:"rating"`
	TotalEnrollments int             `json:"totalEnrollments"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func toCourseResponse(course *domain.Course) courseResponse {
	return courseResponse{
		Id:               course.ID,
		TeacherId:        course.TeacherID,
		TeacherName:      course.TeacherName,
		TeacherImage:     course.TeacherImage,
		Title:            course.Title,
		Description:      course.Description,
		ShortDescription: course.ShortDescription,
		Category:         course.Category,
		Level:            string(course.Level),
		Price:            course.Price,
		Duration:         course.Duration,
		ThumbnailImage:   course.ThumbnailImage,
		Syllabus:         course.Syllabus,
		IsPublished:      course.IsPublished,
		Rating:           course.Rating,
		TotalEnrollments: course.TotalEnrollments,
		CreatedAt:        course.CreatedAt,
	}
}

type metadataResponse struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

func toMetadataResponse(metadata *domain.Metadata) metadataResponse {
	return metadataResponse{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

func (app *Application) GetCourses(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filters := domain.CourseFilters{
		Pagination: readPagination(qs, "created_at", "created_at", "-created_at", "price", "-price", "rating", "-rating", "title"),
		Category:   readString(qs, "category", ""),
		Level:      readString(qs, "level", ""),
		TeacherID:  readInt(qs, "teacherId", 0),
	}

	if minPrice := readString(qs, "minPrice", ""); minPrice != "" {
		value, err := decimal.NewFromString(minPrice)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("minPrice must be a valid number"))
			return
		}
		filters.MinPrice = &value
	}

	if maxPrice := readString(qs, "maxPrice", ""); maxPrice != "" {
		value, err := decimal.NewFromString(maxPrice)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("maxPrice must be a valid number"))
			return
		}
		filters.MaxPrice = &value
	}

	courses, metadata, err := app.courseRepo.GetAll(r.Context(), filters)
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

func (app *Application) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseId, err := app.readIDParam(r, "courseId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	course, err := app.courseRepo.GetById(r.Context(), courseId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	reviews, _, err := app.reviewRepo.GetAll(r.Context(), domain.ReviewFilters{
		Pagination: domain.Pagination{Page: 1, PageSize: 5, Sort: "-created_at"},
		CourseID:   courseId,
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	recentReviews := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		recentReviews = append(recentReviews, toReviewResponse(review))
	}

	resp := map[string]any{
		"course":        toCourseResponse(course),
		"recentReviews": recentReviews,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type createCourseRequest struct {
	Title            string          `json:"title" validate:"required,min=5,max=100"`
	Description      string          `json:"description" validate:"required,min=20"`
	ShortDescription *string         `json:"shortDescription" validate:"omitempty,max=300"`
	Category         string          `json:"category" validate:"required,min=2,max=50"`
	Level            string          `json:"level" validate:"required,course_level"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	Duration         int             `json:"duration" validate:"gte=0"`
	ThumbnailImage   *string         `json:"thumbnailImage"`
	Syllabus         *string         `json:"syllabus"`
}

func (app *Application) CreateCourse(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	var input createCourseRequest

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

	if input.Price.IsNegative() {
		app.badRequestResponse(w, r, errors.New("price must not be negative"))
		return
	}

	course := domain.Course{
		TeacherID:        userId,
		Title:            input.Title,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Category:         input.Category,
		Level:            domain.CourseLevel(input.Level),
		Price:            input.Price,
		Duration:         input.Duration,
		ThumbnailImage:   input.ThumbnailImage,
		Syllabus:         input.Syllabus,
	}

	err = app.courseRepo.Create(r.Context(), &course)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toCourseResponse(&course), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updateCourseRequest struct {
	Title            *string          `json:"title" validate:"omitempty,min=5,max=100"`
	Description      *string          `json:"description" validate:"omitempty,min=20"`
	ShortDescription *string          `json:"shortDescription" validate:"omitempty,max=300"`
	Category         *string          `json:"category" validate:"omitempty,min=2,max=50"`
	Level            *string          `json:"level" validate:"omitempty,course_level"`
	Price            *decimal.Decimal `json:"price"`
	Duration         *int             `json:"duration" validate:"omitempty,gte=0"`
	ThumbnailImage   *string          `json:"thumbnailImage"`
	Syllabus         *string          `json:"syllabus"`
}

// getOwnedCourse loads the course and enforces that the caller is its
// teacher, unless the caller is an admin.
func (app *Application) getOwnedCourse(w http.ResponseWriter, r *http.Request) (*domain.Course, bool) {
	courseId, err := app.readIDParam(r, "courseId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	course, err := app.courseRepo.GetById(r.Context(), courseId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return nil, false
	}

	if app.contextGetUserRole(r) != domain.RoleAdmin && course.TeacherID != app.contextGetUserId(r) {
		app.forbiddenResponse(w, r)
		return nil, false
	}

	return course, true
}

func (app *Application) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	course, ok := app.getOwnedCourse(w, r)
	if !ok {
		return
	}

	var input updateCourseRequest

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

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.ShortDescription != nil {
		course.ShortDescription = input.ShortDescription
	}
	if input.Category != nil {
		course.Category = *input.Category
	}
	if input.Level != nil {
		course.Level = domain.CourseLevel(*input.Level)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			app.badRequestResponse(w, r, errors.New("price must not be negative"))
			return
		}
		course.Price = *input.Price
	}
	if input.Duration != nil {
		course.Duration = *input.Duration
	}
	if input.ThumbnailImage != nil {
		course.ThumbnailImage = input.ThumbnailImage
	}
	if input.Syllabus != nil {
		course.Syllabus = input.Syllabus
	}

	err = app.courseRepo.Update(r.Context(), course)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toCourseResponse(course), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	course, ok := app.getOwnedCourse(w, r)
	if !ok {
		return
	}

	if course.TotalEnrollments > 0 {
		app.badRequestResponse(w, r, errors.New("a course with enrollments cannot be deleted"))
		return
	}

	err := app.courseRepo.Delete(r.Context(), course.ID)
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

func (app *Application) PublishCourse(w http.ResponseWriter, r *http.Request) {
	course, ok := app.getOwnedCourse(w, r)
	if !ok {
		return
	}

	if course.IsPublished {
		app.editConflictResponse(w, r)
		return
	}

	err := app.courseRepo.Publish(r.Context(), course.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	course.IsPublished = true

	err = app.writeJSON(w, http.StatusOK, toCourseResponse(course), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
