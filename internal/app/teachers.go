package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/edusphere/elearning-platform/internal/media"
	"github.com/shopspring/decimal"
)

type teacherProfileResponse struct {
	Id                 int       `json:"id"`
	UserId             int       `json:"userId"`
	Bio                *string   `json:"bio,omitempty"`
	Specialization     []string  `json:"specialization"`
	Experience         *int      `json:"experience,omitempty"`
	Education          *string   `json:"education,omitempty"`
	Rating             float64   `json:"rating"`
	TotalReviews       int       `json:"totalReviews"`
	VerificationStatus string    `json:"verificationStatus"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toTeacherProfileResponse(profile *domain.TeacherProfile) teacherProfileResponse {
	return teacherProfileResponse{
		Id:                 profile.ID,
		UserId:             profile.UserID,
		Bio:                profile.Bio,
		Specialization:     profile.Specialization,
		Experience:         profile.Experience,
		Education:          profile.Education,
		Rating:             profile.Rating,
		TotalReviews:       profile.TotalReviews,
		VerificationStatus: profile.VerificationStatus,
		CreatedAt:          profile.CreatedAt,
	}
}

func (app *Application) GetTeacherProfile(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	profile, err := app.userRepo.GetTeacherProfile(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toTeacherProfileResponse(profile), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updateTeacherProfileRequest struct {
	Bio            *string  `json:"bio" validate:"omitempty,max=2000"`
	Specialization []string `json:"specialization" validate:"omitempty,max=20,dive,min=1,max=50"`
	Experience     *int     `json:"experience" validate:"omitempty,gte=0,lte=80"`
	Education      *string  `json:"education" validate:"omitempty,max=500"`
}

func (app *Application) UpdateTeacherProfile(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	var input updateTeacherProfileRequest

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

	profile, err := app.userRepo.GetTeacherProfile(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.Bio != nil {
		profile.Bio = input.Bio
	}
	if input.Specialization != nil {
		profile.Specialization = input.Specialization
	}
	if input.Experience != nil {
		profile.Experience = input.Experience
	}
	if input.Education != nil {
		profile.Education = input.Education
	}

	err = app.userRepo.UpdateTeacherProfile(r.Context(), profile)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toTeacherProfileResponse(profile), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTeacherCourses(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	courses, err := app.courseRepo.GetAllByTeacher(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, toCourseResponse(course))
	}

	err = app.writeJSON(w, http.StatusOK, map[string]any{"courses": resp}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type earningResponse struct {
	Id          int             `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (app *Application) GetTeacherEarnings(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	earnings, total, err := app.earningRepo.GetAllByTeacher(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]earningResponse, 0, len(earnings))
	for _, earning := range earnings {
		resp = append(resp, earningResponse{
			Id:          earning.ID,
			Amount:      earning.Amount,
			Source:      earning.Source,
			Description: earning.Description,
			CreatedAt:   earning.CreatedAt,
		})
	}

	err = app.writeJSON(w, http.StatusOK, map[string]any{"earnings": resp, "totalEarnings": total}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTeacherSubscription(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	subscription, err := app.subscriptionRepo.GetByTeacher(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := map[string]any{
		"status":    subscription.Status,
		"amount":    subscription.Amount,
		"startDate": subscription.StartDate,
		"endDate":   subscription.EndDate,
		"active":    subscription.Status == "active" && subscription.EndDate.After(time.Now()),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UploadVerificationDocument stores the teacher's identity document and
// resets the verification status back to pending for re-review.
func (app *Application) UploadVerificationDocument(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	file, header, err := r.FormFile("document")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("a document file must be provided"))
		return
	}
	defer file.Close()

	info, err := app.media.Save(file, header, media.KindDocument)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMediaType), errors.Is(err, domain.ErrMediaTooLarge):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	profile, err := app.userRepo.GetTeacherProfile(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	profile.VerificationDocument = &info.Filename
	profile.VerificationStatus = "pending"

	err = app.userRepo.UpdateTeacherProfile(r.Context(), profile)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, map[string]string{"document": info.Filename}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
