package app

import (
	"net/http"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type contactMessageResponse struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func toContactMessageResponse(message *domain.ContactMessage) contactMessageResponse {
	return contactMessageResponse{
		Id:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Subject:   message.Subject,
		Message:   message.Message,
		IsRead:    message.IsRead,
		CreatedAt: message.CreatedAt,
	}
}

type contactMessageRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (app *Application) CreateContactMessage(w http.ResponseWriter, r *http.Request) {
	var input contactMessageRequest

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

	message := &domain.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}

	err = app.contactRepo.Create(r.Context(), message)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toContactMessageResponse(message), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
