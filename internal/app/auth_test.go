package app

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/edusphere/elearning-platform/internal/mailer"
	"github.com/edusphere/elearning-platform/internal/mocks"
)

func validRegisterInput() map[string]any {
	return map[string]any{
		"email":     "freddie@example.com",
		"password":  "Pass123!@#",
		"firstName": "Freddie",
		"lastName":  "Mercury",
		"role":      "STUDENT",
	}
}

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		name           string
		input          map[string]any
		mutate         func(map[string]any)
		userRepoFunc   func(ctx context.Context, user *domain.User, tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error)
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:  "successful registration",
			input: validRegisterInput(),
			userRepoFunc: func(ctx context.Context, user *domain.User, tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {
				user.ID = 1
				return tokenFn(user)
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name:  "invalid password format",
			input: validRegisterInput(),
			mutate: func(m map[string]any) {
				m["password"] = "weak"
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantErrMessage: "must be at least 8 characters long and include at least one uppercase letter, one lowercase letter, " +
				"one number, and one special character (!@#$%^&*).",
		},
		{
			name:  "invalid role",
			input: validRegisterInput(),
			mutate: func(m map[string]any) {
				m["role"] = "ADMIN"
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be either STUDENT or TEACHER",
		},
		{
			name:  "missing email",
			input: validRegisterInput(),
			mutate: func(m map[string]any) {
				delete(m, "email")
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:  "duplicate email",
			input: validRegisterInput(),
			userRepoFunc: func(ctx context.Context, user *domain.User, tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {
				return nil, domain.ErrUserAlreadyExists
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid input data",
		},
		{
			name:  "repository failure",
			input: validRegisterInput(),
			userRepoFunc: func(ctx context.Context, user *domain.User, tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {
				return nil, fmt.Errorf("database connection lost")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.userRepo = &mocks.MockUserRepo{CreateWithTokenFunc: tt.userRepoFunc}
			})

			if tt.mutate != nil {
				tt.mutate(tt.input)
			}

			w, r := executeRequest(t, http.MethodPost, "/auth/register", tt.input)
			app.RegisterUser(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusAccepted {
				var resp userResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if resp.Email != "freddie@example.com" || resp.Role != "STUDENT" {
					t.Errorf("unexpected user response: %+v", resp)
				}

				if resp.Activated {
					t.Error("new users must not start out activated")
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestRegisterUserSendsActivationEmail(t *testing.T) {
	mockMailer := &mailer.MockMailer{}

	app := newTestApplication(func(a *Application) {
		a.mailer = mockMailer
		a.userRepo = &mocks.MockUserRepo{
			CreateWithTokenFunc: func(ctx context.Context, user *domain.User, tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {
				user.ID = 1
				return tokenFn(user)
			},
		}
	})

	w, r := executeRequest(t, http.MethodPost, "/auth/register", validRegisterInput())
	app.RegisterUser(w, r)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}

	// the mail goes out on a goroutine
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(mockMailer.Messages()) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	messages := mockMailer.Messages()
	if len(messages) != 1 {
		t.Fatalf("sent %d emails, want 1", len(messages))
	}

	if messages[0].Recipient != "freddie@example.com" {
		t.Errorf("recipient = %s, want freddie@example.com", messages[0].Recipient)
	}

	if messages[0].TemplateFile != "user_welcome.tmpl" {
		t.Errorf("template = %s, want user_welcome.tmpl", messages[0].TemplateFile)
	}
}

func TestActivateUser(t *testing.T) {
	plaintext := "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567ABCDEFGHIJK" // 43 chars
	hash := sha256.Sum256([]byte(plaintext))

	tests := []struct {
		name           string
		token          string
		getByTokenFunc func(ctx context.Context, tokenHash []byte, scope string) (*domain.User, error)
		activateFunc   func(ctx context.Context, user *domain.User) error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:  "successful activation",
			token: plaintext,
			getByTokenFunc: func(ctx context.Context, tokenHash []byte, scope string) (*domain.User, error) {
				return &domain.User{ID: 1, Activated: false}, nil
			},
			activateFunc: func(ctx context.Context, user *domain.User) error {
				return nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:           "token with wrong length",
			token:          "too-short",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is invalid",
		},
		{
			name:  "unknown token",
			token: plaintext,
			getByTokenFunc: func(ctx context.Context, tokenHash []byte, scope string) (*domain.User, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:  "already activated user",
			token: plaintext,
			getByTokenFunc: func(ctx context.Context, tokenHash []byte, scope string) (*domain.User, error) {
				return &domain.User{ID: 1, Activated: true}, nil
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.userRepo = &mocks.MockUserRepo{
					GetByTokenFunc: func(ctx context.Context, tokenHash []byte, scope string) (*domain.User, error) {
						if string(tokenHash) != string(hash[:]) {
							t.Error("token hash does not match sha256 of the plaintext")
						}
						return tt.getByTokenFunc(ctx, tokenHash, scope)
					},
					ActivateUserFunc: tt.activateFunc,
				}
			})

			w, r := executeRequest(t, http.MethodPost, "/auth/activate", map[string]string{"token": tt.token})
			app.ActivateUser(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestLogin(t *testing.T) {
	activeUser := func() *domain.User {
		user := &domain.User{
			ID:        1,
			Email:     "freddie@example.com",
			FirstName: "Freddie",
			Role:      domain.RoleStudent,
			IsActive:  true,
			Activated: true,
		}
		if err := user.Password.Set("Pass123!@#"); err != nil {
			t.Fatal(err)
		}
		return user
	}

	tests := []struct {
		name           string
		input          map[string]string
		getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:  "successful login",
			input: map[string]string{"email": "freddie@example.com", "password": "Pass123!@#"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return activeUser(), nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "unknown email",
			input: map[string]string{"email": "nobody@example.com", "password": "Pass123!@#"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: "Invalid credentials",
		},
		{
			name:  "wrong password",
			input: map[string]string{"email": "freddie@example.com", "password": "WrongPass1!"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return activeUser(), nil
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: "Invalid credentials",
		},
		{
			name:           "malformed email short-circuits as invalid credentials",
			input:          map[string]string{"email": "not-an-email", "password": "Pass123!@#"},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: "Invalid credentials",
		},
		{
			name:  "deactivated account",
			input: map[string]string{"email": "freddie@example.com", "password": "Pass123!@#"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				user := activeUser()
				user.IsActive = false
				return user, nil
			},
			wantStatus:     http.StatusForbidden,
			wantErrMessage: "You don't have permission to access this resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.userRepo = &mocks.MockUserRepo{GetByEmailFunc: tt.getByEmailFunc}
			})

			w, r := executeRequest(t, http.MethodPost, "/auth/login", tt.input)

			handler := app.sessionManager.LoadAndSave(http.HandlerFunc(app.Login))
			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var resp userResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if resp.Id != 1 {
					t.Errorf("user id = %d, want 1", resp.Id)
				}

				if len(w.Result().Cookies()) == 0 {
					t.Error("expected a session cookie on successful login")
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}
