package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/edusphere/elearning-platform/internal/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func validCreateCourseInput() map[string]any {
	return map[string]any{
		"title":       "Distributed Systems in Go",
		"description": "A deep dive into building distributed systems with Go, from consensus to gossip.",
		"category":    "Programming",
		"level":       "INTERMEDIATE",
		"price":       "4999",
		"duration":    42,
	}
}

func TestGetCourses(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		wantStatus     int
		wantErrMessage string
		wantFilters    *domain.CourseFilters
	}{
		{
			name:       "defaults applied",
			url:        "/courses",
			wantStatus: http.StatusOK,
			wantFilters: &domain.CourseFilters{
				Pagination: domain.Pagination{Page: 1, PageSize: 20, Sort: "created_at"},
			},
		},
		{
			name:       "full filter set",
			url:        "/courses?page=2&pageSize=10&sort=-price&category=Programming&level=BEGINNER&teacherId=3&minPrice=100&maxPrice=5000",
			wantStatus: http.StatusOK,
			wantFilters: &domain.CourseFilters{
				Pagination: domain.Pagination{Page: 2, PageSize: 10, Sort: "-price"},
				Category:   "Programming",
				Level:      "BEGINNER",
				TeacherID:  3,
			},
		},
		{
			name:       "unsafe sort falls back to default",
			url:        "/courses?sort=password_hash",
			wantStatus: http.StatusOK,
			wantFilters: &domain.CourseFilters{
				Pagination: domain.Pagination{Page: 1, PageSize: 20, Sort: "created_at"},
			},
		},
		{
			name:           "non-numeric minPrice",
			url:            "/courses?minPrice=abc",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "minPrice must be a valid number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilters domain.CourseFilters

			app := newTestApplication(func(a *Application) {
				a.courseRepo = &mocks.MockCourseRepo{
					GetAllFunc: func(ctx context.Context, filters domain.CourseFilters) ([]*domain.Course, *domain.Metadata, error) {
						gotFilters = filters
						return []*domain.Course{}, &domain.Metadata{}, nil
					},
				}
			})

			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			app.GetCourses(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantFilters != nil {
				if gotFilters.Pagination != tt.wantFilters.Pagination {
					t.Errorf("pagination = %+v, want %+v", gotFilters.Pagination, tt.wantFilters.Pagination)
				}
				if gotFilters.Category != tt.wantFilters.Category ||
					gotFilters.Level != tt.wantFilters.Level ||
					gotFilters.TeacherID != tt.wantFilters.TeacherID {
					t.Errorf("filters = %+v, want %+v", gotFilters, tt.wantFilters)
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

func TestCreateCourse(t *testing.T) {
	tests := []struct {
		name           string
		input          map[string]any
		mutate         func(map[string]any)
		createFunc     func(ctx context.Context, course *domain.Course) error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:  "successful creation",
			input: validCreateCourseInput(),
			createFunc: func(ctx context.Context, course *domain.Course) error {
				course.ID = 1
				return nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:  "title too short",
			input: validCreateCourseInput(),
			mutate: func(m map[string]any) {
				m["title"] = "Go"
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at least 5 characters long",
		},
		{
			name:  "invalid level",
			input: validCreateCourseInput(),
			mutate: func(m map[string]any) {
				m["level"] = "EXPERT"
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be one of BEGINNER, INTERMEDIATE, ADVANCED or ALL_LEVELS",
		},
		{
			name:  "negative price",
			input: validCreateCourseInput(),
			mutate: func(m map[string]any) {
				m["price"] = "-10"
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "price must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.courseRepo = &mocks.MockCourseRepo{CreateFunc: tt.createFunc}
			})

			if tt.mutate != nil {
				tt.mutate(tt.input)
			}

			w, r := executeRequest(t, http.MethodPost, "/courses", tt.input)
			r = setupTestSession(t, app, r, 2, domain.RoleTeacher)

			handler := http.Handler(http.HandlerFunc(app.CreateCourse))
			handler = app.sessionManager.LoadAndSave(handler)
			handler = app.requireAuthentication(handler)
			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusCreated {
				var resp courseResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if resp.TeacherId != 2 {
					t.Errorf("teacherId = %d, want the authenticated teacher", resp.TeacherId)
				}

				if resp.IsPublished {
					t.Error("new courses must start out unpublished")
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

func ownedCourse(teacherId int) *domain.Course {
	return &domain.Course{
		ID:          1,
		TeacherID:   teacherId,
		Title:       "Distributed Systems in Go",
		Description: "A deep dive into building distributed systems with Go.",
		Category:    "Programming",
		Level:       domain.LevelIntermediate,
		Price:       decimal.NewFromInt(4999),
	}
}

func courseRouter(app *Application) *chi.Mux {
	router := chi.NewRouter()
	router.Use(app.sessionManager.LoadAndSave, app.requireAuthentication)
	router.Patch("/courses/{courseId}", app.UpdateCourse)
	router.Delete("/courses/{courseId}", app.DeleteCourse)
	router.Post("/courses/{courseId}/publish", app.PublishCourse)
	return router
}

func TestUpdateCourseOwnership(t *testing.T) {
	tests := []struct {
		name       string
		userId     int
		role       domain.Role
		wantStatus int
	}{
		{"owner can update", 2, domain.RoleTeacher, http.StatusOK},
		{"other teacher is forbidden", 3, domain.RoleTeacher, http.StatusForbidden},
		{"admin can update any course", 99, domain.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.courseRepo = &mocks.MockCourseRepo{
					GetByIdFunc: func(ctx context.Context, id int) (*domain.Course, error) {
						return ownedCourse(2), nil
					},
					UpdateFunc: func(ctx context.Context, course *domain.Course) error {
						return nil
					},
				}
			})

			w, r := executeRequest(t, http.MethodPatch, "/courses/1", map[string]any{"duration": 50})
			r = setupTestSession(t, app, r, tt.userId, tt.role)

			courseRouter(app).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestDeleteCourse(t *testing.T) {
	tests := []struct {
		name           string
		course         func() *domain.Course
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "delete without enrollments",
			course:     func() *domain.Course { return ownedCourse(2) },
			wantStatus: http.StatusNoContent,
		},
		{
			name: "delete with enrollments is rejected",
			course: func() *domain.Course {
				course := ownedCourse(2)
				course.TotalEnrollments = 12
				return course
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "a course with enrollments cannot be deleted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.courseRepo = &mocks.MockCourseRepo{
					GetByIdFunc: func(ctx context.Context, id int) (*domain.Course, error) {
						return tt.course(), nil
					},
					DeleteFunc: func(ctx context.Context, id int) error {
						return nil
					},
				}
			})

			w, r := executeRequest(t, http.MethodDelete, "/courses/1", nil)
			r = setupTestSession(t, app, r, 2, domain.RoleTeacher)

			courseRouter(app).ServeHTTP(w, r)

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

func TestPublishCourse(t *testing.T) {
	tests := []struct {
		name       string
		course     func() *domain.Course
		wantStatus int
	}{
		{
			name:       "publish a draft",
			course:     func() *domain.Course { return ownedCourse(2) },
			wantStatus: http.StatusOK,
		},
		{
			name: "publishing twice conflicts",
			course: func() *domain.Course {
				course := ownedCourse(2)
				course.IsPublished = true
				return course
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.courseRepo = &mocks.MockCourseRepo{
					GetByIdFunc: func(ctx context.Context, id int) (*domain.Course, error) {
						return tt.course(), nil
					},
					PublishFunc: func(ctx context.Context, id int) error {
						return nil
					},
				}
			})

			w, r := executeRequest(t, http.MethodPost, "/courses/1/publish", nil)
			r = setupTestSession(t, app, r, 2, domain.RoleTeacher)

			courseRouter(app).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var resp courseResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if !resp.IsPublished {
					t.Error("published course must be reported as published")
				}
			}
		})
	}
}
