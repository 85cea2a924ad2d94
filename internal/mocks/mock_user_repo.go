package mocks

import (
	"context"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type MockUserRepo struct {
	domain.UserRepository
	CreateWithTokenFunc      func(ctx context.Context, user *domain.User, tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error)
	GetByEmailFunc           func(ctx context.Context, email string) (*domain.User, error)
	GetByIdFunc              func(ctx context.Context, id int) (*domain.User, error)
	GetByTokenFunc           func(ctx context.Context, hash []byte, scope string) (*domain.User, error)
	UpdateFunc               func(ctx context.Context, user *domain.User) error
	ActivateUserFunc         func(ctx context.Context, user *domain.User) error
	GetTeacherProfileFunc    func(ctx context.Context, userID int) (*domain.TeacherProfile, error)
	UpdateTeacherProfileFunc func(ctx context.Context, profile *domain.TeacherProfile) error
	GetStudentProfileFunc    func(ctx context.Context, userID int) (*domain.StudentProfile, error)
	UpdateStudentProfileFunc func(ctx context.Context, profile *domain.StudentProfile) error
}

func (m *MockUserRepo) CreateWithToken(
	ctx context.Context,
	user *domain.User,
	tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {

	return m.CreateWithTokenFunc(ctx, user, tokenFn)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *MockUserRepo) GetById(ctx context.Context, id int) (*domain.User, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockUserRepo) GetByToken(ctx context.Context, hash []byte, scope string) (*domain.User, error) {
	return m.GetByTokenFunc(ctx, hash, scope)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.UpdateFunc(ctx, user)
}

func (m *MockUserRepo) ActivateUser(ctx context.Context, user *domain.User) error {
	return m.ActivateUserFunc(ctx, user)
}

func (m *MockUserRepo) GetTeacherProfile(ctx context.Context, userID int) (*domain.TeacherProfile, error) {
	return m.GetTeacherProfileFunc(ctx, userID)
}

func (m *MockUserRepo) UpdateTeacherProfile(ctx context.Context, profile *domain.TeacherProfile) error {
	return m.UpdateTeacherProfileFunc(ctx, profile)
}

func (m *MockUserRepo) GetStudentProfile(ctx context.Context, userID int) (*domain.StudentProfile, error) {
	return m.GetStudentProfileFunc(ctx, userID)
}

func (m *MockUserRepo) UpdateStudentProfile(ctx context.Context, profile *domain.StudentProfile) error {
	return m.UpdateStudentProfileFunc(ctx, profile)
}
