package mocks

import (
	"context"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type MockStatsRepo struct {
	domain.StatsRepository
	GetDashboardStatsFunc func(ctx context.Context) (*domain.DashboardStats, error)
	GetSystemStatsFunc    func(ctx context.Context) (*domain.SystemStats, error)
	GetTeachersFunc       func(ctx context.Context, pagination domain.Pagination) ([]*domain.AdminUserSummary, *domain.Metadata, error)
	GetStudentsFunc       func(ctx context.Context, pagination domain.Pagination) ([]*domain.AdminUserSummary, *domain.Metadata, error)
	GetPaymentsFunc       func(ctx context.Context, pagination domain.Pagination) ([]*domain.AdminPaymentSummary, *domain.Metadata, error)
	GetCoursesFunc        func(ctx context.Context, pagination domain.Pagination) ([]*domain.Course, *domain.Metadata, error)
}

func (m *MockStatsRepo) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return m.GetDashboardStatsFunc(ctx)
}

func (m *MockStatsRepo) GetSystemStats(ctx context.Context) (*domain.SystemStats, error) {
	return m.GetSystemStatsFunc(ctx)
}

func (m *MockStatsRepo) GetTeachers(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.AdminUserSummary, *domain.Metadata, error) {

	return m.GetTeachersFunc(ctx, pagination)
}

func (m *MockStatsRepo) GetStudents(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.AdminUserSummary, *domain.Metadata, error) {

	return m.GetStudentsFunc(ctx, pagination)
}

func (m *MockStatsRepo) GetPayments(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.AdminPaymentSummary, *domain.Metadata, error) {

	return m.GetPaymentsFunc(ctx, pagination)
}

func (m *MockStatsRepo) GetCourses(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.Course, *domain.Metadata, error) {

	return m.GetCoursesFunc(ctx, pagination)
}
