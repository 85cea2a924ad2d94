package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats backs the admin overview page.
type DashboardStats struct {
	TotalStudents    int
	TotalTeachers    int
	TotalCourses     int
	TotalEnrollments int
	TotalRevenue     decimal.Decimal
}

// SystemStats is the wider health/ops view of the platform.
type SystemStats struct {
	TotalUsers          int
	ActiveUsers         int
	TotalPayments       int
	SucceededPayments   int
	FailedPayments      int
	TotalRevenue        decimal.Decimal
	AverageCourseRating float64
}

// AdminUserSummary is a flattened user row for admin listings.
type AdminUserSummary struct {
	ProfileID   int
	UserID      int
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber *string
	IsActive    bool
	CreatedAt   time.Time
}

// AdminPaymentSummary joins a payment with its payer for admin listings.
type AdminPaymentSummary struct {
	Payment
	PayerEmail string
	PayerName  string
}

type StatsRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetSystemStats(ctx context.Context) (*SystemStats, error)
	GetTeachers(ctx context.Context, pagination Pagination) ([]*AdminUserSummary, *Metadata, error)
	GetStudents(ctx context.Context, pagination Pagination) ([]*AdminUserSummary, *Metadata, error)
	GetPayments(ctx context.Context, pagination Pagination) ([]*AdminPaymentSummary, *Metadata, error)
	GetCourses(ctx context.Context, pagination Pagination) ([]*Course, *Metadata, error)
}
