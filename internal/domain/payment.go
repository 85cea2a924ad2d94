package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentPurpose string

const (
	PurposeCourseEnrollment PaymentPurpose = "course_enrollment"
	PurposeSubscription     PaymentPurpose = "subscription"
)

type SubscriptionPlan string

const (
	PlanMonthly SubscriptionPlan = "monthly"
	PlanYearly  SubscriptionPlan = "yearly"
)

// TeacherRevenueShare is the slice of a course sale credited to the teacher;
// the remainder stays with the platform.
var TeacherRevenueShare = decimal.New(85, -2)

type Payment struct {
	ID               int
	PayerUserID      int
	Amount           decimal.Decimal
	Currency         string
	Status           PaymentStatus
	GatewayOrderId   string
	GatewayPaymentId *string
	Purpose          PaymentPurpose
	Metadata         map[string]any
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// Earning is an append-only ledger entry credited to a teacher.
type Earning struct {
	ID          int
	TeacherID   int
	Amount      decimal.Decimal
	Source      string
	Description string
	CreatedAt   time.Time
}

type Subscription struct {
	TeacherID        int
	Status           string
	Amount           decimal.Decimal
	StartDate        time.Time
	EndDate          time.Time
	GatewayPaymentId string
}

// CoursePaymentResult reports what a course-payment confirmation actually
// did. EnrollmentCreated is false when the verify call was a replay or the
// student was already enrolled; in that case no counter bump and no earning
// were written either.
type CoursePaymentResult struct {
	Payment           *Payment
	CourseID          int
	EnrollmentCreated bool
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByOrderId(ctx context.Context, gatewayOrderId string) (*Payment, error)
	GetAllByUser(ctx context.Context, userID int) ([]*Payment, error)

	// ConfirmCoursePayment runs the whole confirmation as one transaction:
	// payment to succeeded, enrollment insert (ON CONFLICT DO NOTHING),
	// course counter bump and teacher earning only when the enrollment row
	// was actually created.
	ConfirmCoursePayment(ctx context.Context, gatewayOrderId, gatewayPaymentId string) (*CoursePaymentResult, error)

	// ConfirmSubscriptionPayment marks the payment succeeded and upserts the
	// teacher's single subscription row in one transaction. The period is
	// derived from the plan stored in the payment metadata, anchored at now.
	ConfirmSubscriptionPayment(ctx context.Context, gatewayOrderId, gatewayPaymentId string, now time.Time) (*Subscription, error)

	MarkFailedByOrderId(ctx context.Context, gatewayOrderId string) error
}

type EarningRepository interface {
	GetAllByTeacher(ctx context.Context, teacherID int) ([]*Earning, decimal.Decimal, error)
}

type SubscriptionRepository interface {
	GetByTeacher(ctx context.Context, teacherID int) (*Subscription, error)
}
