package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func (p *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (payer_user_id, amount, currency, status, gateway_order_id, purpose, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	return p.db.QueryRow(ctx,
		query,
		payment.PayerUserID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.GatewayOrderId,
		payment.Purpose,
		payment.Metadata).Scan(&payment.ID, &payment.CreatedAt)
}

func (p *PostgresPaymentRepository) GetByOrderId(ctx context.Context, gatewayOrderId string) (*domain.Payment, error) {
	query := `
		SELECT id, payer_user_id, amount, currency, status, gateway_order_id,
			gateway_payment_id, purpose, metadata, created_at, updated_at
		FROM payments
		WHERE gateway_order_id = $1
	`

	payment, err := scanPayment(p.db.QueryRow(ctx, query, gatewayOrderId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return payment, nil
}

func (p *PostgresPaymentRepository) GetAllByUser(ctx context.Context, userID int) ([]*domain.Payment, error) {
	query := `
		SELECT id, payer_user_id, amount, currency, status, gateway_order_id,
			gateway_payment_id, purpose, metadata, created_at, updated_at
		FROM payments
		WHERE payer_user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*domain.Payment{}

	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var payment domain.Payment

	err := row.Scan(
		&payment.ID,
		&payment.PayerUserID,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.GatewayOrderId,
		&payment.GatewayPaymentId,
		&payment.Purpose,
		&payment.Metadata,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// ConfirmCoursePayment settles a verified course payment. The pending row is
// locked first so that a concurrent verify call and webhook delivery for the
// same order serialize; whichever loses the race sees status 'succeeded' and
// becomes a no-op replay.
func (p *PostgresPaymentRepository) ConfirmCoursePayment(
	ctx context.Context,
	gatewayOrderId, gatewayPaymentId string) (*domain.CoursePaymentResult, error) {

	var result domain.CoursePaymentResult

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT id, payer_user_id, amount, currency, status, gateway_order_id,
				gateway_payment_id, purpose, metadata, created_at, updated_at
			FROM payments
			WHERE gateway_order_id = $1 AND purpose = 'course_enrollment'
			FOR UPDATE
		`

		payment, err := scanPayment(tx.QueryRow(ctx, query, gatewayOrderId))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		courseID, err := metadataInt(payment.Metadata, "course_id")
		if err != nil {
			return err
		}

		result.Payment = payment
		result.CourseID = courseID

		if payment.Status == domain.PaymentStatusSucceeded {
			return nil
		}

		query = `
			UPDATE payments
			SET status = 'succeeded', gateway_payment_id = $1, updated_at = NOW()
			WHERE id = $2
		`

		_, err = tx.Exec(ctx, query, gatewayPaymentId, payment.ID)
		if err != nil {
			return err
		}

		payment.Status = domain.PaymentStatusSucceeded
		payment.GatewayPaymentId = &gatewayPaymentId

		query = `
			INSERT INTO enrollments (student_id, course_id)
			VALUES ($1, $2)
			ON CONFLICT (student_id, course_id) DO NOTHING
			RETURNING id
		`

		var enrollmentID int

		err = tx.QueryRow(ctx, query, payment.PayerUserID, courseID).Scan(&enrollmentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Already enrolled through some other path; the payment is
				// settled but no side effects are repeated.
				return nil
			}

			return err
		}

		result.EnrollmentCreated = true

		query = `
			UPDATE courses
			SET total_enrollments = total_enrollments + 1
			WHERE id = $1
			RETURNING teacher_id, title
		`

		var teacherID int
		var courseTitle string

		err = tx.QueryRow(ctx, query, courseID).Scan(&teacherID, &courseTitle)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO earnings (teacher_id, amount, source, description)
			VALUES ($1, $2, 'course_sale', $3)
		`

		teacherCut := payment.Amount.Mul(domain.TeacherRevenueShare).Round(2)
		description := fmt.Sprintf("Sale of course %q", courseTitle)

		_, err = tx.Exec(ctx, query, teacherID, teacherCut, description)

		return err
	})

	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (p *PostgresPaymentRepository) ConfirmSubscriptionPayment(
	ctx context.Context,
	gatewayOrderId, gatewayPaymentId string,
	now time.Time) (*domain.Subscription, error) {

	var subscription domain.Subscription

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT id, payer_user_id, amount, currency, status, gateway_order_id,
				gateway_payment_id, purpose, metadata, created_at, updated_at
			FROM payments
			WHERE gateway_order_id = $1 AND purpose = 'subscription'
			FOR UPDATE
		`

		payment, err := scanPayment(tx.QueryRow(ctx, query, gatewayOrderId))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if payment.Status == domain.PaymentStatusSucceeded {
			query = `
				SELECT teacher_id, status, amount, start_date, end_date, gateway_payment_id
				FROM subscriptions
				WHERE teacher_id = $1
			`

			return tx.QueryRow(ctx, query, payment.PayerUserID).Scan(
				&subscription.TeacherID,
				&subscription.Status,
				&subscription.Amount,
				&subscription.StartDate,
				&subscription.EndDate,
				&subscription.GatewayPaymentId,
			)
		}

		query = `
			UPDATE payments
			SET status = 'succeeded', gateway_payment_id = $1, updated_at = NOW()
			WHERE id = $2
		`

		_, err = tx.Exec(ctx, query, gatewayPaymentId, payment.ID)
		if err != nil {
			return err
		}

		plan, _ := payment.Metadata["plan"].(string)

		endDate := now.AddDate(0, 1, 0)
		if domain.SubscriptionPlan(plan) == domain.PlanYearly {
			endDate = now.AddDate(1, 0, 0)
		}

		query = `
			INSERT INTO subscriptions (teacher_id, status, amount, start_date, end_date, gateway_payment_id)
			VALUES ($1, 'active', $2, $3, $4, $5)
			ON CONFLICT (teacher_id) DO UPDATE
			SET status = 'active', amount = EXCLUDED.amount, start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date, gateway_payment_id = EXCLUDED.gateway_payment_id
			RETURNING teacher_id, status, amount, start_date, end_date, gateway_payment_id
		`

		return tx.QueryRow(ctx,
			query,
			payment.PayerUserID,
			payment.Amount,
			now,
			endDate,
			gatewayPaymentId).Scan(
			&subscription.TeacherID,
			&subscription.Status,
			&subscription.Amount,
			&subscription.StartDate,
			&subscription.EndDate,
			&subscription.GatewayPaymentId,
		)
	})

	if err != nil {
		return nil, err
	}

	return &subscription, nil
}

// MarkFailedByOrderId records a gateway failure. Payments that already
// succeeded are left alone since a capture always wins over a late failure
// notification.
func (p *PostgresPaymentRepository) MarkFailedByOrderId(ctx context.Context, gatewayOrderId string) error {
	query := `
		UPDATE payments
		SET status = 'failed', updated_at = NOW()
		WHERE gateway_order_id = $1 AND status = 'pending'
	`

	result, err := p.db.Exec(ctx, query, gatewayOrderId)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		var exists bool

		err = p.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM payments WHERE gateway_order_id = $1)`,
			gatewayOrderId).Scan(&exists)

		if err != nil {
			return err
		}

		if !exists {
			return domain.ErrRecordNotFound
		}
	}

	return nil
}

func metadataInt(metadata map[string]any, key string) (int, error) {
	switch v := metadata[key].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("payment metadata missing %q", key)
	}
}

type PostgresEarningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresEarningRepository(db *pgxpool.Pool) *PostgresEarningRepository {
	return &PostgresEarningRepository{
		db: db,
	}
}

func (p *PostgresEarningRepository) GetAllByTeacher(
	ctx context.Context,
	teacherID int) ([]*domain.Earning, decimal.Decimal, error) {

	query := `
		SELECT id, teacher_id, amount, source, description, created_at
		FROM earnings
		WHERE teacher_id = $1
		ORDER BY created_at DESC
	`

	rows, err := p.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer rows.Close()

	total := decimal.Zero
	earnings := []*domain.Earning{}

	for rows.Next() {
		var earning domain.Earning

		err := rows.Scan(
			&earning.ID,
			&earning.TeacherID,
			&earning.Amount,
			&earning.Source,
			&earning.Description,
			&earning.CreatedAt,
		)

		if err != nil {
			return nil, decimal.Zero, err
		}

		total = total.Add(earning.Amount)
		earnings = append(earnings, &earning)
	}

	if err = rows.Err(); err != nil {
		return nil, decimal.Zero, err
	}

	return earnings, total, nil
}

type PostgresSubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSubscriptionRepository(db *pgxpool.Pool) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{
		db: db,
	}
}

func (p *PostgresSubscriptionRepository) GetByTeacher(ctx context.Context, teacherID int) (*domain.Subscription, error) {
	query := `
		SELECT teacher_id, status, amount, start_date, end_date, gateway_payment_id
		FROM subscriptions
		WHERE teacher_id = $1
	`

	var subscription domain.Subscription

	err := p.db.QueryRow(ctx, query, teacherID).Scan(
		&subscription.TeacherID,
		&subscription.Status,
		&subscription.Amount,
		&subscription.StartDate,
		&subscription.EndDate,
		&subscription.GatewayPaymentId,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &subscription, nil
}
