package repository

import (
	"context"
	"fmt"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStatsRepository struct {
	db *pgxpool.Pool
}

func NewPostgresStatsRepository(db *pgxpool.Pool) *PostgresStatsRepository {
	return &PostgresStatsRepository{
		db: db,
	}
}

func (p *PostgresStatsRepository) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'STUDENT'),
			(SELECT COUNT(*) FROM users WHERE role = 'TEACHER'),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM enrollments),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'succeeded')
	`

	var stats domain.DashboardStats

	err := p.db.QueryRow(ctx, query).Scan(
		&stats.TotalStudents,
		&stats.TotalTeachers,
		&stats.TotalCourses,
		&stats.TotalEnrollments,
		&stats.TotalRevenue,
	)

	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (p *PostgresStatsRepository) GetSystemStats(ctx context.Context) (*domain.SystemStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM payments),
			(SELECT COUNT(*) FROM payments WHERE status = 'succeeded'),
			(SELECT COUNT(*) FROM payments WHERE status = 'failed'),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'succeeded'),
			(SELECT COALESCE(AVG(rating), 0) FROM courses WHERE rating > 0)
	`

	var stats domain.SystemStats

	err := p.db.QueryRow(ctx, query).Scan(
		&stats.TotalUsers,
		&stats.ActiveUsers,
		&stats.TotalPayments,
		&stats.SucceededPayments,
		&stats.FailedPayments,
		&stats.TotalRevenue,
		&stats.AverageCourseRating,
	)

	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (p *PostgresStatsRepository) GetTeachers(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.AdminUserSummary, *domain.Metadata, error) {

	return p.getUserSummaries(ctx, "teacher_profiles", pagination)
}

func (p *PostgresStatsRepository) GetStudents(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.AdminUserSummary, *domain.Metadata, error) {

	return p.getUserSummaries(ctx, "student_profiles", pagination)
}

func (p *PostgresStatsRepository) getUserSummaries(
	ctx context.Context,
	profileTable string,
	pagination domain.Pagination) ([]*domain.AdminUserSummary, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), p.id, u.id, u.email, u.first_name, u.last_name,
			u.phone_number, u.is_active, u.created_at
		FROM %s p
		INNER JOIN users u ON u.id = p.user_id
		ORDER BY %s %s, u.id ASC
		LIMIT $1 OFFSET $2`, profileTable, pagination.SortColumn(), pagination.SortDirection())

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	summaries := []*domain.AdminUserSummary{}

	for rows.Next() {
		var summary domain.AdminUserSummary

		err := rows.Scan(
			&totalRecords,
			&summary.ProfileID,
			&summary.UserID,
			&summary.Email,
			&summary.FirstName,
			&summary.LastName,
			&summary.PhoneNumber,
			&summary.IsActive,
			&summary.CreatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		summaries = append(summaries, &summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return summaries, metadata, nil
}

func (p *PostgresStatsRepository) GetPayments(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.AdminPaymentSummary, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), p.id, p.payer_user_id, p.amount, p.currency, p.status,
			p.gateway_order_id, p.gateway_payment_id, p.purpose, p.metadata,
			p.created_at, p.updated_at, u.email, u.first_name || ' ' || u.last_name
		FROM payments p
		INNER JOIN users u ON u.id = p.payer_user_id
		ORDER BY %s %s, p.id ASC
		LIMIT $1 OFFSET $2`, pagination.SortColumn(), pagination.SortDirection())

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	summaries := []*domain.AdminPaymentSummary{}

	for rows.Next() {
		var summary domain.AdminPaymentSummary

		err := rows.Scan(
			&totalRecords,
			&summary.ID,
			&summary.PayerUserID,
			&summary.Amount,
			&summary.Currency,
			&summary.Status,
			&summary.GatewayOrderId,
			&summary.GatewayPaymentId,
			&summary.Purpose,
			&summary.Metadata,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.PayerEmail,
			&summary.PayerName,
		)

		if err != nil {
			return nil, nil, err
		}

		summaries = append(summaries, &summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return summaries, metadata, nil
}

func (p *PostgresStatsRepository) GetCourses(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.Course, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), c.id, c.teacher_id, c.title, c.category, c.level, c.price,
			c.is_published, c.rating, c.total_enrollments, c.created_at,
			u.first_name || ' ' || u.last_name
		FROM courses c
		INNER JOIN users u ON u.id = c.teacher_id
		ORDER BY %s %s, c.id ASC
		LIMIT $1 OFFSET $2`, pagination.SortColumn(), pagination.SortDirection())

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	courses := []*domain.Course{}

	for rows.Next() {
		var course domain.Course

		err := rows.Scan(
			&totalRecords,
			&course.ID,
			&course.TeacherID,
			&course.Title,
			&course.Category,
			&course.Level,
			&course.Price,
			&course.IsPublished,
			&course.Rating,
			&course.TotalEnrollments,
			&course.CreatedAt,
			&course.TeacherName,
		)

		if err != nil {
			return nil, nil, err
		}

		courses = append(courses, &course)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return courses, metadata, nil
}
