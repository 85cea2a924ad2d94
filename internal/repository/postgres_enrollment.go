package repository

import (
	"context"
	"errors"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresEnrollmentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresEnrollmentRepository(db *pgxpool.Pool) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{
		db: db,
	}
}

// Create relies on the (student_id, course_id) unique constraint to reject
// duplicates, so two concurrent enrollments can never both insert.
func (p *PostgresEnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO enrollments (student_id, course_id)
			VALUES ($1, $2)
			RETURNING id, progress, enrolled_at
		`

		err := tx.QueryRow(ctx, query, enrollment.StudentID, enrollment.CourseID).Scan(
			&enrollment.ID,
			&enrollment.Progress,
			&enrollment.EnrolledAt,
		)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case pgerrcode.UniqueViolation:
					return domain.ErrAlreadyEnrolled
				case pgerrcode.ForeignKeyViolation:
					return domain.ErrRecordNotFound
				}
			}

			return err
		}

		query = `
			UPDATE courses
			SET total_enrollments = total_enrollments + 1
			WHERE id = $1
		`

		_, err = tx.Exec(ctx, query, enrollment.CourseID)

		return err
	})
}

func (p *PostgresEnrollmentRepository) GetById(ctx context.Context, id int) (*domain.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.progress, e.enrolled_at, e.completed_at,
			c.title, c.thumbnail_image, u.first_name || ' ' || u.last_name
		FROM enrollments e
		INNER JOIN courses c ON c.id = e.course_id
		INNER JOIN users u ON u.id = c.teacher_id
		WHERE e.id = $1
	`

	return p.getEnrollment(ctx, query, id)
}

func (p *PostgresEnrollmentRepository) GetByStudentAndCourse(
	ctx context.Context,
	studentID, courseID int) (*domain.Enrollment, error) {

	query := `
		SELECT e.id, e.student_id, e.course_id, e.progress, e.enrolled_at, e.completed_at,
			c.title, c.thumbnail_image, u.first_name || ' ' || u.last_name
		FROM enrollments e
		INNER JOIN courses c ON c.id = e.course_id
		INNER JOIN users u ON u.id = c.teacher_id
		WHERE e.student_id = $1 AND e.course_id = $2
	`

	return p.getEnrollment(ctx, query, studentID, courseID)
}

func (p *PostgresEnrollmentRepository) getEnrollment(
	ctx context.Context,
	query string,
	args ...any) (*domain.Enrollment, error) {

	var enrollment domain.Enrollment

	err := p.db.QueryRow(ctx, query, args...).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.EnrolledAt,
		&enrollment.CompletedAt,
		&enrollment.CourseTitle,
		&enrollment.CourseThumb,
		&enrollment.TeacherName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &enrollment, nil
}

func (p *PostgresEnrollmentRepository) GetAllByStudent(ctx context.Context, studentID int) ([]*domain.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.progress, e.enrolled_at, e.completed_at,
			c.title, c.thumbnail_image, u.first_name || ' ' || u.last_name
		FROM enrollments e
		INNER JOIN courses c ON c.id = e.course_id
		INNER JOIN users u ON u.id = c.teacher_id
		WHERE e.student_id = $1
		ORDER BY e.enrolled_at DESC
	`

	rows, err := p.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := []*domain.Enrollment{}

	for rows.Next() {
		var enrollment domain.Enrollment

		err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.Progress,
			&enrollment.EnrolledAt,
			&enrollment.CompletedAt,
			&enrollment.CourseTitle,
			&enrollment.CourseThumb,
			&enrollment.TeacherName,
		)

		if err != nil {
			return nil, err
		}

		enrollments = append(enrollments, &enrollment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (p *PostgresEnrollmentRepository) UpdateProgress(ctx context.Context, enrollment *domain.Enrollment) error {
	query := `
		UPDATE enrollments
		SET progress = $1,
			completed_at = CASE WHEN $1 >= 100 THEN NOW() ELSE completed_at END
		WHERE id = $2 AND student_id = $3
		RETURNING completed_at
	`

	err := p.db.QueryRow(ctx,
		query,
		enrollment.Progress,
		enrollment.ID,
		enrollment.StudentID).Scan(&enrollment.CompletedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresEnrollmentRepository) GetStudentDashboard(
	ctx context.Context,
	studentID int) (*domain.StudentDashboard, error) {

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE completed_at IS NOT NULL),
			COUNT(*) FILTER (WHERE completed_at IS NULL)
		FROM enrollments
		WHERE student_id = $1
	`

	var dashboard domain.StudentDashboard

	err := p.db.QueryRow(ctx, query, studentID).Scan(
		&dashboard.TotalEnrollments,
		&dashboard.CompletedCourses,
		&dashboard.InProgressCourses,
	)

	if err != nil {
		return nil, err
	}

	return &dashboard, nil
}
