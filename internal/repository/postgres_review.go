package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresReviewRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{
		db: db,
	}
}

func (p *PostgresReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reviews (student_id, course_id, teacher_id, rating, comment)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx,
			query,
			review.StudentID,
			review.CourseID,
			review.TeacherID,
			review.Rating,
			review.Comment).Scan(&review.ID, &review.CreatedAt)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrAlreadyReviewed
			}

			return err
		}

		return p.refreshAggregates(ctx, tx, review)
	})
}

// refreshAggregates recomputes the denormalized rating of whichever target
// the review points at.
func (p *PostgresReviewRepository) refreshAggregates(ctx context.Context, tx pgx.Tx, review *domain.Review) error {
	if review.CourseID != nil {
		query := `
			UPDATE courses
			SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE course_id = $1), 0)
			WHERE id = $1
		`

		_, err := tx.Exec(ctx, query, *review.CourseID)

		return err
	}

	query := `
		UPDATE teacher_profiles
		SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE teacher_id = $1), 0),
			total_reviews = (SELECT COUNT(*) FROM reviews WHERE teacher_id = $1)
		WHERE user_id = $1
	`

	_, err := tx.Exec(ctx, query, *review.TeacherID)

	return err
}

func (p *PostgresReviewRepository) GetById(ctx context.Context, id int) (*domain.Review, error) {
	query := `
		SELECT r.id, r.student_id, r.course_id, r.teacher_id, r.rating, r.comment, r.created_at,
			u.first_name || ' ' || u.last_name, u.profile_image
		FROM reviews r
		INNER JOIN users u ON u.id = r.student_id
		WHERE r.id = $1
	`

	var review domain.Review

	err := p.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.StudentID,
		&review.CourseID,
		&review.TeacherID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.StudentName,
		&review.StudentImage,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &review, nil
}

func (p *PostgresReviewRepository) GetAll(
	ctx context.Context,
	filters domain.ReviewFilters) ([]*domain.Review, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), r.id, r.student_id, r.course_id, r.teacher_id, r.rating,
			r.comment, r.created_at, u.first_name || ' ' || u.last_name, u.profile_image
		FROM reviews r
		INNER JOIN users u ON u.id = r.student_id
		WHERE (r.course_id = $1 OR $1 = 0)
			AND (r.teacher_id = $2 OR $2 = 0)
		ORDER BY %s %s, r.id ASC
		LIMIT $3 OFFSET $4`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx,
		query,
		filters.CourseID,
		filters.TeacherID,
		filters.Limit(),
		filters.Offset())

	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	reviews := []*domain.Review{}

	for rows.Next() {
		var review domain.Review

		err := rows.Scan(
			&totalRecords,
			&review.ID,
			&review.StudentID,
			&review.CourseID,
			&review.TeacherID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.StudentName,
			&review.StudentImage,
		)

		if err != nil {
			return nil, nil, err
		}

		reviews = append(reviews, &review)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return reviews, metadata, nil
}

func (p *PostgresReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE reviews
			SET rating = $1, comment = $2
			WHERE id = $3 AND student_id = $4
			RETURNING course_id, teacher_id
		`

		err := tx.QueryRow(ctx,
			query,
			review.Rating,
			review.Comment,
			review.ID,
			review.StudentID).Scan(&review.CourseID, &review.TeacherID)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		return p.refreshAggregates(ctx, tx, review)
	})
}

func (p *PostgresReviewRepository) Delete(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var review domain.Review

		query := `
			DELETE FROM reviews
			WHERE id = $1
			RETURNING course_id, teacher_id
		`

		err := tx.QueryRow(ctx, query, id).Scan(&review.CourseID, &review.TeacherID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		return p.refreshAggregates(ctx, tx, &review)
	})
}
