package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCourseRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCourseRepository(db *pgxpool.Pool) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		db: db,
	}
}

func (p *PostgresCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	query := `
		INSERT INTO courses (teacher_id, title, description, short_description, category,
			level, price, duration, thumbnail_image, syllabus)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, is_published, rating, total_enrollments, created_at, updated_at
	`

	return p.db.QueryRow(ctx,
		query,
		course.TeacherID,
		course.Title,
		course.Description,
		course.ShortDescription,
		course.Category,
		course.Level,
		course.Price,
		course.Duration,
		course.ThumbnailImage,
		course.Syllabus).Scan(
		&course.ID,
		&course.IsPublished,
		&course.Rating,
		&course.TotalEnrollments,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
}

func (p *PostgresCourseRepository) GetById(ctx context.Context, id int) (*domain.Course, error) {
	query := `
		SELECT c.id, c.teacher_id, c.title, c.description, c.short_description, c.category,
			c.level, c.price, c.duration, c.thumbnail_image, c.syllabus, c.is_published,
			c.rating, c.total_enrollments, c.created_at, c.updated_at,
			u.first_name || ' ' || u.last_name, u.profile_image
		FROM courses c
		INNER JOIN users u ON u.id = c.teacher_id
		WHERE c.id = $1
	`

	var course domain.Course

	err := p.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.TeacherID,
		&course.Title,
		&course.Description,
		&course.ShortDescription,
		&course.Category,
		&course.Level,
		&course.Price,
		&course.Duration,
		&course.ThumbnailImage,
		&course.Syllabus,
		&course.IsPublished,
		&course.Rating,
		&course.TotalEnrollments,
		&course.CreatedAt,
		&course.UpdatedAt,
		&course.TeacherName,
		&course.TeacherImage,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &course, nil
}

func (p *PostgresCourseRepository) GetAll(
	ctx context.Context,
	filters domain.CourseFilters) ([]*domain.Course, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), c.id, c.teacher_id, c.title, c.description, c.short_description,
			c.category, c.level, c.price, c.duration, c.thumbnail_image, c.is_published,
			c.rating, c.total_enrollments, c.created_at, c.updated_at,
			u.first_name || ' ' || u.last_name, u.profile_image
		FROM courses c
		INNER JOIN users u ON u.id = c.teacher_id
		WHERE c.is_published = TRUE
			AND ((to_tsvector('english', c.title) @@ plainto_tsquery('english', $1)
				OR to_tsvector('english', c.description) @@ plainto_tsquery('english', $1))
				OR $1 = '')
			AND (c.category = $2 OR $2 = '')
			AND (c.level = $3 OR $3 = '')
			AND (c.teacher_id = $4 OR $4 = 0)
			AND ($5::numeric IS NULL OR c.price >= $5)
			AND ($6::numeric IS NULL OR c.price <= $6)
		ORDER BY %s %s, c.id ASC
		LIMIT $7 OFFSET $8`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx,
		query,
		filters.Term,
		filters.Category,
		filters.Level,
		filters.TeacherID,
		filters.MinPrice,
		filters.MaxPrice,
		filters.Limit(),
		filters.Offset())

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
			&course.Description,
			&course.ShortDescription,
			&course.Category,
			&course.Level,
			&course.Price,
			&course.Duration,
			&course.ThumbnailImage,
			&course.IsPublished,
			&course.Rating,
			&course.TotalEnrollments,
			&course.CreatedAt,
			&course.UpdatedAt,
			&course.TeacherName,
			&course.TeacherImage,
		)

		if err != nil {
			return nil, nil, err
		}

		courses = append(courses, &course)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return courses, metadata, nil
}

func (p *PostgresCourseRepository) GetAllByTeacher(ctx context.Context, teacherID int) ([]*domain.Course, error) {
	query := `
		SELECT id, teacher_id, title, description, short_description, category, level,
			price, duration, thumbnail_image, syllabus, is_published, rating,
			total_enrollments, created_at, updated_at
		FROM courses
		WHERE teacher_id = $1
		ORDER BY created_at DESC
	`

	rows, err := p.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []*domain.Course{}

	for rows.Next() {
		var course domain.Course

		err := rows.Scan(
			&course.ID,
			&course.TeacherID,
			&course.Title,
			&course.Description,
			&course.ShortDescription,
			&course.Category,
			&course.Level,
			&course.Price,
			&course.Duration,
			&course.ThumbnailImage,
			&course.Syllabus,
			&course.IsPublished,
			&course.Rating,
			&course.TotalEnrollments,
			&course.CreatedAt,
			&course.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		courses = append(courses, &course)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (p *PostgresCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, short_description = $3, category = $4,
			level = $5, price = $6, duration = $7, thumbnail_image = $8,
			syllabus = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`

	err := p.db.QueryRow(ctx,
		query,
		course.Title,
		course.Description,
		course.ShortDescription,
		course.Category,
		course.Level,
		course.Price,
		course.Duration,
		course.ThumbnailImage,
		course.Syllabus,
		course.ID).Scan(&course.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresCourseRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM courses WHERE id = $1`

	result, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresCourseRepository) Publish(ctx context.Context, id int) error {
	query := `
		UPDATE courses
		SET is_published = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
