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

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (p *PostgresUserRepository) CreateWithToken(
	ctx context.Context,
	user *domain.User,
	tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {

	var token *domain.Token

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (email, password_hash, first_name, last_name, role, phone_number)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, activated, version
		`

		err := tx.QueryRow(ctx,
			query,
			user.Email,
			user.Password.Hash,
			user.FirstName,
			user.LastName,
			user.Role,
			user.PhoneNumber).Scan(&user.ID, &user.CreatedAt, &user.Activated, &user.Version)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrUserAlreadyExists
			}

			return err
		}

		switch user.Role {
		case domain.RoleTeacher:
			query = `INSERT INTO teacher_profiles (user_id) VALUES ($1)`
		case domain.RoleStudent:
			query = `INSERT INTO student_profiles (user_id) VALUES ($1)`
		default:
			query = ""
		}

		if query != "" {
			_, err = tx.Exec(ctx, query, user.ID)
			if err != nil {
				return err
			}
		}

		token, err = tokenFn(user)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO tokens (hash, user_id, expiry, scope)
			VALUES ($1, $2, $3, $4)
		`

		_, err = tx.Exec(ctx, query, token.Hash, token.UserId, token.Expiry, token.Scope)

		return err
	})

	if err != nil {
		return nil, err
	}

	return token, nil
}

func (p *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, phone_number,
			profile_image, is_active, activated, created_at, updated_at, version
		FROM users
		WHERE email = $1
	`

	return p.getUser(ctx, query, email)
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, phone_number,
			profile_image, is_active, activated, created_at, updated_at, version
		FROM users
		WHERE id = $1
	`

	return p.getUser(ctx, query, id)
}

func (p *PostgresUserRepository) GetByToken(
	ctx context.Context,
	tokenHash []byte,
	tokenScope string) (*domain.User, error) {

	query := `
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.role, u.phone_number,
			u.profile_image, u.is_active, u.activated, u.created_at, u.updated_at, u.version
		FROM users u
		INNER JOIN tokens t ON u.id = t.user_id
		WHERE t.hash = $1 AND t.scope = $2 AND t.expiry > NOW()
	`

	return p.getUser(ctx, query, tokenHash, tokenScope)
}

func (p *PostgresUserRepository) getUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User

	err := p.db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Password.Hash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.PhoneNumber,
		&user.ProfileImage,
		&user.IsActive,
		&user.Activated,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (p *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, first_name = $3, last_name = $4,
			phone_number = $5, profile_image = $6, is_active = $7,
			updated_at = NOW(), version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version
	`

	err := p.db.QueryRow(ctx,
		query,
		user.Email,
		user.Password.Hash,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.ProfileImage,
		user.IsActive,
		user.ID,
		user.Version).Scan(&user.Version)

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.ErrEditConflict
		default:
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrUserAlreadyExists
			}

			return err
		}
	}

	return nil
}

// ActivateUser flips the user to activated and burns all of their
// activation tokens in the same transaction.
func (p *PostgresUserRepository) ActivateUser(ctx context.Context, user *domain.User) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE users
			SET activated = TRUE, updated_at = NOW(), version = version + 1
			WHERE id = $1 AND version = $2
			RETURNING version
		`

		err := tx.QueryRow(ctx, query, user.ID, user.Version).Scan(&user.Version)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrEditConflict
			}

			return err
		}

		query = `DELETE FROM tokens WHERE scope = $1 AND user_id = $2`

		_, err = tx.Exec(ctx, query, domain.UserActivationScope, user.ID)

		return err
	})
}

func (p *PostgresUserRepository) GetTeacherProfile(ctx context.Context, userID int) (*domain.TeacherProfile, error) {
	query := `
		SELECT id, user_id, bio, specialization, experience, education,
			rating, total_reviews, verification_document, verification_status, created_at
		FROM teacher_profiles
		WHERE user_id = $1
	`

	var profile domain.TeacherProfile

	err := p.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.Specialization,
		&profile.Experience,
		&profile.Education,
		&profile.Rating,
		&profile.TotalReviews,
		&profile.VerificationDocument,
		&profile.VerificationStatus,
		&profile.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}

		return nil, err
	}

	return &profile, nil
}

func (p *PostgresUserRepository) UpdateTeacherProfile(ctx context.Context, profile *domain.TeacherProfile) error {
	query := `
		UPDATE teacher_profiles
		SET bio = $1, specialization = $2, experience = $3, education = $4,
			verification_document = $5, verification_status = $6
		WHERE user_id = $7
		RETURNING id
	`

	err := p.db.QueryRow(ctx,
		query,
		profile.Bio,
		profile.Specialization,
		profile.Experience,
		profile.Education,
		profile.VerificationDocument,
		profile.VerificationStatus,
		profile.UserID).Scan(&profile.ID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProfileNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresUserRepository) GetStudentProfile(ctx context.Context, userID int) (*domain.StudentProfile, error) {
	query := `
		SELECT id, user_id, grade, school, interests, created_at
		FROM student_profiles
		WHERE user_id = $1
	`

	var profile domain.StudentProfile

	err := p.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Grade,
		&profile.School,
		&profile.Interests,
		&profile.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}

		return nil, err
	}

	return &profile, nil
}

func (p *PostgresUserRepository) UpdateStudentProfile(ctx context.Context, profile *domain.StudentProfile) error {
	query := `
		UPDATE student_profiles
		SET grade = $1, school = $2, interests = $3
		WHERE user_id = $4
		RETURNING id
	`

	err := p.db.QueryRow(ctx,
		query,
		profile.Grade,
		profile.School,
		profile.Interests,
		profile.UserID).Scan(&profile.ID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProfileNotFound
		}

		return err
	}

	return nil
}
