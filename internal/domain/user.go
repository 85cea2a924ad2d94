package domain

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

type User struct {
	ID           int
	Email        string
	Password     password
	FirstName    string
	LastName     string
	Role         Role
	PhoneNumber  *string
	ProfileImage *string
	IsActive     bool
	Activated    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int
}

type password struct {
	plaintext *string
	Hash      []byte
}

func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

// TeacherProfile is the role-specific profile created for users registered
// with RoleTeacher. Ratings are denormalized aggregates maintained by the
// review repository.
type TeacherProfile struct {
	ID                   int
	UserID               int
	Bio                  *string
	Specialization       []string
	Experience           *int
	Education            *string
	Rating               float64
	TotalReviews         int
	VerificationDocument *string
	VerificationStatus   string
	CreatedAt            time.Time
}

type StudentProfile struct {
	ID        int
	UserID    int
	Grade     *string
	School    *string
	Interests []string
	CreatedAt time.Time
}

type UserRepository interface {
	// CreateWithToken inserts the user, its role profile, and an activation
	// token generated by tokenFn in a single transaction.
	CreateWithToken(ctx context.Context, user *User, tokenFn func(*User) (*Token, error)) (*Token, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetById(ctx context.Context, id int) (*User, error)
	GetByToken(ctx context.Context, tokenHash []byte, tokenScope string) (*User, error)
	Update(ctx context.Context, user *User) error
	ActivateUser(ctx context.Context, user *User) error

	GetTeacherProfile(ctx context.Context, userID int) (*TeacherProfile, error)
	UpdateTeacherProfile(ctx context.Context, profile *TeacherProfile) error
	GetStudentProfile(ctx context.Context, userID int) (*StudentProfile, error)
	UpdateStudentProfile(ctx context.Context, profile *StudentProfile) error
}
