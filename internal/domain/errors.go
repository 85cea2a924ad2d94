package domain

import "errors"

var (
	ErrUserAlreadyExists  = errors.New("user already exists with this email")
	ErrRecordNotFound     = errors.New("record not found")
	ErrEditConflict       = errors.New("edit conflict")
	ErrProfileNotFound    = errors.New("role profile not found for user")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this course")
	ErrAlreadyReviewed    = errors.New("student has already reviewed this target")
	ErrCourseNotPublished = errors.New("course is not published yet")
	ErrInvalidSignature   = errors.New("payment signature verification failed")
	ErrInvalidMediaType   = errors.New("file type is not allowed")
	ErrMediaTooLarge      = errors.New("file exceeds the size limit for its type")
)
