package validator

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/go-playground/validator/v10"
)

var hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("password", validatePassword)
	validator.RegisterValidation("role", validateRole)
	validator.RegisterValidation("course_level", validateCourseLevel)
	validator.RegisterValidation("plan", validatePlan)

	return validator
}

func validateRole(fl validator.FieldLevel) bool {
	role := domain.Role(fl.Field().String())

	return role == domain.RoleStudent || role == domain.RoleTeacher
}

func validateCourseLevel(fl validator.FieldLevel) bool {
	level := domain.CourseLevel(fl.Field().String())

	switch level {
	case domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced, domain.LevelAllLevels:
		return true
	}

	return false
}

func validatePlan(fl validator.FieldLevel) bool {
	plan := domain.SubscriptionPlan(fl.Field().String())

	return plan == domain.PlanMonthly || plan == domain.PlanYearly
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())
	case "role":
		return "must be either STUDENT or TEACHER"
	case "course_level":
		return "must be one of BEGINNER, INTERMEDIATE, ADVANCED or ALL_LEVELS"
	case "plan":
		return "must be either MONTHLY or YEARLY"
	case "password":
		return "must be at least 8 characters long and include at least one uppercase letter, one lowercase letter, " +
			"one number, and one special character (!@#$%^&*)."
	default:
		return "is invalid"
	}
}
