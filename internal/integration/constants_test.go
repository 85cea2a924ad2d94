package integration_test

const (
	TestStudentEmail = "student@example.com"
	TestTeacherEmail = "teacher@example.com"
	TestAdminEmail   = "admin@example.com"
	TestPassword     = "Test123!@#"

	TestCourseTitle       = "Practical Go for Backend Engineers"
	TestCourseDescription = "From net/http to production: a hands-on backend engineering course."
	TestCourseCategory    = "Programming"

	TestToken = "r8zEhnVzNTZDf8WypfYBTU_FkFUm9jXnTmMrK-WuFQ8"
)
