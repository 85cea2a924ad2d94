package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), `
		TRUNCATE users, tokens, teacher_profiles, student_profiles, courses,
			enrollments, reviews, payments, earnings, subscriptions, contact_messages
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)
}

func seedUser(t testing.TB, db *pgxpool.Pool, email, role string) int {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	var id int
	err = db.QueryRow(context.Background(), `
		INSERT INTO users (email, password_hash, first_name, last_name, role, activated)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`, email, hash, "Test", "User", role).Scan(&id)
	require.NoError(t, err)

	switch role {
	case "STUDENT":
		_, err = db.Exec(context.Background(), `INSERT INTO student_profiles (user_id) VALUES ($1)`, id)
	case "TEACHER":
		_, err = db.Exec(context.Background(), `INSERT INTO teacher_profiles (user_id) VALUES ($1)`, id)
	}
	require.NoError(t, err)

	return id
}

func seedCourse(t testing.TB, db *pgxpool.Pool, teacherId int, price string, published bool) int {
	var id int
	err := db.QueryRow(context.Background(), `
		INSERT INTO courses (teacher_id, title, description, category, level, price, is_published)
		VALUES ($1, $2, $3, $4, 'BEGINNER', $5, $6)
		RETURNING id
	`, teacherId, TestCourseTitle, TestCourseDescription, TestCourseCategory, price, published).Scan(&id)
	require.NoError(t, err)

	return id
}

func seedPendingPayment(t testing.TB, db *pgxpool.Pool, payerId int, orderId, amount, purpose, metadata string) {
	_, err := db.Exec(context.Background(), `
		INSERT INTO payments (payer_user_id, amount, currency, status, gateway_order_id, purpose, metadata)
		VALUES ($1, $2, 'INR', 'pending', $3, $4, $5)
	`, payerId, amount, orderId, purpose, metadata)
	require.NoError(t, err)
}

// loginAs authenticates through the real login handler and returns the session
// cookie to attach to subsequent requests.
func loginAs(t testing.TB, testApp *TestApp, email string) http.Cookie {
	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, TestPassword)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode, "login failed for %s", email)

	return sessionCookie(t, res)
}

func queryCount(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	var count int
	err := db.QueryRow(context.Background(), query, args...).Scan(&count)
	require.NoError(t, err)
	return count
}

func decodeBody(t testing.TB, res *http.Response) map[string]any {
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}
