package testutil

import (
	"database/sql"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"tradeReportBackend/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The database is closed via t.Cleanup. Use a distinct name per test.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// A shared cache lets every pooled connection see the same database.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// GenerateJWTHS256 returns a token signed with secret carrying the app's claims.
// exp is set relative to now; a negative ttl yields an already-expired token.
func GenerateJWTHS256(t *testing.T, secret string, userID int64, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"iat":    now.Add(-time.Minute).Unix(),
		"exp":    now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// Bearer formats an Authorization header value.
func Bearer(token string) string {
	return "Bearer " + token
}
