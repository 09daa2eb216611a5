package jwt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvdesk/pkg/auth"
)

const (
	testSecret = "test-secret"
	testIssuer = "cvdesk"
)

func token(t *testing.T, user auth.User, ttl time.Duration) string {
	t.Helper()
	tok, err := NewGenerator(testSecret, testIssuer, ttl).Generate(context.Background(), user)
	require.NoError(t, err)
	return tok
}

func TestGenerateAndParse(t *testing.T) {
	user := auth.User{ID: uuid.New(), IsAdmin: true}
	id, err := Parse(token(t, user, time.Hour), []byte(testSecret), testIssuer)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: user.ID, IsAdmin: true}, id)
}

func TestParseRejects(t *testing.T) {
	user := auth.User{ID: uuid.New()}
	valid := token(t, user, time.Hour)

	noneSigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: user.ID.String(), Issuer: testIssuer},
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "not-a-uuid", Issuer: testIssuer},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		issuer string
	}{
		{"wrong secret", valid, "other", testIssuer},
		{"wrong issuer", valid, testSecret, "someone-else"},
		{"expired", token(t, user, -time.Minute), testSecret, testIssuer},
		{"garbage", "not.a.token", testSecret, testIssuer},
		{"alg none", noneSigned, testSecret, testIssuer},
		{"subject is not a uuid", badSubject, testSecret, testIssuer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token, []byte(tt.secret), tt.issuer)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer   abc "))
	assert.Equal(t, "abc", bearerToken("abc"))
	assert.Empty(t, bearerToken(""))
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(NewAuthMiddleware(testSecret, testIssuer))
	app.Get("/me", func(c *fiber.Ctx) error { return c.SendString(UserID(c).String()) })
	app.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })
	return app
}

func TestMiddleware(t *testing.T) {
	app := newApp()
	user := auth.User{ID: uuid.New()}
	admin := auth.User{ID: uuid.New(), IsAdmin: true}

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"invalid token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "/me", "Bearer " + token(t, user, time.Hour), http.StatusOK},
		{"non-admin on admin route", "/admin", "Bearer " + token(t, user, time.Hour), http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer " + token(t, admin, time.Hour), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, user.ID.String(), string(body))
			}
		})
	}
}
