package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeToken implements Token
type fakeToken struct {
	data map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	b, err := json.Marshal(t.data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// fakeVerifier implements Verifier
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	switch raw {
	case "goodtoken":
		return &fakeToken{data: map[string]interface{}{"sub": "user1", "email": "test@example.com"}}, nil
	case "nosubject":
		return &fakeToken{data: map[string]interface{}{"email": "test@example.com"}}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	g := gin.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rw := httptest.NewRecorder()

	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_InvalidHeader(t *testing.T) {
	g := gin.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "BadHeader")
	rw := httptest.NewRecorder()

	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	g := gin.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer wrongtoken")
	rw := httptest.NewRecorder()

	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_MissingSubject(t *testing.T) {
	g := gin.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nosubject")
	rw := httptest.NewRecorder()

	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	g := gin.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rw := httptest.NewRecorder()

	var got Identity
	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		require.True(t, ok)
		got = id
		c.Status(http.StatusOK)
	})
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, "user1", got.Subject)
	require.Equal(t, "test@example.com", got.Email)
}
