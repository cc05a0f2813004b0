package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimiterTest(t *testing.T) (*redis.Client, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestRateLimiterMiddleware_AllowsWithinLimit(t *testing.T) {
	client, cleanup := setupRateLimiterTest(t)
	defer cleanup()

	mw := RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: client,
		Key:         "rate:otp",
		Limit:       3,
		Period:      time.Minute,
	})

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/otp/send", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiterMiddleware_BlocksOverLimit(t *testing.T) {
	client, cleanup := setupRateLimiterTest(t)
	defer cleanup()

	mw := RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: client,
		Key:         "rate:otp",
		Limit:       2,
		Period:      time.Minute,
	})

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()
	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/otp/send", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		require.NoError(t, err)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestRateLimiterMiddleware_SeparateIdentifiers(t *testing.T) {
	client, cleanup := setupRateLimiterTest(t)
	defer cleanup()

	mw := RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: client,
		Key:         "rate:signin",
		Limit:       1,
		Period:      time.Minute,
	})

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()

	// Two requests from distinct users share nothing
	for _, user := range []string{"user-a", "user-b"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", user)

		err := handler(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
