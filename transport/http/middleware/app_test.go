package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestOperator(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "named operator", header: "  front-desk  ", want: "front-desk"},
		{name: "no header acts as guest", header: "", want: constant.ContextGuest},
		{name: "long names are cut", header: strings.Repeat("x", 150), want: strings.Repeat("x", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, nil)

			var got string
			handler := app.Operator(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = shared.UserFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderOperator, tt.header)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}

func limitedConfig(maxRequests int) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("first request in window", func(t *testing.T) {
		redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
		redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(1), nil)

		app := middleware.NewAppMiddleware(mocks.NewOtel(), limitedConfig(2), redisCache)

		rec := httptest.NewRecorder()
		app.RateLimit()(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("over the limit", func(t *testing.T) {
		redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
		redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(3), nil)

		app := middleware.NewAppMiddleware(mocks.NewOtel(), limitedConfig(2), redisCache)

		rec := httptest.NewRecorder()
		app.RateLimit()(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("same client shares a counter across ports", func(t *testing.T) {
		var keys []string

		redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
		redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).DoAndReturn(
			func(_ context.Context, key string, _ int) (int64, error) {
				keys = append(keys, key)

				return int64(len(keys)), nil
			}).Times(2)

		app := middleware.NewAppMiddleware(mocks.NewOtel(), limitedConfig(5), redisCache)

		for _, addr := range []string{"10.0.0.7:5100", "10.0.0.7:5200"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = addr
			app.RateLimit()(ok).ServeHTTP(httptest.NewRecorder(), req)
		}

		assert.Len(t, keys, 2)
		assert.Equal(t, keys[0], keys[1])
	})

	t.Run("store unavailable lets request through", func(t *testing.T) {
		redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
		redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("connection refused"))

		app := middleware.NewAppMiddleware(mocks.NewOtel(), limitedConfig(2), redisCache)

		rec := httptest.NewRecorder()
		app.RateLimit()(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		app := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, nil)

		rec := httptest.NewRecorder()
		app.RateLimit()(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestTracing(t *testing.T) {
	app := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, nil)

	rec := httptest.NewRecorder()
	app.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
