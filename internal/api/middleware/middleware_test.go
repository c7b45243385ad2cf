package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/pkg/logger"
	"github.com/m04kA/salon-booking-service/pkg/metrics"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, role string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	raw, err := tok.SignedString(key)
	require.NoError(t, err)
	return raw
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ := GetSubject(r.Context())
		w.Header().Set("X-Subject", subject)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminAuth(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid admin", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), "ADMIN", future), wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), "ADMIN", future), wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), "ADMIN", time.Now().Add(-time.Hour)), wantStatus: http.StatusUnauthorized},
		{name: "other algorithm", header: "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(secret), "ADMIN", future), wantStatus: http.StatusUnauthorized},
		{name: "not admin", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), "CLIENT", future), wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/crm/settings", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			AdminAuth(secret, "ADMIN", logger.Nop())(okHandler()).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "admin-1", w.Header().Get("X-Subject"))
			}
		})
	}
}

func TestMemoryLimiter(t *testing.T) {
	l := NewMemoryLimiter(0.001, 2, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	// у другого клиента свое ведро
	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)
}

type fakeScripter struct {
	redis.Scripter
	counts map[string]int64
	err    error
}

func (f *fakeScripter) EvalSha(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	f.counts[keys[0]]++
	return redis.NewCmdResult(f.counts[keys[0]], nil)
}

func TestRedisLimiter(t *testing.T) {
	s := &fakeScripter{counts: map[string]int64{}}
	l := NewRedisLimiter(s, 2, time.Minute, "booking")
	ctx := context.Background()

	first, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	second, _ := l.Allow(ctx, "10.0.0.1")
	third, _ := l.Allow(ctx, "10.0.0.1")

	assert.True(t, first)
	assert.True(t, second)
	assert.False(t, third)
	assert.Equal(t, int64(3), s.counts["booking:10.0.0.1"])
}

func TestRateLimit_Middleware(t *testing.T) {
	h := RateLimit(NewMemoryLimiter(0.001, 1, nil), &ClientResolver{}, logger.Nop())(okHandler())

	r := httptest.NewRequest(http.MethodPost, "/api/public/appointments", nil)
	r.RemoteAddr = "192.168.1.10:5555"

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimit_FailOpen(t *testing.T) {
	s := &fakeScripter{counts: map[string]int64{}, err: errors.New("redis down")}
	h := RateLimit(NewRedisLimiter(s, 1, time.Minute, ""), &ClientResolver{}, logger.Nop())(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientKey_NoTrustedProxies(t *testing.T) {
	clients, err := NewClientResolver(nil)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.7:1234"
	assert.Equal(t, "198.51.100.7", clients.ClientKey(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.5")
	assert.Equal(t, "198.51.100.7", clients.ClientKey(r))
}

func TestClientKey_BehindTrustedProxy(t *testing.T) {
	clients, err := NewClientResolver([]string{"10.0.0.0/8", "192.168.1.1"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		remote string
		xff    []string
		want   string
	}{
		{name: "no header", remote: "10.1.1.1:1234", want: "10.1.1.1"},
		{name: "single hop", remote: "10.1.1.1:1234", xff: []string{"203.0.113.5"}, want: "203.0.113.5"},
		{name: "spoofed leftmost ignored", remote: "10.1.1.1:1234", xff: []string{"1.2.3.4, 203.0.113.5, 10.0.0.2"}, want: "203.0.113.5"},
		{name: "multiple headers", remote: "192.168.1.1:80", xff: []string{"1.2.3.4", "203.0.113.9"}, want: "203.0.113.9"},
		{name: "all hops trusted", remote: "10.1.1.1:1234", xff: []string{"10.0.0.3, 10.0.0.2"}, want: "10.0.0.3"},
		{name: "untrusted remote", remote: "198.51.100.7:1234", xff: []string{"203.0.113.5"}, want: "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for _, v := range tt.xff {
				r.Header.Add("X-Forwarded-For", v)
			}
			assert.Equal(t, tt.want, clients.ClientKey(r))
		})
	}
}

func TestNewClientResolver_Invalid(t *testing.T) {
	for _, raw := range []string{"proxy.local", "10.0.0.0/33", ""} {
		_, err := NewClientResolver([]string{raw})
		assert.ErrorIs(t, err, ErrInvalidProxy, raw)
	}
}

func TestRateLimit_RotatingForwardedForDoesNotBypass(t *testing.T) {
	clients, err := NewClientResolver(nil)
	require.NoError(t, err)
	h := RateLimit(NewMemoryLimiter(0.001, 1, nil), clients, logger.Nop())(okHandler())

	send := func(xff string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/public/appointments", nil)
		r.RemoteAddr = "198.51.100.7:5555"
		r.Header.Set("X-Forwarded-For", xff)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.2"))
}

type recordedRequest struct {
	id     string
	status int
}

type fakeRequestLogger struct{ got []recordedRequest }

func (l *fakeRequestLogger) Request(id, _, _ string, status int, _ time.Duration) {
	l.got = append(l.got, recordedRequest{id: id, status: status})
}

func TestRequestID(t *testing.T) {
	rl := &fakeRequestLogger{}
	h := RequestID(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, GetRequestID(r.Context()))
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	require.Len(t, rl.got, 2)
	assert.Equal(t, "req-42", rl.got[1].id)
	assert.Equal(t, http.StatusTeapot, rl.got[1].status)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New("test")
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/api/public/appointments/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/public/appointments/abc", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/public/appointments/{id}", "404")))
}
