package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keebstore/storefront/internal/auth"
	rl "github.com/keebstore/storefront/internal/http/rate_limiter"
)

var testSecret = []byte("middleware-secret")

func echoSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetSessionID(r)))
	})
}

func TestSessionIssuesCookie(t *testing.T) {
	h := Session(testSecret, time.Hour)(echoSession())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	id, err := auth.ParseSessionToken(cookies[0].Value, testSecret)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}

func TestSessionReusesValidCookie(t *testing.T) {
	h := Session(testSecret, time.Hour)(echoSession())
	token, err := auth.GenerateSessionToken("visitor-1", testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "visitor-1", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionReplacesForgedCookie(t *testing.T) {
	h := Session(testSecret, time.Hour)(echoSession())
	forged, err := auth.GenerateSessionToken("victim", []byte("other"), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: forged})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.NotEqual(t, "victim", w.Body.String())
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestRateLimit(t *testing.T) {
	t.Cleanup(rl.CleanupAllVisitors)
	rl.Configure(1, 2)

	h := RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
