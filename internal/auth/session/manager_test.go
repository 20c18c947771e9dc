package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/dashboard/internal/auth/domain"
	"github.com/smallbiznis/dashboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.Config{
		AppName:        "dashboard",
		AuthJWTSecret:  "test-secret",
		AuthSessionTTL: time.Hour,
	}, zap.NewNop())
	require.NoError(t, err)
	return m
}

func TestIssueAndParse(t *testing.T) {
	m := newManager(t)
	user := &domain.User{ID: "410544b2-4001-4271-9855-fec4b6a6442a", Name: "User", Email: "user@nextmail.com"}

	token, expiresAt, err := m.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "dashboard", claims.Issuer)
}

func TestParseRejectsTamperedAndExpired(t *testing.T) {
	m := newManager(t)
	user := &domain.User{ID: "u1", Email: "user@nextmail.com"}

	token, _, err := m.Issue(user)
	require.NoError(t, err)

	_, err = m.Parse(token + "x")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	other, err := NewManager(config.Config{AuthJWTSecret: "other-secret"}, zap.NewNop())
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestProductionRequiresSecret(t *testing.T) {
	_, err := NewManager(config.Config{Environment: "production"}, zap.NewNop())
	assert.Error(t, err)
}

func TestStartAndClearCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newManager(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	require.NoError(t, m.Start(c, &domain.User{ID: "u1", Email: "user@nextmail.com"}))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Greater(t, cookies[0].MaxAge, 0)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	m.Clear(c)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
