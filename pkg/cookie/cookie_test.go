package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SetAndGet(t *testing.T) {
	t.Parallel()

	t.Run("applies secure defaults", func(t *testing.T) {
		t.Parallel()

		m := New()
		rec := httptest.NewRecorder()
		m.Set(rec, "token", "abc123")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, "token", c.Name)
		assert.Equal(t, "abc123", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.False(t, c.Secure)
	})

	t.Run("per-call options override defaults", func(t *testing.T) {
		t.Parallel()

		m := New(WithSecure(true), WithDomain("example.com"))
		rec := httptest.NewRecorder()
		m.Set(rec, "token", "v", WithMaxAge(3600))

		c := rec.Result().Cookies()[0]
		assert.True(t, c.Secure)
		assert.Equal(t, "example.com", c.Domain)
		assert.Equal(t, 3600, c.MaxAge)
	})

	t.Run("reads value back from request", func(t *testing.T) {
		t.Parallel()

		m := New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "abc123"})

		got, err := m.Get(req, "token")
		require.NoError(t, err)
		assert.Equal(t, "abc123", got)
	})

	t.Run("missing cookie returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		m := New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := m.Get(req, "absent")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m := New(WithSecure(true))
	rec := httptest.NewRecorder()
	m.Delete(rec, "token")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Secure)
}
