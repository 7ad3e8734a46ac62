package routeguard

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artikahq/authkit/pkg/authn"
	"github.com/artikahq/authkit/pkg/session"
)

const testSigningKey = "test-signing-key-32-characters!!"

func testSetup(t *testing.T, opts ...Option) (*Guard, *session.Issuer) {
	t.Helper()

	issuer, err := session.NewIssuer(testSigningKey)
	require.NoError(t, err)
	transport := session.NewTransport(session.Config{
		CookieName: "artika_session",
		Lifetime:   720 * time.Hour,
	})
	return New(issuer, transport, opts...), issuer
}

func issueToken(t *testing.T, issuer *session.Issuer) string {
	t.Helper()

	token, err := issuer.Issue(&authn.Identity{
		ID:        uuid.New(),
		Email:     "marina@example.com",
		FirstName: "Marina",
		LastName:  "Kovac",
	})
	require.NoError(t, err)
	return token
}

func okHandler(t *testing.T, sawClaims *bool) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); ok && sawClaims != nil {
			*sawClaims = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestGuard_Protects(t *testing.T) {
	t.Parallel()

	guard, _ := testSetup(t)

	tests := []struct {
		path      string
		protected bool
	}{
		{"/dashboard", true},
		{"/dashboard/artworks", true},
		{"/dashboard/artworks/42/edit", true},
		{"/profile", true},
		{"/profile/settings", true},
		{"/", false},
		{"/auth/login", false},
		{"/artworks/42", false},
		{"/dashboards", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.protected, guard.Protects(tt.path))
		})
	}
}

func TestGuard_Middleware(t *testing.T) {
	t.Parallel()

	t.Run("public path passes without session", func(t *testing.T) {
		t.Parallel()

		guard, _ := testSetup(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/artworks/42", nil)

		guard.Middleware(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid session reaches handler with claims", func(t *testing.T) {
		t.Parallel()

		guard, issuer := testSetup(t)
		token := issueToken(t, issuer)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard/artworks", nil)
		req.AddCookie(&http.Cookie{Name: "artika_session", Value: token})

		var sawClaims bool
		guard.Middleware(okHandler(t, &sawClaims)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, sawClaims)
	})

	t.Run("bearer token works for api clients", func(t *testing.T) {
		t.Parallel()

		guard, issuer := testSetup(t)
		token := issueToken(t, issuer)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		guard.Middleware(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("browser without session is redirected with callback", func(t *testing.T) {
		t.Parallel()

		guard, _ := testSetup(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard/artworks?tab=drafts", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		guard.Middleware(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)

		location, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/auth/login", location.Path)
		assert.Equal(t, "/dashboard/artworks?tab=drafts", location.Query().Get("callbackUrl"))
	})

	t.Run("api client without session gets 401", func(t *testing.T) {
		t.Parallel()

		guard, _ := testSetup(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Accept", "application/json")

		guard.Middleware(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
	})

	t.Run("tampered token is denied", func(t *testing.T) {
		t.Parallel()

		guard, issuer := testSetup(t)
		token := issueToken(t, issuer)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(&http.Cookie{Name: "artika_session", Value: token + "x"})

		guard.Middleware(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("session in renewal window is re-issued", func(t *testing.T) {
		t.Parallel()

		// Lifetime shorter than the renewal window, so every session is
		// immediately renewable.
		issuer, err := session.NewIssuer(testSigningKey,
			session.WithLifetime(time.Hour),
			session.WithRenewalWindow(2*time.Hour),
		)
		require.NoError(t, err)
		transport := session.NewTransport(session.Config{
			CookieName: "artika_session",
			Lifetime:   time.Hour,
		})
		guard := New(issuer, transport)
		token := issueToken(t, issuer)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: "artika_session", Value: token})

		guard.Middleware(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "artika_session", cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)

		_, err = issuer.Decode(cookies[0].Value)
		assert.NoError(t, err)
	})

	t.Run("sliding disabled leaves cookie untouched", func(t *testing.T) {
		t.Parallel()

		issuer, err := session.NewIssuer(testSigningKey,
			session.WithLifetime(time.Hour),
			session.WithRenewalWindow(2*time.Hour),
		)
		require.NoError(t, err)
		transport := session.NewTransport(session.Config{
			CookieName: "artika_session",
			Lifetime:   time.Hour,
		})
		guard := New(issuer, transport, WithSlidingSessions(false))
		token := issueToken(t, issuer)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: "artika_session", Value: token})

		guard.Middleware(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("custom patterns and sign-in path", func(t *testing.T) {
		t.Parallel()

		guard, _ := testSetup(t,
			WithProtectedPaths("/studio/**"),
			WithSignInPath("/signin"),
			WithCallbackParam("next"),
		)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/studio/uploads", nil)
		req.Header.Set("Accept", "text/html")

		guard.Middleware(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		location, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/signin", location.Path)
		assert.Equal(t, "/studio/uploads", location.Query().Get("next"))

		// Old defaults no longer apply.
		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		guard.Middleware(okHandler(t, nil)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestClaimsFromContext(t *testing.T) {
	t.Parallel()

	t.Run("missing claims", func(t *testing.T) {
		t.Parallel()

		_, ok := ClaimsFromContext(t.Context())
		assert.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		claims := session.Claims{Subject: uuid.NewString(), Email: "a@b.c"}
		ctx := WithClaims(t.Context(), claims)

		got, ok := ClaimsFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, claims, got)
	})
}
