package authn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoogleAdapter(t *testing.T) {
	t.Parallel()

	t.Run("rejects incomplete config", func(t *testing.T) {
		t.Parallel()

		_, err := NewGoogleAdapter(GoogleConfig{ClientID: "id"})
		assert.ErrorIs(t, err, ErrProviderConfigIncomplete)
	})

	t.Run("builds authorization url", func(t *testing.T) {
		t.Parallel()

		adapter, err := NewGoogleAdapter(GoogleConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "https://app.example.com/auth/google/callback",
			Scopes:       []string{"email"},
		})
		require.NoError(t, err)
		assert.Equal(t, ProviderGoogle, adapter.ProviderID())

		url, err := adapter.AuthURL("state-token")
		require.NoError(t, err)
		assert.Contains(t, url, "accounts.google.com")
		assert.Contains(t, url, "state=state-token")
		assert.Contains(t, url, "client_id=client-id")
	})
}

func TestNewFacebookAdapter(t *testing.T) {
	t.Parallel()

	t.Run("rejects incomplete config", func(t *testing.T) {
		t.Parallel()

		_, err := NewFacebookAdapter(FacebookConfig{})
		assert.ErrorIs(t, err, ErrProviderConfigIncomplete)
	})

	t.Run("builds authorization url", func(t *testing.T) {
		t.Parallel()

		adapter, err := NewFacebookAdapter(FacebookConfig{
			ClientID:     "fb-id",
			ClientSecret: "fb-secret",
			RedirectURL:  "https://app.example.com/auth/facebook/callback",
		})
		require.NoError(t, err)
		assert.Equal(t, ProviderFacebook, adapter.ProviderID())

		url, err := adapter.AuthURL("state-token")
		require.NoError(t, err)
		assert.Contains(t, url, "facebook.com")
		assert.Contains(t, url, "state=state-token")
	})
}

func TestMethodForProvider(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MethodOAuthGoogle, methodForProvider(ProviderGoogle))
	assert.Equal(t, MethodOAuthFacebook, methodForProvider(ProviderFacebook))
	assert.Equal(t, "oauth_unknown", methodForProvider("unknown"))
}
