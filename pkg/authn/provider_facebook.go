package authn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

// FacebookConfig holds configuration for the Facebook OAuth provider.
type FacebookConfig struct {
	ClientID     string        `env:"FACEBOOK_CLIENT_ID,required"`
	ClientSecret string        `env:"FACEBOOK_CLIENT_SECRET,required"`
	RedirectURL  string        `env:"FACEBOOK_REDIRECT_URL,required"`
	Scopes       []string      `env:"FACEBOOK_SCOPES" envSeparator:"," envDefault:"email,public_profile"`
	StateTTL     time.Duration `env:"FACEBOOK_STATE_TTL" envDefault:"10m"`
}

type facebookAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewFacebookAdapter creates a Facebook OAuth provider adapter.
func NewFacebookAdapter(cfg FacebookConfig) (ProviderAdapter, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, fmt.Errorf("facebook adapter: %w", ErrProviderConfigIncomplete)
	}

	return &facebookAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     facebook.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (a *facebookAdapter) ProviderID() string {
	return ProviderFacebook
}

// AuthURL builds the Facebook authorization URL with the given state token.
func (a *facebookAdapter) AuthURL(state string) (string, error) {
	return a.conf.AuthCodeURL(state), nil
}

// ResolveProfile exchanges the authorization code for user profile
// information from the Facebook Graph API.
func (a *facebookAdapter) ResolveProfile(ctx context.Context, code string) (ProviderProfile, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return ProviderProfile{}, ErrInvalidCode
	}

	u, err := a.fetchFacebookUser(ctx, tok.AccessToken)
	if err != nil {
		return ProviderProfile{}, fmt.Errorf("fetch facebook user: %w", err)
	}
	if u.Email == "" {
		// Facebook omits the email field for accounts registered with a
		// phone number or when the email permission is declined.
		return ProviderProfile{}, ErrNoPrimaryEmail
	}

	return ProviderProfile{
		ProviderUserID: u.ID,
		Email:          u.Email,
		// The Graph API only returns confirmed email addresses.
		EmailVerified: true,
		Name:          u.Name,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		AvatarURL:     u.Picture.Data.URL,
	}, nil
}

func (a *facebookAdapter) fetchFacebookUser(ctx context.Context, accessToken string) (*fbUser, error) {
	endpoint := "https://graph.facebook.com/v19.0/me?fields=" + url.QueryEscape("id,name,email,first_name,last_name,picture")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facebook api returned status %d", resp.StatusCode)
	}

	var user fbUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

type fbUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

var _ ProviderAdapter = (*facebookAdapter)(nil)
