package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/artikahq/authkit/pkg/authn"
	"github.com/artikahq/authkit/pkg/cookie"
	"github.com/artikahq/authkit/pkg/logger"
	"github.com/artikahq/authkit/pkg/validator"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// handleLogin verifies credentials and starts a session. Every credential
// failure answers 401 with the same opaque code.
func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request")
		return
	}

	identity, err := s.creds.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authn.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		s.logger.Error("login failed", logger.Error(err), logger.Component("account"))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	s.startSession(w, identity)
}

// handleRegister creates a credential-backed identity and signs it in.
func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request")
		return
	}

	identity, err := s.creds.Register(r.Context(), authn.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, authn.ErrEmailTaken):
			writeError(w, http.StatusConflict, "email_taken")
		case validator.IsValidationError(err):
			writeValidationError(w, validator.ExtractValidationErrors(err))
		default:
			s.logger.Error("registration failed", logger.Error(err), logger.Component("account"))
			writeError(w, http.StatusInternalServerError, "internal_error")
		}
		return
	}

	s.startSession(w, identity)
}

// handleLogout clears the session cookie. The token itself stays valid
// until expiry; logout is a client-side discard.
func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.transport.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleSession reports the current session, if any. An invalid or missing
// token is not an error here: the endpoint exists for UIs asking "who am I".
func (s *Service) handleSession(w http.ResponseWriter, r *http.Request) {
	token, err := s.transport.Extract(r)
	if err != nil {
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	claims, err := s.issuer.Decode(token)
	if err != nil {
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          userFromClaims(claims),
		ExpiresAt:     claims.ExpiresAt,
	})
}

// handleOAuthStart redirects the browser to the provider's consent screen.
// An optional callback parameter survives the round trip in a short-lived
// cookie.
func (s *Service) handleOAuthStart(w http.ResponseWriter, r *http.Request) {
	provider, ok := s.providers[chi.URLParam(r, "provider")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_provider")
		return
	}

	authURL, err := provider.AuthURL(r.Context())
	if err != nil {
		s.logger.Error("oauth start failed", logger.Error(err), logger.Component("account"))
		s.redirectWithError(w, r, "OAuthError")
		return
	}

	if target := r.URL.Query().Get(s.cfg.CallbackParam); isLocalPath(target) {
		s.cookies.Set(w, callbackCookie, target, cookie.WithMaxAge(600))
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleOAuthCallback finishes the provider handshake, starts a session,
// and sends the browser to its original destination.
func (s *Service) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "provider")
	provider, ok := s.providers[providerID]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_provider")
		return
	}

	query := r.URL.Query()
	identity, err := provider.Auth(r.Context(), query.Get("code"), query.Get("state"))
	if err != nil {
		s.logger.Warn("oauth callback failed",
			logger.Provider(providerID),
			logger.Error(err),
			logger.Component("account"),
		)
		s.redirectWithError(w, r, oauthErrorCode(err))
		return
	}

	token, err := s.issuer.Issue(identity)
	if err != nil {
		s.logger.Error("session issue failed", logger.Error(err), logger.Component("account"))
		s.redirectWithError(w, r, "SessionError")
		return
	}
	s.transport.Write(w, token)

	target := s.cfg.PostLoginRedirect
	if saved, err := s.cookies.Get(r, callbackCookie); err == nil && isLocalPath(saved) {
		target = saved
	}
	s.cookies.Delete(w, callbackCookie)

	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Service) startSession(w http.ResponseWriter, identity *authn.Identity) {
	token, err := s.issuer.Issue(identity)
	if err != nil {
		s.logger.Error("session issue failed",
			logger.UserID(identity.ID.String()),
			logger.Error(err),
			logger.Component("account"),
		)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	s.transport.Write(w, token)
	claims, _ := s.issuer.Decode(token)
	writeJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          userFromClaims(claims),
		ExpiresAt:     claims.ExpiresAt,
	})
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	target := s.cfg.SignInPath + "?error=" + url.QueryEscape(code)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// oauthErrorCode maps callback failures to stable query-string codes the
// sign-in page can translate for the user.
func oauthErrorCode(err error) string {
	switch {
	case errors.Is(err, authn.ErrInvalidState):
		return "InvalidState"
	case errors.Is(err, authn.ErrUnverifiedEmail):
		return "UnverifiedEmail"
	default:
		return "OAuthError"
	}
}

// isLocalPath accepts only absolute local paths as redirect targets,
// rejecting scheme-relative URLs that would enable open redirects.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}
