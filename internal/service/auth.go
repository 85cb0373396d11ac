package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
	"github.com/medconnect/medconnect-api/internal/ports"
)

var errSessionExpired = errors.New("session expired")

// PasswordHasher hashes plaintext passwords for storage.
type PasswordHasher func(password string) (string, error)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	SSO      ports.RedirectAuthProvider // Optional: campus single sign-on
	Sessions ports.SessionStore
	Tokens   ports.TokenIssuer
	Users    ports.UserRepository
	Colleges ports.CollegeRepository
	Hasher   PasswordHasher
}

// AuthService orchestrates login, registration, session persistence and
// token refresh by coordinating the auth ports.
type AuthService struct {
	provider ports.AuthProvider
	sso      ports.RedirectAuthProvider
	sessions ports.SessionStore
	tokens   ports.TokenIssuer
	users    ports.UserRepository
	colleges ports.CollegeRepository
	hasher   PasswordHasher
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		provider: opts.Provider,
		sso:      opts.SSO,
		sessions: opts.Sessions,
		tokens:   opts.Tokens,
		users:    opts.Users,
		colleges: opts.Colleges,
		hasher:   opts.Hasher,
	}
}

// LoginInput carries a password login attempt.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates credentials, mints tokens and persists a session.
// The returned session is exactly what a portal reload will reconstruct.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domainauth.Session, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	identity, err := s.provider.Authenticate(ctx, ports.Credentials{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "Invalid email or password")
	}

	return s.establishSession(ctx, identity)
}

// Register creates a portal account and logs it straight in.
func (s *AuthService) Register(ctx context.Context, req *model.CreateUserRequest) (*domainauth.Session, error) {
	if req == nil {
		return nil, apperrors.Validation("registration request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	// The chosen college must exist before an account can belong to it.
	if _, err := s.colleges.GetByID(ctx, req.CollegeID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ValidationField("college_id", "Selected college does not exist.")
		}
		return nil, fmt.Errorf("look up college: %w", err)
	}

	hash, err := s.hasher(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req, hash)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.establishSession(ctx, domainauth.Identity{
		UserID:    user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CollegeID: user.CollegeID,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	})
}

// establishSession mints tokens and persists a new session for the identity.
func (s *AuthService) establishSession(ctx context.Context, identity domainauth.Identity) (*domainauth.Session, error) {
	sessionID := generateSessionID()

	access, refresh, err := s.tokens.Issue(identity, sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	session := domainauth.Session{
		ID:           sessionID,
		UserID:       identity.UserID,
		FullName:     identity.FullName,
		Email:        identity.Email,
		Role:         identity.Role,
		CollegeID:    identity.CollegeID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    identity.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &session, nil
}

// BeginSSOResult carries everything the SSO login handler needs to send the
// browser to the identity provider.
type BeginSSOResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginSSO starts the campus single sign-on flow. Only deployments with
// AUTH_MODE=oidc have an SSO provider.
func (s *AuthService) BeginSSO(ctx context.Context, redirectURL string) (*BeginSSOResult, error) {
	if s.sso == nil {
		return nil, apperrors.NotFound("Single sign-on is not enabled on this portal.")
	}

	authURL, state, nonce, err := s.sso.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin sso: %w", err)
	}
	return &BeginSSOResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteSSO finishes the code exchange and opens a portal session for the
// verified identity. Like Register, a completed exchange is a login.
func (s *AuthService) CompleteSSO(ctx context.Context, in ports.ExchangeInput) (*domainauth.Session, error) {
	if s.sso == nil {
		return nil, apperrors.NotFound("Single sign-on is not enabled on this portal.")
	}

	identity, err := s.sso.Exchange(ctx, in)
	if err != nil {
		return nil, apperrors.Unauthorized("Sign-on could not be verified")
	}

	return s.establishSession(ctx, identity)
}

// GetSession retrieves a session by ID, expiring it eagerly if needed.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Authenticate resolves a bearer access token to its live session. Refresh
// tokens are rejected here; they only pass through Refresh. An access token
// from before a refresh no longer matches the stored session and is treated
// as revoked.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domainauth.Session, error) {
	if accessToken == "" {
		return nil, apperrors.Unauthorized("access token is required")
	}

	claims, err := s.tokens.Verify(accessToken)
	if err != nil || claims.Refresh {
		return nil, apperrors.Unauthorized("Invalid access token")
	}

	session, err := s.GetSession(ctx, claims.SessionID)
	if err != nil {
		return nil, apperrors.Unauthorized("Session no longer exists")
	}
	if session.AccessToken != accessToken {
		return nil, apperrors.Unauthorized("Access token has been superseded")
	}

	return session, nil
}

// Refresh exchanges a valid refresh token for a new token pair and extends
// the session. The old refresh token stops working because the session now
// stores its replacement.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domainauth.Session, error) {
	if refreshToken == "" {
		return nil, apperrors.Unauthorized("refresh token is required")
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil || !claims.Refresh {
		return nil, apperrors.Unauthorized("Invalid refresh token")
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, apperrors.Unauthorized("Session no longer exists")
	}
	if session.RefreshToken != refreshToken {
		// Token was already rotated; treat reuse as a hostile replay.
		if deleteErr := s.sessions.Delete(ctx, session.ID); deleteErr != nil {
			return nil, fmt.Errorf("revoke replayed session: %w", deleteErr)
		}
		return nil, apperrors.Unauthorized("Refresh token has been superseded")
	}

	identity := domainauth.Identity{
		UserID:    session.UserID,
		FullName:  session.FullName,
		Email:     session.Email,
		Role:      session.Role,
		CollegeID: session.CollegeID,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	access, refresh, err := s.tokens.Issue(identity, session.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	session.AccessToken = access
	session.RefreshToken = refresh
	session.ExpiresAt = identity.ExpiresAt

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &session, nil
}

// Logout removes a session. Logging out twice, or with no session at all,
// succeeds: the end state is the same either way.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// UpdateUser applies a partial profile update and syncs the stored session
// so the portal header reflects the change immediately. An empty update
// changes nothing and is not an error.
func (s *AuthService) UpdateUser(ctx context.Context, sessionID string, req *model.UpdateUserRequest) (*domainauth.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if req == nil || req.Empty() {
		return session, nil
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user, err := s.users.Update(ctx, session.UserID, req)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	session.FullName = user.FullName
	session.Email = user.Email

	if saveErr := s.sessions.Save(ctx, *session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return session, nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}
