package service

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"assessment-genie/internal/model"
	"assessment-genie/pkg/apierror"
)

const gmailDomain = "@gmail.com"

var emailShapePattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

var gmailLocalPattern = regexp.MustCompile(`^[a-z0-9._]+$`)

// UserStore is the persistence surface the auth service needs. The
// concrete implementation lives in internal/repository.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
}

type AuthService struct {
	jwtSecret   []byte
	tokenTTL    time.Duration
	adminDomain string
	users       UserStore
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration, adminDomain string, users UserStore) *AuthService {
	return &AuthService{
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		adminDomain: adminDomain,
		users:       users,
	}
}

// ValidateEmailShape accepts local@domain.tld with a final label of at
// least two letters. No IDN or length handling.
func ValidateEmailShape(email string) bool {
	return emailShapePattern.MatchString(email)
}

// ValidateGmailLocalPart is a quality filter for Gmail addresses only;
// any non-Gmail address passes unconditionally.
func ValidateGmailLocalPart(email string) bool {
	if !strings.HasSuffix(strings.ToLower(email), gmailDomain) {
		return true
	}

	local := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	if len(local) < 6 || len(local) > 30 {
		return false
	}
	if strings.Contains(local, "..") || strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return false
	}

	return gmailLocalPattern.MatchString(local)
}

// DeriveRole grants admin to addresses on the configured organization
// domain. Suffix match is case-sensitive.
func (s *AuthService) DeriveRole(email string) string {
	if strings.HasSuffix(email, s.adminDomain) {
		return model.RoleAdmin
	}
	return model.RoleUser
}

// Signup creates an account. The role is derived here, once; later
// logins trust what was stored.
func (s *AuthService) Signup(ctx context.Context, email string, password string) (model.AuthUser, error) {
	if !ValidateEmailShape(email) {
		return model.AuthUser{}, errInvalidEmailFormat()
	}

	if password == "" {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", "password is required", "", http.StatusBadRequest)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.AuthUser{}, err
	}
	if exists {
		return model.AuthUser{}, apierror.New("ALREADY_EXISTS", "user already exists", email, http.StatusConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return model.AuthUser{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         s.DeriveRole(email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	return authUserOf(user), nil
}

// Login verifies the password and issues a session. Unknown email and
// wrong password collapse to the same error so callers cannot probe for
// account existence. The stored role is used as-is; it is not re-derived.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.Session, error) {
	if !ValidateEmailShape(email) {
		return model.Session{}, errInvalidEmailFormat()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.Session{}, errInvalidCredentials()
	}
	if err != nil {
		return model.Session{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.Session{}, errInvalidCredentials()
	}

	return s.issueSession(user, time.Now().UTC())
}

// LoginWithGoogle authenticates a provider-asserted identity. Only the
// email's shape and domain are checked here; token verification already
// happened outside. A first-seen address gets a fresh account with the
// role derived now; an existing account keeps its stored role.
func (s *AuthService) LoginWithGoogle(ctx context.Context, identity model.GoogleIdentity) (model.Session, error) {
	if strings.TrimSpace(identity.Email) == "" {
		return model.Session{}, apierror.New("EMAIL_MISSING", "Google authentication failed: email not provided", "", http.StatusUnauthorized)
	}

	if !strings.HasSuffix(strings.ToLower(identity.Email), gmailDomain) {
		return model.Session{}, apierror.New("NON_GMAIL_ACCOUNT", "only Gmail accounts can use Google sign-in", "", http.StatusBadRequest)
	}

	if !ValidateGmailLocalPart(identity.Email) {
		return model.Session{}, apierror.New("INVALID_GMAIL_FORMAT", "invalid Gmail address format", "", http.StatusBadRequest)
	}

	user, err := s.users.FindByEmail(ctx, identity.Email)
	if errors.Is(err, model.ErrUserNotFound) {
		user, err = s.createGoogleUser(ctx, identity)
	}
	if err != nil {
		return model.Session{}, err
	}

	return s.issueSession(user, time.Now().UTC())
}

func (s *AuthService) createGoogleUser(ctx context.Context, identity model.GoogleIdentity) (model.User, error) {
	// The account never authenticates by password; store a hash of a
	// throwaway secret so the column is non-empty.
	hash, err := bcrypt.GenerateFromPassword([]byte("google-auth-"+uuid.NewString()), 12)
	if err != nil {
		return model.User{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        identity.Email,
		PasswordHash: string(hash),
		Role:         s.DeriveRole(identity.Email),
		Name:         identity.Name,
		Picture:      identity.Picture,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// IssueToken signs a single bearer token for the principal. Expiry is
// always issuedAt + the configured TTL; there is no refresh flow.
func (s *AuthService) IssueToken(user model.AuthUser, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierror.New("UNAUTHORIZED", "invalid token signing method", "", http.StatusUnauthorized)
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierror.New("UNAUTHORIZED", "invalid token", "", http.StatusUnauthorized)
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.New("UNAUTHORIZED", "invalid token claims", "", http.StatusUnauthorized)
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	claims.Role, _ = claimsMap["role"].(string)

	if claims.UserID == "" {
		return nil, apierror.New("UNAUTHORIZED", "invalid token subject", "", http.StatusUnauthorized)
	}

	return claims, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}
	return authUserOf(user), nil
}

func (s *AuthService) issueSession(user model.User, now time.Time) (model.Session, error) {
	principal := authUserOf(user)
	token, expiresAt, err := s.IssueToken(principal, now)
	if err != nil {
		return model.Session{}, err
	}

	return model.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      principal,
	}, nil
}

func authUserOf(user model.User) model.AuthUser {
	return model.AuthUser{
		ID:      user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Name:    user.Name,
		Picture: user.Picture,
	}
}

func errInvalidEmailFormat() *apierror.APIError {
	return apierror.New("INVALID_EMAIL_FORMAT", "invalid email format", "", http.StatusBadRequest)
}

func errInvalidCredentials() *apierror.APIError {
	return apierror.New("UNAUTHORIZED", "invalid email or password", "", http.StatusUnauthorized)
}
