package account

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionTTL = 72 * time.Hour
	CodeTTL    = time.Hour
	// ResetNext is where the callback sends a user who opened a reset link.
	ResetNext = "/account/update-password"
)

type Service struct {
	repo    Repository
	tokens  TokenStore
	mailer  Mailer
	secret  []byte
	siteURL string
	now     func() time.Time
}

func NewService(repo Repository, tokens TokenStore, mailer Mailer, secret, siteURL string) *Service {
	return &Service{
		repo:    repo,
		tokens:  tokens,
		mailer:  mailer,
		secret:  []byte(secret),
		siteURL: strings.TrimRight(siteURL, "/"),
		now:     time.Now,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates a profile with a hashed password. It backs the
// create-admin command.
func (s *Service) Register(ctx context.Context, email, password string, admin bool) (Profile, error) {
	if len(password) < MinPasswordLength {
		return Profile{}, ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Profile{}, err
	}
	return s.repo.Create(ctx, Profile{Email: strings.TrimSpace(email), PasswordHash: string(hashed), IsAdmin: admin})
}

// Authenticate checks email and password against the stored bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Profile, error) {
	p, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, ErrInvalidCredentials
		}
		return Profile{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return Profile{}, ErrInvalidCredentials
	}
	return p, nil
}

// Issue signs an HS256 token for p.
func (s *Service) Issue(p Profile) (Session, error) {
	expires := s.now().Add(SessionTTL)
	claims := jwt.MapClaims{
		"user_id": p.ID,
		"email":   p.Email,
		"jti":     uuid.NewString(),
		"exp":     expires.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: signed, ExpiresAt: expires, Profile: p}, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	p, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	return s.Issue(p)
}

// SignOut revokes the token id until the token would have expired anyway.
func (s *Service) SignOut(ctx context.Context, claims jwt.MapClaims) error {
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil
	}
	var ttl time.Duration
	if exp, ok := claims["exp"].(float64); ok {
		ttl = time.Unix(int64(exp), 0).Sub(s.now())
	}
	return s.tokens.Revoke(ctx, jti, ttl)
}

func (s *Service) IsRevoked(ctx context.Context, claims jwt.MapClaims) (bool, error) {
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return false, nil
	}
	return s.tokens.IsRevoked(ctx, jti)
}

func (s *Service) setPassword(ctx context.Context, id, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, string(hashed))
}

// UpdatePassword sets a new password for a user who arrived through a reset
// link.
func (s *Service) UpdatePassword(ctx context.Context, id, password, confirm string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return s.setPassword(ctx, id, password)
}

// ChangePassword validates the form, re-checks the old password and stores
// the new one.
func (s *Service) ChangePassword(ctx context.Context, id string, req PasswordChange) error {
	switch {
	case req.OldPassword == "":
		return ErrOldPasswordRequired
	case len(req.NewPassword) < MinPasswordLength:
		return ErrNewPasswordTooShort
	case req.NewPassword != req.Confirm:
		return ErrPasswordMismatch
	case req.OldPassword == req.NewPassword:
		return ErrPasswordUnchanged
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.Authenticate(ctx, p.Email, req.OldPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ErrWrongOldPassword
		}
		return err
	}
	return s.setPassword(ctx, id, req.NewPassword)
}

// UpdateProfile stores the trimmed contact fields; blanks become null.
func (s *Service) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (Profile, error) {
	return s.repo.UpdateProfile(ctx, id, blank(in.FullName), blank(in.Phone), blank(in.Address))
}

// Forgot mails a one-time sign-in link when email belongs to a profile.
// Unknown addresses succeed silently.
func (s *Service) Forgot(ctx context.Context, email string) error {
	p, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	code := uuid.NewString()
	if err := s.tokens.SaveCode(ctx, code, p.ID, CodeTTL); err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(ctx, p.Email, s.CallbackURL(code, ResetNext))
}

// CallbackURL is the link that exchanges code for a session.
func (s *Service) CallbackURL(code, next string) string {
	q := url.Values{}
	q.Set("code", code)
	q.Set("next", next)
	return s.siteURL + "/auth/callback?" + q.Encode()
}

// Exchange trades a one-time code for a session.
func (s *Service) Exchange(ctx context.Context, code string) (Session, error) {
	if code == "" {
		return Session{}, ErrInvalidCode
	}
	id, err := s.tokens.ConsumeCode(ctx, code)
	if err != nil {
		return Session{}, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	return s.Issue(p)
}

func blank(s string) *string {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return &v
}
