package admin

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/pkg/domainerr"
)

type Service struct {
	repo      Repository
	jwtSecret []byte
}

func NewService(repo Repository, jwtSecret []byte) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret}
}

type CreateParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Service) CreateAdmin(ctx context.Context, p CreateParams) (*Admin, error) {
	ve := &domainerr.ValidationError{}
	if !usernamePattern.MatchString(p.Username) {
		ve.Add("username", "must be 3 to 50 characters of letters, digits, dot, dash or underscore")
	} else {
		taken, err := s.repo.UsernameTaken(ctx, p.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			ve.Add("username", "already taken")
		}
	}
	if len(p.Password) < minPasswordLen {
		ve.Add("password", "must be at least 6 characters")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &Admin{Username: p.Username, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Authenticate checks the credentials. A wrong username and a wrong password
// produce the same error so callers cannot probe for accounts.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Admin, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if domainerr.IsNotFound(err) {
		return nil, domainerr.Validation("credentials", "invalid username or password")
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, domainerr.Validation("credentials", "invalid username or password")
	}
	return a, nil
}

// Login authenticates and issues a signed admin token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	a, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return auth.IssueToken(s.jwtSecret, a.Username, []string{"admin"}, auth.DefaultTokenTTL)
}
