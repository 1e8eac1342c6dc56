package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ndcacricket/registration-system/credentials"
	"github.com/ndcacricket/registration-system/repositories"
)

const (
	RoleAdmin   = "admin"
	RoleCaptain = "captain"

	tokenTTL = 24 * time.Hour
)

type AuthService interface {
	AdminLogin(ctx context.Context, input LoginInput) (*LoginResult, error)
	CaptainLogin(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type LoginInput struct {
	Username string
	Password string
}

// LoginResult is what the panel stores after a successful login. The token is
// a signed HS256 JWT carrying the account id, username and role.
type LoginResult struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type authService struct {
	admins    repositories.AdminRepository
	teams     repositories.TeamRepository
	verifier  credentials.Verifier
	jwtSecret []byte
}

func NewAuthService(
	admins repositories.AdminRepository,
	teams repositories.TeamRepository,
	verifier credentials.Verifier,
	jwtSecret string,
) AuthService {
	return &authService{
		admins:    admins,
		teams:     teams,
		verifier:  verifier,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *authService) AdminLogin(ctx context.Context, input LoginInput) (*LoginResult, error) {
	admin, err := s.admins.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find admin by username: %w", err)
	}

	if !s.verifier.Verify(admin.Password, input.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(admin.ID, admin.Username, RoleAdmin)
}

func (s *authService) CaptainLogin(ctx context.Context, input LoginInput) (*LoginResult, error) {
	team, err := s.teams.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find team by username: %w", err)
	}

	if !s.verifier.Verify(team.Password, input.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(team.ID, team.Username, RoleCaptain)
}

func (s *authService) issueToken(id int, username, role string) (*LoginResult, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      id,
		"username": username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{
		ID:       id,
		Username: username,
		Role:     role,
		Token:    signed,
	}, nil
}
