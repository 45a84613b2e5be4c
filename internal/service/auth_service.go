package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/plume-labs/plume/internal/model"
	"github.com/plume-labs/plume/internal/repository"
	"github.com/plume-labs/plume/pkg/clock"
)

// AuthService is the stand-in identity provider: signup, login, and token
// verification. Nothing else in the system knows about passwords or JWTs.
type AuthService interface {
	SignUp(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(token string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	clk      clock.Clock
}

func NewAuthService(userRepo repository.UserRepository, secret string, tokenTTL time.Duration, clk clock.Clock) AuthService {
	return &authService{userRepo: userRepo, secret: []byte(secret), tokenTTL: tokenTTL, clk: clk}
}

func (s *authService) SignUp(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationErr("username", "username is required")
	}
	if len(password) < 6 {
		return nil, validationErr("password", "password must be at least 6 characters")
	}
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, validationErr("username", "username is already taken")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clk.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	now := s.clk.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.secret)
}

// VerifyToken returns the user ID carried by a valid token.
func (s *authService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredentials
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidCredentials
	}
	return sub, nil
}
