package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjunks/chantha-backend/internal/kvstore"
)

const tokenTTL = 24 * time.Hour

type service struct {
	repo   Repository
	jwtKey []byte
}

// NewService creates a new auth service signing tokens with jwtKey.
func NewService(repo Repository, jwtKey []byte) Service {
	return &service{repo: repo, jwtKey: jwtKey}
}

func (s *service) SignUp(ctx context.Context, email, password, name, role string) (*User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	if _, err := s.repo.GetCredentials(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.CreateUser(ctx, user, string(hash)); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	cred, err := s.repo.GetCredentials(ctx, email)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByID(ctx, cred.UserID)
	if err != nil {
		return nil, err
	}

	claims := &jwt.StandardClaims{
		Id:        uuid.New().String(),
		Subject:   user.ID,
		ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		IssuedAt:  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, err
	}

	return &Session{AccessToken: signed, User: user}, nil
}

func (s *service) VerifyToken(ctx context.Context, token string) (*User, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.repo.IsTokenRevoked(ctx, claims.Id)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *service) SignOut(ctx context.Context, token string) error {
	claims, err := s.parseClaims(token)
	if err != nil {
		return err
	}
	return s.repo.RevokeToken(ctx, claims.Id)
}

func (s *service) parseClaims(token string) (*jwt.StandardClaims, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
