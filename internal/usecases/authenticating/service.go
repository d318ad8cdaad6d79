// Package authenticating verifica e emite os tokens de acesso da API
package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/kenlo-pricing-api/internal/config"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	IssueToken(email, name, role string, ttl time.Duration) (string, error)
}

type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(cfg config.Auth) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	return &Service{
		secret: []byte(cfg.Secret),
		now:    time.Now,
	}, nil
}

// IssueToken gera um token HS256 para uso pela ferramenta de linha de comando e pelos testes
func (s *Service) IssueToken(email, name, role string, ttl time.Duration) (string, error) {
	if role != domain.RoleAdmin && role != domain.RoleSales {
		return "", NewAuthError(ErrUnknownRole, role)
	}

	now := s.now()
	claims := domain.Claims{
		UserEmail: email,
		UserName:  name,
		UserRole:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserRole != domain.RoleAdmin && claims.UserRole != domain.RoleSales {
		return nil, NewAuthError(ErrUnknownRole, claims.UserRole)
	}

	return claims, nil
}
