package service

import (
	"errors"
	"fmt"
	"time"

	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenLeeway = 30 * time.Second

var errNoPrincipal = errors.New("token has no principal")

// principalClaims is the JWT body: sub is the caller's principal, jti makes
// every issued token distinct in the audit trail.
type principalClaims struct {
	jwt.RegisteredClaims
}

// JWTTokenService issues and checks HS256 bearer tokens naming a principal.
type JWTTokenService struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTTokenService(secret string, ttl time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		key:    []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// Generate signs a token for principal and returns it with its expiry.
func (s *JWTTokenService) Generate(principal domain.Principal) (string, time.Time, error) {
	principal = domain.NormalizePrincipal(principal.String())
	if principal.IsZero() {
		return "", time.Time{}, errNoPrincipal
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := principalClaims{jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   principal.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token for %s: %w", principal, err)
	}
	return signed, expiresAt, nil
}

// Validate checks signature, issuer and expiry, then returns the principal
// the token was issued to.
func (s *JWTTokenService) Validate(raw string) (*ports.TokenClaims, error) {
	var claims principalClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(tokenLeeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	principal := domain.NormalizePrincipal(claims.Subject)
	if principal.IsZero() {
		return nil, errNoPrincipal
	}
	return &ports.TokenClaims{Principal: principal}, nil
}
