// Copyright (c) 2026 Darass. All rights reserved.

/*
Package sec provides cryptographic primitives and token management.

# Architecture

This package isolates security-sensitive code (JWT signing and verification)
from the domain logic. It acts as an Infrastructure service injected into the
Application layer via small interfaces ([auth.TokenEngine], [middleware.TokenVerifier]).

# Token Model

Two independently keyed HS256 token families are issued together and verified
separately:

  - Access token: short-lived, carried in the Authorization header, verified
    statelessly on every request. Its payload is exactly the subject user ID
    plus the expiry window.
  - Refresh token: long-lived, carried only in an HttpOnly cookie, exchanged
    for a fresh pair.

Because the two families never share signing material, a well-formed access
token always fails refresh verification and vice versa — a stolen access
token cannot be replayed against the refresh endpoint.
*/
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure sentinels. Callers classify with [errors.Is].
var (
	// ErrMissingToken indicates that no token was presented at all. It is
	// distinguished from ErrInvalidToken so the orchestrator can report a
	// clearer cause for an absent cookie.
	ErrMissingToken = errors.New("sec: no token presented")

	// ErrInvalidToken covers every verification failure of a present token:
	// bad signature, malformed payload, expired, wrong token family.
	ErrInvalidToken = errors.New("sec: invalid token")
)

// AuthClaims represents the verified identity attached to a request context
// by the authentication middleware.
//
// The token payload is deliberately minimal: the subject user ID is the only
// application claim. Anything else (nickname, profile) is looked up on demand
// so a long-lived token can never carry stale identity data.
type AuthClaims struct {
	UserID string
}

// tokenClaims is the signed payload of both token families.
type tokenClaims struct {
	jwt.RegisteredClaims

	// IssuedAtNanos records the issuance instant at nanosecond granularity.
	// The standard 'iat' claim only has second precision, which would make
	// two tokens issued within the same second byte-identical; this claim
	// guarantees that every issuance, including a refresh one second (or one
	// microsecond) later, produces fresh values.
	IssuedAtNanos int64 `json:"iatn"`
}

// TokenPair is an access/refresh token set. The two are always issued
// together and never re-derived from one another.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenService mints, verifies, and rotates the service's own session
// credentials using HS256.
//
// # Concurrency
//
// The service holds only read-only key material loaded at process start, so
// any number of Issue/Verify calls may run concurrently without locking.
type TokenService struct {
	accessKey  []byte
	refreshKey []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewTokenService creates a TokenService from the two deployment secrets.
//
// The secrets must be non-empty and distinct: shared signing material would
// collapse the access/refresh separation that makes cross-family replay
// impossible.
func NewTokenService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("sec: token secrets must not be empty")
	}

	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("sec: access and refresh secrets must differ")
	}

	return &TokenService{
		accessKey:  []byte(accessSecret),
		refreshKey: []byte(refreshSecret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// WithClock replaces the wall clock used for issuance and expiry checks.
// Intended for tests; returns the receiver for chaining.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	service.now = now
	return service
}

// # Issuance

// Issue mints a fresh token pair for the given subject user ID.
//
// Signing is CPU-bound and has no side effects; it always succeeds for a
// well-formed subject. Each call embeds the current instant at nanosecond
// granularity, so successive pairs for the same subject are always distinct.
func (service *TokenService) Issue(subjectID string) (*TokenPair, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("sec: subject ID must not be empty")
	}

	currentTime := service.now()
	accessExpiry := currentTime.Add(service.accessTTL)
	refreshExpiry := currentTime.Add(service.refreshTTL)

	accessToken, err := service.sign(service.accessKey, subjectID, currentTime, accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	refreshToken, err := service.sign(service.refreshKey, subjectID, currentTime, refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExpiry,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

// sign builds and signs a single token with the given key and expiry.
func (service *TokenService) sign(key []byte, subjectID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		IssuedAtNanos: issuedAt.UnixNano(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// # Verification

// VerifyAccess checks an access token and returns its subject user ID.
//
// Validity is fully determined by the signature and the embedded expiry —
// no external state is consulted. Any failure (bad signature, malformed
// payload, expiry passed, refresh token presented instead) yields
// [ErrInvalidToken].
func (service *TokenService) VerifyAccess(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("%w: empty access token", ErrInvalidToken)
	}
	return service.verify(service.accessKey, tokenString)
}

// VerifyRefresh checks a refresh token and returns its subject user ID.
//
// An absent token yields [ErrMissingToken]; a present-but-invalid one yields
// [ErrInvalidToken] under the same discipline as access verification.
func (service *TokenService) VerifyRefresh(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrMissingToken
	}
	return service.verify(service.refreshKey, tokenString)
}

// verify parses and validates a token against the given key family.
func (service *TokenService) verify(key []byte, tokenString string) (string, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		},
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: malformed claims", ErrInvalidToken)
	}

	return claims.Subject, nil
}
