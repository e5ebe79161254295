// Copyright (c) 2026 Darass. All rights reserved.

package auth

import (
	"context"
	"errors"

	"github.com/zereight/2021-darass/internal/platform/apperr"
	"github.com/zereight/2021-darass/internal/platform/ctxutil"
	"github.com/zereight/2021-darass/internal/platform/metrics"
	"github.com/zereight/2021-darass/internal/platform/sec"
	"github.com/zereight/2021-darass/internal/users"
)

// TokenEngine is the slice of the token service the orchestrator needs.
type TokenEngine interface {
	Issue(subjectID string) (*sec.TokenPair, error)
	VerifyRefresh(tokenString string) (string, error)
}

// UserDirectory resolves external identities to local accounts.
type UserDirectory interface {
	FindOrCreate(ctx context.Context, identity users.ExternalIdentity) (*users.User, error)
}

// MetricsRecorder counts login and refresh outcomes. A nil recorder disables
// counting.
type MetricsRecorder interface {
	RecordLogin(provider, result string)
	RecordRefresh(result string)
}

// Service orchestrates the social login and token refresh flows.
type Service struct {
	resolver  *Resolver
	directory UserDirectory
	tokens    TokenEngine
	metrics   MetricsRecorder
}

// NewService wires the orchestrator from its collaborators.
func NewService(resolver *Resolver, directory UserDirectory, tokens TokenEngine, recorder MetricsRecorder) *Service {
	return &Service{
		resolver:  resolver,
		directory: directory,
		tokens:    tokens,
		metrics:   recorder,
	}
}

/*
Login exchanges an OAuth authorization code for a darass session.

The provider resolves the code to an external identity, the user directory
registers or refreshes the matching account, and the token engine issues a
fresh token pair for it.

Parameters:
  - ctx: context.Context
  - providerName: string, registry key such as "kakao"
  - authorizationCode: string, single-use code from the provider redirect

Returns:
  - *sec.TokenPair: newly issued access and refresh tokens
  - error: *apperr.AppError describing which stage failed
*/
func (service *Service) Login(ctx context.Context, providerName, authorizationCode string) (*sec.TokenPair, error) {
	identity, err := service.resolver.Resolve(ctx, providerName, authorizationCode)
	if err != nil {
		service.recordLogin(providerName, metrics.ResultFailure)
		return nil, err
	}

	user, err := service.directory.FindOrCreate(ctx, *identity)
	if err != nil {
		service.recordLogin(providerName, metrics.ResultFailure)
		return nil, err
	}

	pair, err := service.tokens.Issue(user.ID)
	if err != nil {
		service.recordLogin(providerName, metrics.ResultFailure)
		return nil, apperr.Internal(err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user logged in",
		"provider", providerName,
		"user_id", user.ID,
	)
	service.recordLogin(providerName, metrics.ResultSuccess)

	return pair, nil
}

/*
Refresh rotates a session from a previously issued refresh token.

The presented token is verified against the refresh key and, when valid, a
complete new pair is issued for the same subject. The old refresh token is not
tracked afterwards.

Parameters:
  - ctx: context.Context
  - refreshToken: string, may be empty when the client sent no cookie

Returns:
  - *sec.TokenPair: replacement access and refresh tokens
  - error: *apperr.AppError, MissingRefreshToken or InvalidToken
*/
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*sec.TokenPair, error) {
	subjectID, err := service.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		service.recordRefresh(metrics.ResultFailure)
		if errors.Is(err, sec.ErrMissingToken) {
			return nil, apperr.MissingRefreshToken()
		}
		return nil, apperr.InvalidToken(err)
	}

	pair, err := service.tokens.Issue(subjectID)
	if err != nil {
		service.recordRefresh(metrics.ResultFailure)
		return nil, apperr.Internal(err)
	}

	ctxutil.GetLogger(ctx).DebugContext(ctx, "session refreshed", "user_id", subjectID)
	service.recordRefresh(metrics.ResultSuccess)

	return pair, nil
}

func (service *Service) recordLogin(provider, result string) {
	if service.metrics != nil {
		service.metrics.RecordLogin(provider, result)
	}
}

func (service *Service) recordRefresh(result string) {
	if service.metrics != nil {
		service.metrics.RecordRefresh(result)
	}
}
