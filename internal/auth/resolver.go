// Copyright (c) 2026 Darass. All rights reserved.

/*
Package auth implements OAuth login and token lifecycle for the comment widget.

It composes three collaborators into two use cases:

  - Login: authorization code → verified external identity → directory user
    → fresh token pair.
  - Refresh: current refresh token → verified subject → fresh token pair.

# Architecture

  - Resolver: dispatches a code exchange to the provider registered under the
    requested name and normalizes provider-specific failures.
  - Service: orchestrates resolver, user directory, and token engine.
  - Handler: the /api/v1/login HTTP surface, including the refresh cookie.

The token engine itself lives in [sec]; it is deliberately free of any
provider dependency so it can be exercised with real signing in tests while
providers are stubbed.
*/
package auth

import (
	"context"
	"errors"

	"github.com/zereight/2021-darass/internal/platform/apperr"
	"github.com/zereight/2021-darass/internal/users"
)

// # Provider Contract

// Provider exchanges a one-time authorization code for a verified external
// identity. One implementation is registered per provider name.
type Provider interface {
	// Name returns the registry key, e.g. "kakao".
	Name() string

	/*
		ExchangeCode redeems the authorization code with the provider and
		returns the identity it vouches for.

		Implementations classify failures with the package sentinels:
		[ErrCodeRejected] when the provider turned the code down (invalid,
		expired, already used) and [ErrProviderUnreachable] for transport
		failures and deadline expiry. The call must respect ctx cancellation;
		it is the only network suspension point in the login pipeline.
	*/
	ExchangeCode(ctx context.Context, authorizationCode string) (*users.ExternalIdentity, error)
}

// Failure sentinels for provider implementations. The resolver folds them
// into the service's error taxonomy; provider-specific error shapes never
// travel further up.
var (
	// ErrCodeRejected indicates the provider refused the authorization code.
	ErrCodeRejected = errors.New("auth: authorization code rejected by provider")

	// ErrProviderUnreachable indicates the provider could not be reached
	// before the request deadline.
	ErrProviderUnreachable = errors.New("auth: oauth provider unreachable")
)

// # Identity Resolution

// Resolver dispatches code exchanges by provider name.
//
// Adding a provider means registering one more [Provider] implementation;
// the resolution control flow never changes.
type Resolver struct {
	providers map[string]Provider
}

// NewResolver builds a Resolver over the given provider set.
func NewResolver(providers ...Provider) *Resolver {
	registry := make(map[string]Provider, len(providers))
	for _, provider := range providers {
		registry[provider.Name()] = provider
	}
	return &Resolver{providers: registry}
}

/*
Resolve exchanges an authorization code for a verified external identity.

Description: Looks up the provider registered under providerName and
delegates the exchange to it — exactly once. Authorization codes are
single-use by OAuth convention, so a failed exchange is never retried:
the same code is guaranteed to fail again.

Parameters:
  - ctx: context.Context (bounds the provider round trip)
  - providerName: string
  - authorizationCode: string

Returns:
  - *users.ExternalIdentity: The identity the provider vouches for
  - error: apperr.UnknownProvider, apperr.InvalidAuthorizationCode, or
    apperr.ProviderUnavailable
*/
func (resolver *Resolver) Resolve(ctx context.Context, providerName, authorizationCode string) (*users.ExternalIdentity, error) {
	provider, registered := resolver.providers[providerName]
	if !registered {
		return nil, apperr.UnknownProvider(providerName)
	}

	identity, err := provider.ExchangeCode(ctx, authorizationCode)
	if err != nil {
		return nil, normalizeProviderError(err)
	}

	return identity, nil
}

// normalizeProviderError folds provider failure shapes into the stable
// error taxonomy.
func normalizeProviderError(err error) error {
	switch {
	case errors.Is(err, ErrProviderUnreachable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return apperr.ProviderUnavailable(err)
	default:
		// Everything else means the provider looked at the code and said no.
		return apperr.InvalidAuthorizationCode(err)
	}
}
