// Copyright (c) 2026 Darass. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zereight/2021-darass/internal/auth"
	"github.com/zereight/2021-darass/internal/platform/apperr"
	"github.com/zereight/2021-darass/internal/users"
)

// Fixture data mirroring a real Kakao login.
const (
	fixtureAuthorizationCode = "2FAF32IGO332IRFIJF3213"
	fixtureProviderUserID    = "6752453"
	fixtureEmail             = "jujubebat@kakao.com"
	fixtureNickname          = "우기"
)

func fixtureIdentity() *users.ExternalIdentity {
	return &users.ExternalIdentity{
		Provider:       auth.ProviderKakao,
		ProviderUserID: fixtureProviderUserID,
		Email:          fixtureEmail,
		Nickname:       fixtureNickname,
	}
}

// stubProvider is a scripted [auth.Provider] for exercising the resolver and
// orchestrator without network access.
type stubProvider struct {
	name     string
	identity *users.ExternalIdentity
	err      error
	calls    int
}

func (provider *stubProvider) Name() string { return provider.name }

func (provider *stubProvider) ExchangeCode(ctx context.Context, authorizationCode string) (*users.ExternalIdentity, error) {
	provider.calls++
	if provider.err != nil {
		return nil, provider.err
	}
	return provider.identity, nil
}

/*
TestResolver_Resolve_Success verifies dispatch to the provider registered
under the requested name.
*/
func TestResolver_Resolve_Success(t *testing.T) {
	kakao := &stubProvider{name: auth.ProviderKakao, identity: fixtureIdentity()}
	naver := &stubProvider{name: auth.ProviderNaver, err: errors.New("should not be called")}
	resolver := auth.NewResolver(kakao, naver)

	identity, err := resolver.Resolve(context.Background(), auth.ProviderKakao, fixtureAuthorizationCode)
	require.NoError(t, err)

	assert.Equal(t, fixtureProviderUserID, identity.ProviderUserID)
	assert.Equal(t, fixtureEmail, identity.Email)
	assert.Equal(t, fixtureNickname, identity.Nickname)
	assert.Equal(t, 1, kakao.calls)
	assert.Equal(t, 0, naver.calls)
}

/*
TestResolver_Resolve_UnknownProvider verifies the stable error for an
unregistered provider name, including case sensitivity.
*/
func TestResolver_Resolve_UnknownProvider(t *testing.T) {
	resolver := auth.NewResolver(&stubProvider{name: auth.ProviderKakao, identity: fixtureIdentity()})

	for _, name := range []string{"github", "KAKAO", ""} {
		_, err := resolver.Resolve(context.Background(), name, fixtureAuthorizationCode)
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, apperr.CodeUnknownProvider), "name %q", name)
	}
}

/*
TestResolver_Resolve_FailureTaxonomy verifies normalization of provider
failure shapes into the stable taxonomy.
*/
func TestResolver_Resolve_FailureTaxonomy(t *testing.T) {
	tests := []struct {
		name         string
		providerErr  error
		expectedCode int
	}{
		{"code_rejected", fmt.Errorf("%w: kakao said no", auth.ErrCodeRejected), apperr.CodeInvalidAuthorizationCode},
		{"unreachable", fmt.Errorf("%w: dial tcp", auth.ErrProviderUnreachable), apperr.CodeProviderUnavailable},
		{"deadline", context.DeadlineExceeded, apperr.CodeProviderUnavailable},
		{"canceled", context.Canceled, apperr.CodeProviderUnavailable},
		{"unclassified", errors.New("weird upstream payload"), apperr.CodeInvalidAuthorizationCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{name: auth.ProviderKakao, err: tt.providerErr}
			resolver := auth.NewResolver(provider)

			_, err := resolver.Resolve(context.Background(), auth.ProviderKakao, fixtureAuthorizationCode)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, tt.expectedCode))
		})
	}
}

/*
TestResolver_Resolve_NoRetry verifies the exchange is attempted exactly once
per login; authorization codes are single-use, a second attempt cannot win.
*/
func TestResolver_Resolve_NoRetry(t *testing.T) {
	provider := &stubProvider{name: auth.ProviderKakao, err: auth.ErrProviderUnreachable}
	resolver := auth.NewResolver(provider)

	_, err := resolver.Resolve(context.Background(), auth.ProviderKakao, fixtureAuthorizationCode)
	require.Error(t, err)
	assert.Equal(t, 1, provider.calls)
}
